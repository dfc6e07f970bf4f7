package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(10 * time.Second))

		r.Route("/quiz/sessions", func(r chi.Router) {
			r.Post("/", s.handleStartQuiz)
			r.Get("/{id}", s.handleGetQuiz)
			r.Post("/{id}/next", s.handleNextQuestion)
			r.Post("/{id}/answer", s.handleAnswer)
		})

		r.Get("/stats", s.handleStats)
		r.Delete("/stats", s.handleResetStats)
		r.Get("/stats/words/{id}", s.handleWordStat)
		r.Get("/streak", s.handleStreak)

		r.Get("/settings", s.handleGetSettings)
		r.Put("/settings", s.handleUpdateSettings)

		r.Get("/favorites", s.handleFavorites)
		r.Put("/favorites/{id}", s.handleAddFavorite)
		r.Delete("/favorites/{id}", s.handleRemoveFavorite)
		r.Post("/favorites/{id}/toggle", s.handleToggleFavorite)

		r.Get("/words", s.handleWords)
		r.Get("/words/random", s.handleRandomWord)
		r.Get("/words/daily", s.handleDailyWord)
		r.Get("/words/{id}", s.handleWord)

		r.Get("/data/export", s.handleExport)
		r.Post("/data/import", s.handleImport)
		r.Delete("/data", s.handleResetAll)
	})

	return r
}
