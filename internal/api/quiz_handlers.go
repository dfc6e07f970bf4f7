package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
)

// sourceDifficult is an API-only source: a curated list built from the
// current difficult words.
const sourceDifficult = "difficult"

type startQuizRequest struct {
	Source string   `json:"source"`
	Words  []string `json:"words,omitempty"`
}

type answerRequest struct {
	Article string `json:"article"`
}

func (s *Server) handleStartQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req startQuizRequest
	if err := decodeOptionalJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	log.Debug("start quiz request: source=%s", req.Source)

	var source models.QuizSource
	switch req.Source {
	case "", string(models.SourceAllWords):
		source = models.AllWords()
	case string(models.SourceFavoritesOnly):
		source = models.FavoritesOnly()
	case string(models.SourceCuratedList):
		if len(req.Words) == 0 {
			handleError(w, r, errors.NewValidationError("words", "required for a curated quiz"))
			return
		}
		source = models.CuratedList(req.Words...)
	case sourceDifficult:
		src, err := s.StatsService.DifficultSource(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
		source = src
	default:
		handleError(w, r, errors.NewValidationError("source", "must be one of all, favorites, curated, difficult"))
		return
	}

	view, err := s.QuizService.StartSession(r.Context(), source)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetQuiz(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleNextQuestion(w http.ResponseWriter, r *http.Request) {
	view, err := s.QuizService.NextQuestion(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.QuizService.Answer(r.Context(), chi.URLParam(r, "id"), req.Article)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, view)
}
