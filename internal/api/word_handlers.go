package api

import (
	"net/http"
	"unicode/utf8"

	"github.com/vytor/artikelfinder/internal/errors"
)

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	letter := r.URL.Query().Get("letter")
	if utf8.RuneCountInString(letter) > 1 {
		handleError(w, r, errors.NewValidationError("letter", "must be a single letter"))
		return
	}
	writeJSON(w, r, http.StatusOK, s.WordService.List(r.Context(), letter))
}

func (s *Server) handleWord(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	word, err := s.WordService.Get(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleRandomWord(w http.ResponseWriter, r *http.Request) {
	word, err := s.WordService.Random(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, word)
}

func (s *Server) handleDailyWord(w http.ResponseWriter, r *http.Request) {
	daily, err := s.WordService.Daily(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, daily)
}
