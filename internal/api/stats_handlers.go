package api

import (
	"net/http"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	overview, err := s.StatsService.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	if err := s.StatsService.Reset(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWordStat(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	st, err := s.StatsService.WordStat(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, st)
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	rec, err := s.StreakService.Current(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, rec)
}
