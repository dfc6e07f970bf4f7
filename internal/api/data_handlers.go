package api

import (
	"fmt"
	"net/http"

	"github.com/vytor/artikelfinder/internal/logger"
)

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	snap, err := s.DataService.Export(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	filename := "artikelfinder-export.json"
	if snap.ExportedAt != nil {
		filename = fmt.Sprintf("artikelfinder-%s.json", snap.ExportedAt.Format("2006-01-02"))
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, r, http.StatusOK, snap)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	logger.FromContext(r.Context()).Debug("import request: content_length=%d", r.ContentLength)

	report, err := s.DataService.Import(r.Context(), r.Body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, report)
}

func (s *Server) handleResetAll(w http.ResponseWriter, r *http.Request) {
	if err := s.DataService.ResetAll(r.Context()); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
