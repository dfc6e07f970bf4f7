package api

import (
	"net/http"
)

type favoriteResponse struct {
	WordID   int64 `json:"word_id"`
	Favorite bool  `json:"favorite"`
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	words, err := s.FavoritesService.List(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, words)
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.FavoritesService.Add(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, favoriteResponse{WordID: id, Favorite: true})
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.FavoritesService.Remove(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, favoriteResponse{WordID: id, Favorite: false})
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := wordIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	on, err := s.FavoritesService.Toggle(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, favoriteResponse{WordID: id, Favorite: on})
}
