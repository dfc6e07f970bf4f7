package services

import (
	"context"

	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// FavoritesService manages the user's favorite words
type FavoritesService interface {
	List(ctx context.Context) ([]models.WordEntry, error)
	Add(ctx context.Context, wordID int64) error
	Remove(ctx context.Context, wordID int64) error
	// Toggle flips the favorite flag and reports the new state.
	Toggle(ctx context.Context, wordID int64) (bool, error)
}

type favoritesService struct {
	catalog      *catalog.Catalog
	favoriteRepo repository.FavoriteRepository
}

// NewFavoritesService creates a new FavoritesService
func NewFavoritesService(cat *catalog.Catalog, favoriteRepo repository.FavoriteRepository) FavoritesService {
	return &favoritesService{catalog: cat, favoriteRepo: favoriteRepo}
}

// List returns favorites in the order they were added. Ids no longer in the
// catalog are skipped.
func (s *favoritesService) List(ctx context.Context) ([]models.WordEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing favorites")

	ids, err := s.favoriteRepo.List(ctx)
	if err != nil {
		log.Error("failed to list favorites: %v", err)
		return nil, errors.NewInternalError(err)
	}

	words := make([]models.WordEntry, 0, len(ids))
	for _, id := range ids {
		w, ok := s.catalog.Get(id)
		if !ok {
			log.Warn("favorite not in catalog, skipping: word_id=%d", id)
			continue
		}
		words = append(words, w)
	}
	return words, nil
}

func (s *favoritesService) Add(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("adding favorite: word_id=%d", wordID)

	if !s.catalog.Has(wordID) {
		return errors.NewNotFoundError("word", wordID)
	}
	if err := s.favoriteRepo.Add(ctx, wordID); err != nil {
		log.Error("failed to add favorite: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *favoritesService) Remove(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("removing favorite: word_id=%d", wordID)

	if err := s.favoriteRepo.Remove(ctx, wordID); err != nil {
		log.Error("failed to remove favorite: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *favoritesService) Toggle(ctx context.Context, wordID int64) (bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("toggling favorite: word_id=%d", wordID)

	if !s.catalog.Has(wordID) {
		return false, errors.NewNotFoundError("word", wordID)
	}
	has, err := s.favoriteRepo.Has(ctx, wordID)
	if err != nil {
		log.Error("failed to check favorite: %v", err)
		return false, errors.NewInternalError(err)
	}
	if has {
		return false, s.Remove(ctx, wordID)
	}
	return true, s.Add(ctx, wordID)
}
