package services

import (
	"context"
	"time"

	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// WordService exposes the word catalog and the word of the day
type WordService interface {
	// List returns words in German alphabetical order, optionally only those
	// starting with letter.
	List(ctx context.Context, letter string) []models.WordEntry
	Get(ctx context.Context, id int64) (*models.WordEntry, error)
	Random(ctx context.Context) (*models.WordEntry, error)
	// Daily returns the word of the day, picking a new one on the first call of a day.
	Daily(ctx context.Context) (*models.DailyWord, error)
}

type wordService struct {
	catalog       *catalog.Catalog
	dailyWordRepo repository.DailyWordRepository
	clock         calendar.Clock
	loc           *time.Location
}

// NewWordService creates a new WordService
func NewWordService(cat *catalog.Catalog, dailyWordRepo repository.DailyWordRepository, clock calendar.Clock, loc *time.Location) WordService {
	return &wordService{catalog: cat, dailyWordRepo: dailyWordRepo, clock: clock, loc: loc}
}

func (s *wordService) List(ctx context.Context, letter string) []models.WordEntry {
	logger.FromContext(ctx).Debug("listing words: letter=%q", letter)
	return s.catalog.Alphabetical(letter)
}

func (s *wordService) Get(ctx context.Context, id int64) (*models.WordEntry, error) {
	logger.FromContext(ctx).Debug("getting word: id=%d", id)

	w, ok := s.catalog.Get(id)
	if !ok {
		return nil, errors.NewNotFoundError("word", id)
	}
	return &w, nil
}

func (s *wordService) Random(ctx context.Context) (*models.WordEntry, error) {
	logger.FromContext(ctx).Debug("picking random word")

	w, ok := s.catalog.Random(nil)
	if !ok {
		return nil, errors.NewNotFoundError("word", "random")
	}
	return &w, nil
}

func (s *wordService) Daily(ctx context.Context) (*models.DailyWord, error) {
	log := logger.FromContext(ctx)
	now := s.clock.Now()
	today := calendar.DateOf(now, s.loc)
	log.Debug("getting word of the day: today=%s", today)

	rec, err := s.dailyWordRepo.Get(ctx)
	if err != nil {
		log.Error("failed to get word of the day: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if rec != nil && rec.Day == today {
		if w, ok := s.catalog.Get(rec.WordID); ok {
			return &models.DailyWord{Day: rec.Day, Word: w, NextUpdate: rec.NextUpdate}, nil
		}
		log.Warn("stored word of the day not in catalog, picking again: word_id=%d", rec.WordID)
	}

	w, ok := s.catalog.Random(nil)
	if !ok {
		return nil, errors.NewNotFoundError("word", "daily")
	}
	next := calendar.NextDayStart(now, s.loc)
	if err := s.dailyWordRepo.Save(ctx, models.DailyWordRecord{Day: today, WordID: w.ID, NextUpdate: next}); err != nil {
		log.Error("failed to save word of the day: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("new word of the day: day=%s, word=%s", today, w.Word)
	return &models.DailyWord{Day: today, Word: w, NextUpdate: next}, nil
}
