package services

import (
	"context"
	"database/sql"
	stderrors "errors"
	"math"

	"github.com/vytor/artikelfinder/internal/catalog"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// rankedListSize is the length of the difficult and mastered lists.
const rankedListSize = 5

// StatsService reports and resets lifetime word statistics
type StatsService interface {
	Overview(ctx context.Context) (*models.StatsOverview, error)
	WordStat(ctx context.Context, wordID int64) (*models.WordStat, error)
	// DifficultSource builds a curated quiz source from the difficult list.
	DifficultSource(ctx context.Context) (models.QuizSource, error)
	Reset(ctx context.Context) error
}

type statsService struct {
	catalog      *catalog.Catalog
	wordStatRepo repository.WordStatRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(cat *catalog.Catalog, wordStatRepo repository.WordStatRepository) StatsService {
	return &statsService{catalog: cat, wordStatRepo: wordStatRepo}
}

func (s *statsService) Overview(ctx context.Context) (*models.StatsOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("building stats overview")

	stats, err := s.wordStatRepo.List(ctx)
	if err != nil {
		log.Error("failed to list word stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out := &models.StatsOverview{}
	for _, st := range stats {
		out.TotalCorrect += st.Correct
		out.TotalIncorrect += st.Incorrect
	}
	out.TotalAnswers = out.TotalCorrect + out.TotalIncorrect
	out.Accuracy = accuracy(out.TotalCorrect, out.TotalAnswers)

	difficult, err := s.wordStatRepo.MostIncorrect(ctx, rankedListSize)
	if err != nil {
		log.Error("failed to list difficult words: %v", err)
		return nil, errors.NewInternalError(err)
	}
	mastered, err := s.wordStatRepo.MostCorrect(ctx, rankedListSize)
	if err != nil {
		log.Error("failed to list mastered words: %v", err)
		return nil, errors.NewInternalError(err)
	}

	out.Difficult = ranked(difficult, func(st models.WordStat) int { return st.Incorrect })
	out.Mastered = ranked(mastered, func(st models.WordStat) int { return st.Correct })

	log.Debug("stats overview: answers=%d, accuracy=%.1f", out.TotalAnswers, out.Accuracy)
	return out, nil
}

// accuracy is a percentage rounded to one decimal; 0 when nothing was answered.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

func ranked(stats []models.WordStat, count func(models.WordStat) int) []models.RankedWord {
	out := make([]models.RankedWord, 0, len(stats))
	for _, st := range stats {
		out = append(out, models.RankedWord{WordID: st.WordID, Word: st.Word, Count: count(st)})
	}
	return out
}

func (s *statsService) WordStat(ctx context.Context, wordID int64) (*models.WordStat, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting word stat: word_id=%d", wordID)

	w, ok := s.catalog.Get(wordID)
	if !ok {
		return nil, errors.NewNotFoundError("word", wordID)
	}

	st, err := s.wordStatRepo.Get(ctx, wordID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return &models.WordStat{WordID: w.ID, Word: w.Word}, nil
		}
		log.Error("failed to get word stat: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return st, nil
}

func (s *statsService) DifficultSource(ctx context.Context) (models.QuizSource, error) {
	log := logger.FromContext(ctx)
	log.Debug("building difficult words source")

	difficult, err := s.wordStatRepo.MostIncorrect(ctx, rankedListSize)
	if err != nil {
		log.Error("failed to list difficult words: %v", err)
		return models.QuizSource{}, errors.NewInternalError(err)
	}
	words := make([]string, 0, len(difficult))
	for _, st := range difficult {
		words = append(words, st.Word)
	}
	return models.CuratedList(words...), nil
}

func (s *statsService) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("resetting word statistics")

	if err := s.wordStatRepo.DeleteAll(ctx); err != nil {
		log.Error("failed to reset word stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
