package services

import (
	"context"
	"time"

	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/quiz"
	"github.com/vytor/artikelfinder/internal/repository"
)

// StreakService reads the daily goal streak
type StreakService interface {
	// Current returns the streak after expiring it when a day was missed.
	// The expiry is persisted.
	Current(ctx context.Context) (*models.StreakRecord, error)
}

type streakService struct {
	streakRepo repository.StreakRepository
	clock      calendar.Clock
	loc        *time.Location
}

// NewStreakService creates a new StreakService
func NewStreakService(streakRepo repository.StreakRepository, clock calendar.Clock, loc *time.Location) StreakService {
	return &streakService{streakRepo: streakRepo, clock: clock, loc: loc}
}

func (s *streakService) Current(ctx context.Context) (*models.StreakRecord, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting current streak")

	rec, err := s.streakRepo.GetStreak(ctx)
	if err != nil {
		log.Error("failed to get streak: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := calendar.Today(s.clock, s.loc)
	rec, changed := quiz.ExpireStreak(rec, today)
	if changed {
		log.Info("streak expired: last_completed=%s, today=%s", rec.LastCompleted, today)
		if err := s.streakRepo.SaveStreak(ctx, rec); err != nil {
			log.Error("failed to persist expired streak: %v", err)
			return nil, errors.NewInternalError(err)
		}
	}
	return &rec, nil
}
