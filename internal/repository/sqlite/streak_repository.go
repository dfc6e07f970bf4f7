package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

type streakRepository struct {
	db *sql.DB
}

// NewStreakRepository creates a new StreakRepository implementation
func NewStreakRepository(db *sql.DB) repository.StreakRepository {
	return &streakRepository{db: db}
}

// GetStreak returns the stored streak. A missing or unreadable row yields the
// zero record; corruption is logged, not returned.
func (r *streakRepository) GetStreak(ctx context.Context) (models.StreakRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("getting streak")

	query, args, err := sqlBuilder.Select("streak", "last_completed").
		From("streak").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return models.StreakRecord{}, err
	}

	var streakRaw, last sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&streakRaw, &last)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no streak stored yet")
		return models.StreakRecord{}, nil
	}
	if err != nil {
		log.Error("failed to get streak: %v", err)
		return models.StreakRecord{}, err
	}

	streak, err := parseInt("streak", streakRaw)
	if err != nil {
		log.Warn("corrupt streak row, using empty streak: %v", err)
		return models.StreakRecord{}, nil
	}
	rec := models.StreakRecord{Streak: streak}
	if last.Valid && last.String != "" {
		day, err := calendar.ParseDate(last.String)
		if err != nil {
			log.Warn("corrupt streak date %q, using empty streak: %v", last.String, err)
			return models.StreakRecord{}, nil
		}
		rec.LastCompleted = day
	}
	if rec.Streak < 0 {
		log.Warn("corrupt streak value %d, using empty streak", rec.Streak)
		return models.StreakRecord{}, nil
	}
	return rec, nil
}

func (r *streakRepository) SaveStreak(ctx context.Context, rec models.StreakRecord) error {
	log := logger.FromContext(ctx).WithPrefix("streak_repo")
	log.Debug("saving streak: streak=%d, last_completed=%s", rec.Streak, rec.LastCompleted)

	if err := saveStreak(ctx, r.db, rec); err != nil {
		log.Error("failed to save streak: %v", err)
		return err
	}
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func saveStreak(ctx context.Context, db execer, rec models.StreakRecord) error {
	var last any
	if !rec.LastCompleted.IsZero() {
		last = rec.LastCompleted.String()
	}
	query, args, err := sqlBuilder.Insert("streak").
		Columns("id", "streak", "last_completed").
		Values(singletonID, rec.Streak, last).
		Suffix("ON CONFLICT(id) DO UPDATE SET streak = excluded.streak, last_completed = excluded.last_completed, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, query, args...)
	return err
}
