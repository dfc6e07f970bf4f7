package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

type dailyWordRepository struct {
	db *sql.DB
}

// NewDailyWordRepository creates a new DailyWordRepository implementation
func NewDailyWordRepository(db *sql.DB) repository.DailyWordRepository {
	return &dailyWordRepository{db: db}
}

func (r *dailyWordRepository) Get(ctx context.Context) (*models.DailyWordRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("daily_word_repo")
	log.Debug("getting word of the day")

	query, args, err := sqlBuilder.Select("day", "word_id", "next_update").
		From("daily_word").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var (
		day  string
		rec  models.DailyWordRecord
		next time.Time
	)
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&day, &rec.WordID, &next)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no word of the day stored")
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get word of the day: %v", err)
		return nil, err
	}
	rec.Day, err = calendar.ParseDate(day)
	if err != nil {
		log.Warn("corrupt word of the day date %q, ignoring stored word: %v", day, err)
		return nil, nil
	}
	rec.NextUpdate = next
	return &rec, nil
}

func (r *dailyWordRepository) Save(ctx context.Context, rec models.DailyWordRecord) error {
	log := logger.FromContext(ctx).WithPrefix("daily_word_repo")
	log.Debug("saving word of the day: day=%s, word_id=%d", rec.Day, rec.WordID)

	query, args, err := sqlBuilder.Insert("daily_word").
		Columns("id", "day", "word_id", "next_update").
		Values(singletonID, rec.Day.String(), rec.WordID, rec.NextUpdate.UTC()).
		Suffix("ON CONFLICT(id) DO UPDATE SET day = excluded.day, word_id = excluded.word_id, next_update = excluded.next_update").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save word of the day: %v", err)
		return err
	}
	return nil
}
