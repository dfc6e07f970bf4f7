package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

var wordStatColumns = []string{"word_id", "word", "correct", "incorrect"}

type wordStatRepository struct {
	db *sql.DB
}

// NewWordStatRepository creates a new WordStatRepository implementation
func NewWordStatRepository(db *sql.DB) repository.WordStatRepository {
	return &wordStatRepository{db: db}
}

func (r *wordStatRepository) RecordAnswer(ctx context.Context, word models.WordEntry, correct bool) (models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("recording answer: word_id=%d, correct=%t", word.ID, correct)

	column := "incorrect"
	c, i := 0, 1
	if correct {
		column = "correct"
		c, i = 1, 0
	}

	var st models.WordStat
	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		query, args, err := sqlBuilder.Insert("word_stats").
			Columns("word_id", "word", "correct", "incorrect").
			Values(word.ID, word.Word, c, i).
			Suffix("ON CONFLICT(word_id) DO UPDATE SET "+column+" = "+column+" + 1, word = excluded.word, updated_at = CURRENT_TIMESTAMP").
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}

		query, args, err = sqlBuilder.Select(wordStatColumns...).
			From("word_stats").
			Where(squirrel.Eq{"word_id": word.ID}).
			ToSql()
		if err != nil {
			return err
		}
		return tx.QueryRowContext(ctx, query, args...).Scan(&st.WordID, &st.Word, &st.Correct, &st.Incorrect)
	})
	if err != nil {
		log.Error("failed to record answer: word_id=%d: %v", word.ID, err)
		return models.WordStat{}, err
	}
	log.Debug("word stat updated: word_id=%d, correct=%d, incorrect=%d", st.WordID, st.Correct, st.Incorrect)
	return st, nil
}

func (r *wordStatRepository) Get(ctx context.Context, wordID int64) (*models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("getting word stat: word_id=%d", wordID)

	query, args, err := sqlBuilder.Select(wordStatColumns...).
		From("word_stats").
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}

	var st models.WordStat
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&st.WordID, &st.Word, &st.Correct, &st.Incorrect)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word stat not found: word_id=%d", wordID)
		} else {
			log.Error("failed to get word stat: %v", err)
		}
		return nil, err
	}
	return &st, nil
}

func (r *wordStatRepository) List(ctx context.Context) ([]models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("listing word stats")

	return r.query(ctx, sqlBuilder.Select(wordStatColumns...).
		From("word_stats").
		OrderBy("word_id ASC"))
}

// MostIncorrect returns words with at least one wrong answer, most wrong first.
func (r *wordStatRepository) MostIncorrect(ctx context.Context, limit int) ([]models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("fetching most incorrect words: limit=%d", limit)

	return r.query(ctx, sqlBuilder.Select(wordStatColumns...).
		From("word_stats").
		Where(squirrel.Gt{"incorrect": 0}).
		OrderBy("incorrect DESC", "word ASC", "word_id ASC").
		Limit(uint64(max(limit, 0))))
}

// MostCorrect returns words with at least one right answer, most right first.
func (r *wordStatRepository) MostCorrect(ctx context.Context, limit int) ([]models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("fetching most correct words: limit=%d", limit)

	return r.query(ctx, sqlBuilder.Select(wordStatColumns...).
		From("word_stats").
		Where(squirrel.Gt{"correct": 0}).
		OrderBy("correct DESC", "word ASC", "word_id ASC").
		Limit(uint64(max(limit, 0))))
}

func (r *wordStatRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")
	log.Debug("deleting all word stats")

	res, err := r.db.ExecContext(ctx, `DELETE FROM word_stats`)
	if err != nil {
		log.Error("failed to delete word stats: %v", err)
		return err
	}
	n, _ := res.RowsAffected()
	log.Info("deleted %d word stats", n)
	return nil
}

func (r *wordStatRepository) query(ctx context.Context, b squirrel.SelectBuilder) ([]models.WordStat, error) {
	log := logger.FromContext(ctx).WithPrefix("word_stat_repo")

	query, args, err := b.ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query word stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.WordStat
	for rows.Next() {
		var st models.WordStat
		if err := rows.Scan(&st.WordID, &st.Word, &st.Correct, &st.Incorrect); err != nil {
			log.Error("failed to scan word stat row: %v", err)
			return nil, err
		}
		stats = append(stats, st)
	}
	log.Debug("found %d word stats", len(stats))
	return stats, rows.Err()
}
