package sqlite

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/repository"
)

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository implementation
func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// List returns favorite ids in the order they were added.
func (r *favoriteRepository) List(ctx context.Context) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("favorite_repo")
	log.Debug("listing favorites")

	rows, err := r.db.QueryContext(ctx, `SELECT word_id FROM favorites ORDER BY id ASC`)
	if err != nil {
		log.Error("failed to list favorites: %v", err)
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			log.Error("failed to scan favorite row: %v", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	log.Debug("found %d favorites", len(ids))
	return ids, rows.Err()
}

func (r *favoriteRepository) Set(ctx context.Context) (map[int64]struct{}, error) {
	ids, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

func (r *favoriteRepository) Has(ctx context.Context, wordID int64) (bool, error) {
	log := logger.FromContext(ctx).WithPrefix("favorite_repo")

	query, args, err := sqlBuilder.Select("COUNT(*)").
		From("favorites").
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		return false, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Error("failed to check favorite: word_id=%d: %v", wordID, err)
		return false, err
	}
	return n > 0, nil
}

// Add is a no-op when the word is already a favorite.
func (r *favoriteRepository) Add(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx).WithPrefix("favorite_repo")
	log.Debug("adding favorite: word_id=%d", wordID)

	query, args, err := sqlBuilder.Insert("favorites").
		Options("OR IGNORE").
		Columns("word_id").
		Values(wordID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to add favorite: word_id=%d: %v", wordID, err)
		return err
	}
	return nil
}

func (r *favoriteRepository) Remove(ctx context.Context, wordID int64) error {
	log := logger.FromContext(ctx).WithPrefix("favorite_repo")
	log.Debug("removing favorite: word_id=%d", wordID)

	query, args, err := sqlBuilder.Delete("favorites").
		Where(squirrel.Eq{"word_id": wordID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to remove favorite: word_id=%d: %v", wordID, err)
		return err
	}
	return nil
}
