package sqlite

import (
	"context"
	"database/sql"
	"slices"

	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// insertBatchSize keeps multi-row inserts well under SQLite's bound parameter limit.
const insertBatchSize = 200

type snapshotRepository struct {
	db        *sql.DB
	stats     repository.WordStatRepository
	streaks   repository.StreakRepository
	favorites repository.FavoriteRepository
}

// NewSnapshotRepository creates a new SnapshotRepository implementation
func NewSnapshotRepository(db *sql.DB) repository.SnapshotRepository {
	return &snapshotRepository{
		db:        db,
		stats:     NewWordStatRepository(db),
		streaks:   NewStreakRepository(db),
		favorites: NewFavoriteRepository(db),
	}
}

// Export reads favorites, stats and streak. Version and timestamp are left to the caller.
func (r *snapshotRepository) Export(ctx context.Context) (models.Snapshot, error) {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("exporting snapshot")

	favs, err := r.favorites.List(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	stats, err := r.stats.List(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	if stats == nil {
		stats = []models.WordStat{}
	}
	streak, err := r.streaks.GetStreak(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	log.Debug("snapshot exported: favorites=%d, word_stats=%d", len(favs), len(stats))
	return models.Snapshot{Favorites: favs, WordStats: stats, StreakData: streak}, nil
}

func (r *snapshotRepository) ReplaceAll(ctx context.Context, snap models.Snapshot) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("replacing all data: favorites=%d, word_stats=%d", len(snap.Favorites), len(snap.WordStats))

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"favorites", "word_stats", "streak"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return err
			}
		}

		for chunk := range slices.Chunk(snap.Favorites, insertBatchSize) {
			ins := sqlBuilder.Insert("favorites").Options("OR IGNORE").Columns("word_id")
			for _, id := range chunk {
				ins = ins.Values(id)
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		for chunk := range slices.Chunk(snap.WordStats, insertBatchSize) {
			ins := sqlBuilder.Insert("word_stats").Columns("word_id", "word", "correct", "incorrect")
			for _, st := range chunk {
				ins = ins.Values(st.WordID, st.Word, st.Correct, st.Incorrect)
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return err
			}
		}

		return saveStreak(ctx, tx, snap.StreakData)
	})
	if err != nil {
		log.Error("failed to replace data: %v", err)
		return err
	}
	log.Info("data replaced: favorites=%d, word_stats=%d, streak=%d", len(snap.Favorites), len(snap.WordStats), snap.StreakData.Streak)
	return nil
}

func (r *snapshotRepository) DeleteAll(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("snapshot_repo")
	log.Debug("deleting all user data")

	err := tx(ctx, r.db, func(tx *sql.Tx) error {
		for _, table := range []string{"favorites", "word_stats", "streak", "settings"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error("failed to delete user data: %v", err)
		return err
	}
	log.Info("all user data deleted")
	return nil
}
