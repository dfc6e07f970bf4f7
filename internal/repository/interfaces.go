package repository

import (
	"context"

	"github.com/vytor/artikelfinder/internal/models"
)

// WordStatRepository handles lifetime per-word answer counters
type WordStatRepository interface {
	// RecordAnswer atomically adds one answer to the word's counters, creating
	// the row on first use, and returns the new totals.
	RecordAnswer(ctx context.Context, word models.WordEntry, correct bool) (models.WordStat, error)
	Get(ctx context.Context, wordID int64) (*models.WordStat, error)
	List(ctx context.Context) ([]models.WordStat, error)
	MostIncorrect(ctx context.Context, limit int) ([]models.WordStat, error)
	MostCorrect(ctx context.Context, limit int) ([]models.WordStat, error)
	DeleteAll(ctx context.Context) error
}

// StreakRepository handles the single daily goal streak record
type StreakRepository interface {
	GetStreak(ctx context.Context) (models.StreakRecord, error)
	SaveStreak(ctx context.Context, rec models.StreakRecord) error
}

// FavoriteRepository handles the user's favorite word ids
type FavoriteRepository interface {
	List(ctx context.Context) ([]int64, error)
	Set(ctx context.Context) (map[int64]struct{}, error)
	Has(ctx context.Context, wordID int64) (bool, error)
	Add(ctx context.Context, wordID int64) error
	Remove(ctx context.Context, wordID int64) error
}

// SettingsRepository handles quiz preferences
type SettingsRepository interface {
	Get(ctx context.Context) (models.Settings, error)
	Save(ctx context.Context, s models.Settings) error
}

// DailyWordRepository handles the persisted word of the day
type DailyWordRepository interface {
	// Get returns nil when no word has been picked yet.
	Get(ctx context.Context) (*models.DailyWordRecord, error)
	Save(ctx context.Context, rec models.DailyWordRecord) error
}

// SnapshotRepository reads and replaces all user data at once
type SnapshotRepository interface {
	Export(ctx context.Context) (models.Snapshot, error)
	// ReplaceAll swaps favorites, stats and streak for the snapshot's in one transaction.
	ReplaceAll(ctx context.Context, snap models.Snapshot) error
	// DeleteAll removes favorites, stats, streak and settings in one transaction.
	DeleteAll(ctx context.Context) error
}
