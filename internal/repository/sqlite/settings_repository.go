package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/go-playground/validator/v10"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

type settingsRepository struct {
	db       *sql.DB
	validate *validator.Validate
}

// NewSettingsRepository creates a new SettingsRepository implementation
func NewSettingsRepository(db *sql.DB) repository.SettingsRepository {
	return &settingsRepository{db: db, validate: validator.New()}
}

// Get returns the stored settings, or defaults when none are stored or the
// stored row fails validation.
func (r *settingsRepository) Get(ctx context.Context) (models.Settings, error) {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("getting settings")

	query, args, err := sqlBuilder.Select("deck_length_cap", "daily_goal").
		From("settings").
		Where(squirrel.Eq{"id": singletonID}).
		ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return models.Settings{}, err
	}

	var deckCap, goal sql.NullString
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&deckCap, &goal)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no settings stored, using defaults")
		return models.DefaultSettings(), nil
	}
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return models.Settings{}, err
	}

	var s models.Settings
	if s.DeckLengthCap, err = parseInt("deck_length_cap", deckCap); err != nil {
		log.Warn("corrupt settings, using defaults: %v", err)
		return models.DefaultSettings(), nil
	}
	if s.DailyGoal, err = parseInt("daily_goal", goal); err != nil {
		log.Warn("corrupt settings, using defaults: %v", err)
		return models.DefaultSettings(), nil
	}
	if err := r.validate.Struct(s); err != nil {
		log.Warn("corrupt settings (deck_length_cap=%d, daily_goal=%d), using defaults: %v", s.DeckLengthCap, s.DailyGoal, err)
		return models.DefaultSettings(), nil
	}
	return s, nil
}

func (r *settingsRepository) Save(ctx context.Context, s models.Settings) error {
	log := logger.FromContext(ctx).WithPrefix("settings_repo")
	log.Debug("saving settings: deck_length_cap=%d, daily_goal=%d", s.DeckLengthCap, s.DailyGoal)

	query, args, err := sqlBuilder.Insert("settings").
		Columns("id", "deck_length_cap", "daily_goal").
		Values(singletonID, s.DeckLengthCap, s.DailyGoal).
		Suffix("ON CONFLICT(id) DO UPDATE SET deck_length_cap = excluded.deck_length_cap, daily_goal = excluded.daily_goal, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		log.Error("failed to save settings: %v", err)
		return err
	}
	return nil
}
