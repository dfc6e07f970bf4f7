package services

import (
	"context"
	stderrors "errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
)

// SettingsService reads and updates quiz preferences
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings models.Settings) (*models.Settings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
	validate     *validator.Validate
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, validate: newValidator()}
}

func (s *settingsService) Get(ctx context.Context) (*models.Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting settings")

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		log.Error("failed to get settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return &settings, nil
}

func (s *settingsService) Update(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating settings: deck_length_cap=%d, daily_goal=%d", settings.DeckLengthCap, settings.DailyGoal)

	if err := s.validate.Struct(settings); err != nil {
		return nil, validationError(err)
	}
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		log.Error("failed to save settings: %v", err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("settings updated: deck_length_cap=%d, daily_goal=%d", settings.DeckLengthCap, settings.DailyGoal)
	return &settings, nil
}

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validationError turns the first validator failure into a VALIDATION_ERROR.
func validationError(err error) *errors.AppError {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		return errors.NewValidationError(fe.Field(), "must satisfy "+reason)
	}
	return errors.NewValidationError("input", err.Error())
}
