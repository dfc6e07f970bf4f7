package api

import (
	"context"

	"github.com/vytor/artikelfinder/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	QuizService      services.QuizService
	StatsService     services.StatsService
	StreakService    services.StreakService
	FavoritesService services.FavoritesService
	SettingsService  services.SettingsService
	WordService      services.WordService
	DataService      services.DataService
	DB               Pinger
}
