package models

import "github.com/vytor/artikelfinder/internal/calendar"

// StreakRecord counts consecutive days on which the daily goal was met.
type StreakRecord struct {
	Streak        int           `json:"streak" validate:"gte=0"`
	LastCompleted calendar.Date `json:"lastCompleted"`
}
