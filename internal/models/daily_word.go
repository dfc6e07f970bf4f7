package models

import (
	"time"

	"github.com/vytor/artikelfinder/internal/calendar"
)

// DailyWord is the word of the day and the instant it rolls over.
type DailyWord struct {
	Day        calendar.Date `json:"day"`
	Word       WordEntry     `json:"word"`
	NextUpdate time.Time     `json:"next_update"`
}

// DailyWordRecord is the stored form of the word of the day.
type DailyWordRecord struct {
	Day        calendar.Date
	WordID     int64
	NextUpdate time.Time
}
