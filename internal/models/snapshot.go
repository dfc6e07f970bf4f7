package models

import "time"

// SnapshotVersion is written into every export.
const SnapshotVersion = 2

// LegacyWordStat is one value of the text-keyed quizStats map of version 1 exports.
type LegacyWordStat struct {
	Correct   int `json:"correct" validate:"gte=0"`
	Incorrect int `json:"incorrect" validate:"gte=0"`
}

// Snapshot is the export/import document.
type Snapshot struct {
	Version    int                       `json:"version"`
	ExportedAt *time.Time                `json:"exportedAt,omitempty"`
	Favorites  []int64                   `json:"favorites"`
	WordStats  []WordStat                `json:"wordStats" validate:"omitempty,dive"`
	QuizStats  map[string]LegacyWordStat `json:"quizStats,omitempty" validate:"omitempty,dive"`
	StreakData StreakRecord              `json:"streakData"`
}
