package quiz

import (
	"context"

	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/models"
)

// StreakStore persists the daily goal streak.
type StreakStore interface {
	GetStreak(ctx context.Context) (models.StreakRecord, error)
	SaveStreak(ctx context.Context, rec models.StreakRecord) error
}

// EvaluateDailyGoal credits today's goal when the session's answer count hits
// goal exactly. It returns the updated record and whether it changed.
// Exceeding the goal does not re-trigger, and a day is credited at most once.
func EvaluateDailyGoal(total, goal int, rec models.StreakRecord, today calendar.Date) (models.StreakRecord, bool) {
	if goal <= 0 || total != goal {
		return rec, false
	}
	if rec.LastCompleted == today {
		return rec, false
	}
	if rec.LastCompleted == today.Yesterday() {
		rec.Streak++
	} else {
		rec.Streak = 1
	}
	rec.LastCompleted = today
	return rec, true
}

// ExpireStreak zeroes the streak when its last completed day is neither today
// nor yesterday. It reports whether the record changed and must be persisted.
func ExpireStreak(rec models.StreakRecord, today calendar.Date) (models.StreakRecord, bool) {
	if rec.LastCompleted == today || rec.LastCompleted == today.Yesterday() {
		return rec, false
	}
	if rec.Streak == 0 {
		return rec, false
	}
	rec.Streak = 0
	return rec, true
}
