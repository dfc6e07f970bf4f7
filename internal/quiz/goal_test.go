package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/quiz"
)

const today = calendar.Date("2026-10-15")

func TestEvaluateDailyGoal(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		goal     int
		rec      models.StreakRecord
		want     models.StreakRecord
		credited bool
	}{
		{
			name:  "below goal is a no-op",
			total: 2, goal: 3,
			rec:  models.StreakRecord{},
			want: models.StreakRecord{},
		},
		{
			name:  "first completion ever",
			total: 3, goal: 3,
			rec:      models.StreakRecord{},
			want:     models.StreakRecord{Streak: 1, LastCompleted: today},
			credited: true,
		},
		{
			name:  "exceeding the goal does not re-trigger",
			total: 4, goal: 3,
			rec:  models.StreakRecord{Streak: 1, LastCompleted: today},
			want: models.StreakRecord{Streak: 1, LastCompleted: today},
		},
		{
			name:  "already credited today",
			total: 3, goal: 3,
			rec:  models.StreakRecord{Streak: 4, LastCompleted: today},
			want: models.StreakRecord{Streak: 4, LastCompleted: today},
		},
		{
			name:  "continuation from yesterday",
			total: 3, goal: 3,
			rec:      models.StreakRecord{Streak: 5, LastCompleted: "2026-10-14"},
			want:     models.StreakRecord{Streak: 6, LastCompleted: today},
			credited: true,
		},
		{
			name:  "break after two days",
			total: 3, goal: 3,
			rec:      models.StreakRecord{Streak: 5, LastCompleted: "2026-10-13"},
			want:     models.StreakRecord{Streak: 1, LastCompleted: today},
			credited: true,
		},
		{
			name:  "zero goal never triggers",
			total: 0, goal: 0,
			rec:  models.StreakRecord{},
			want: models.StreakRecord{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, credited := quiz.EvaluateDailyGoal(tt.total, tt.goal, tt.rec, today)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.credited, credited)
		})
	}
}

func TestExpireStreak(t *testing.T) {
	tests := []struct {
		name    string
		rec     models.StreakRecord
		want    int
		changed bool
	}{
		{"completed today", models.StreakRecord{Streak: 3, LastCompleted: today}, 3, false},
		{"completed yesterday", models.StreakRecord{Streak: 3, LastCompleted: "2026-10-14"}, 3, false},
		{"completed two days ago", models.StreakRecord{Streak: 3, LastCompleted: "2026-10-13"}, 0, true},
		{"never completed", models.StreakRecord{Streak: 2}, 0, true},
		{"already zero", models.StreakRecord{Streak: 0, LastCompleted: "2026-01-01"}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := quiz.ExpireStreak(tt.rec, today)
			assert.Equal(t, tt.want, got.Streak)
			assert.Equal(t, tt.rec.LastCompleted, got.LastCompleted)
			assert.Equal(t, tt.changed, changed)
		})
	}
}
