package models

const (
	DefaultDeckLengthCap = 10
	DefaultDailyGoal     = 10
)

// Settings are the user-tunable quiz parameters. DeckLengthCap 0 means unlimited.
type Settings struct {
	DeckLengthCap int `json:"deck_length_cap" validate:"gte=0,lte=10000"`
	DailyGoal     int `json:"daily_goal" validate:"gte=1,lte=1000"`
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		DeckLengthCap: DefaultDeckLengthCap,
		DailyGoal:     DefaultDailyGoal,
	}
}
