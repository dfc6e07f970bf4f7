package quiz

import (
	"context"
	"errors"

	"github.com/vytor/artikelfinder/internal/models"
)

// ErrNoActiveQuestion means an answer arrived while no question was awaiting
// one. It indicates a caller ordering bug, not a user error.
var ErrNoActiveQuestion = errors.New("quiz: no active question")

// StatRecorder durably adds one answer to a word's lifetime counters,
// creating a zeroed stat on first use, and returns the new totals.
type StatRecorder interface {
	RecordAnswer(ctx context.Context, word models.WordEntry, correct bool) (models.WordStat, error)
}

// score compares an answer to the expected article. No normalisation is applied.
func score(word models.WordEntry, selected string) models.AnswerOutcome {
	return models.AnswerOutcome{
		IsCorrect:      selected == string(word.Article),
		CorrectArticle: word.Article,
	}
}
