package models

// QuizSourceKind selects which subset of the catalog feeds a session.
type QuizSourceKind string

const (
	SourceAllWords      QuizSourceKind = "all"
	SourceFavoritesOnly QuizSourceKind = "favorites"
	SourceCuratedList   QuizSourceKind = "curated"
)

// QuizSource is a tagged variant; Words is only meaningful for SourceCuratedList.
type QuizSource struct {
	Kind  QuizSourceKind `json:"kind"`
	Words []string       `json:"words,omitempty"`
}

func AllWords() QuizSource      { return QuizSource{Kind: SourceAllWords} }
func FavoritesOnly() QuizSource { return QuizSource{Kind: SourceFavoritesOnly} }

// CuratedList builds a source from an explicit set of word strings.
func CuratedList(words ...string) QuizSource {
	return QuizSource{Kind: SourceCuratedList, Words: words}
}

// SessionState is the running state of one quiz session.
// CurrentWord is nil when no question awaits an answer.
type SessionState struct {
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CurrentWord    *WordEntry `json:"current_word"`
}

// AnswerOutcome tells the caller how to render feedback for one answer.
type AnswerOutcome struct {
	IsCorrect      bool    `json:"is_correct"`
	CorrectArticle Article `json:"correct_article"`
}

// GoalCompletion is emitted once per day when the daily goal is reached.
type GoalCompletion struct {
	Streak int `json:"streak"`
}

// SessionSummary is the final score of a session.
type SessionSummary struct {
	Score   int `json:"score"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}
