package models

// WordStat is the lifetime correct/incorrect tally of one catalog word.
type WordStat struct {
	WordID    int64  `json:"word_id"`
	Word      string `json:"word"`
	Correct   int    `json:"correct" validate:"gte=0"`
	Incorrect int    `json:"incorrect" validate:"gte=0"`
}

// Total returns the number of recorded answers.
func (s WordStat) Total() int { return s.Correct + s.Incorrect }

// RankedWord is an entry of the difficult/mastered lists.
type RankedWord struct {
	WordID int64  `json:"word_id"`
	Word   string `json:"word"`
	Count  int    `json:"count"`
}

// StatsOverview summarises all lifetime WordStats.
type StatsOverview struct {
	TotalAnswers   int          `json:"total_answers"`
	TotalCorrect   int          `json:"total_correct"`
	TotalIncorrect int          `json:"total_incorrect"`
	Accuracy       float64      `json:"accuracy"` // percentage, one decimal
	Difficult      []RankedWord `json:"difficult"`
	Mastered       []RankedWord `json:"mastered"`
}
