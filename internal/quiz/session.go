package quiz

import (
	"math"
	"sync"
	"time"

	"github.com/vytor/artikelfinder/internal/models"
)

// Status is the lifecycle phase of a session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
)

// Question is what Next hands to the presentation layer.
type Question struct {
	Word      *models.WordEntry `json:"word"`
	Number    int               `json:"number"`
	Remaining int               `json:"remaining"`
	Exhausted bool              `json:"exhausted"`
}

// Session is one run from deck creation to exhaustion. All mutation goes
// through Engine; the accessors here are safe to call concurrently.
type Session struct {
	ID        string
	Source    models.QuizSource
	StartedAt time.Time

	mu       sync.Mutex
	status   Status
	state    models.SessionState
	deck     *Deck
	deckSize int
	drawn    int
}

// Snapshot is a point-in-time copy of a session for rendering.
type Snapshot struct {
	ID        string                 `json:"id"`
	Source    models.QuizSource      `json:"source"`
	Status    Status                 `json:"status"`
	State     models.SessionState    `json:"state"`
	DeckSize  int                    `json:"deck_size"`
	Remaining int                    `json:"remaining"`
	StartedAt time.Time              `json:"started_at"`
	Summary   *models.SessionSummary `json:"summary,omitempty"`
}

// Status returns the current lifecycle phase.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State returns a copy of the running state.
func (s *Session) State() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() models.SessionState {
	st := s.state
	if st.CurrentWord != nil {
		w := *st.CurrentWord
		st.CurrentWord = &w
	}
	return st
}

// Summary returns the final score data. Percent is rounded to the nearest integer.
func (s *Session) Summary() models.SessionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryLocked()
}

func (s *Session) summaryLocked() models.SessionSummary {
	return summarize(s.state.Score, s.state.TotalQuestions)
}

func summarize(score, total int) models.SessionSummary {
	sum := models.SessionSummary{Score: score, Total: total}
	if total > 0 {
		sum.Percent = int(math.Round(float64(score) / float64(total) * 100))
	}
	return sum
}

// Snapshot copies the session for rendering. The summary is only set once finished.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:        s.ID,
		Source:    s.Source,
		Status:    s.status,
		State:     s.stateLocked(),
		DeckSize:  s.deckSize,
		Remaining: s.deck.Len(),
		StartedAt: s.StartedAt,
	}
	if s.status == StatusFinished {
		sum := s.summaryLocked()
		snap.Summary = &sum
	}
	return snap
}
