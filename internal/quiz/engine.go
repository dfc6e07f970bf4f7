package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
)

// Listener receives advisory engine events. Nothing in the engine depends on delivery.
type Listener interface {
	QuestionStarted(s *Session, q Question)
	GoalCompleted(s *Session, c models.GoalCompletion)
	SessionFinished(s *Session, summary models.SessionSummary)
}

type nopListener struct{}

func (nopListener) QuestionStarted(*Session, Question)              {}
func (nopListener) GoalCompleted(*Session, models.GoalCompletion)   {}
func (nopListener) SessionFinished(*Session, models.SessionSummary) {}

// ErrGoalNotCredited wraps a failed streak write. The answer it accompanies
// was still recorded and its AnswerResult is valid.
var ErrGoalNotCredited = errors.New("quiz: daily goal not credited")

// StartInput is everything read at session start.
type StartInput struct {
	Source    models.QuizSource
	Words     []models.WordEntry
	Favorites map[int64]struct{}
	// DeckLengthCap limits the deck; 0 means unlimited.
	DeckLengthCap int
}

// AnswerResult is returned for every recorded answer.
type AnswerResult struct {
	Outcome models.AnswerOutcome   `json:"outcome"`
	State   models.SessionState    `json:"state"`
	Stat    models.WordStat        `json:"stat"`
	Goal    *models.GoalCompletion `json:"goal,omitempty"`
}

// Engine drives quiz sessions. It holds no per-session state.
type Engine struct {
	stats    StatRecorder
	streaks  StreakStore
	clock    calendar.Clock
	loc      *time.Location
	listener Listener
	newID    func() string

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for "today".
func WithClock(c calendar.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLocation sets the time zone that defines calendar days.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithListener subscribes l to engine events.
func WithListener(l Listener) Option {
	return func(e *Engine) { e.listener = l }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) { e.newID = fn }
}

// NewEngine creates an Engine persisting through stats and streaks.
func NewEngine(stats StatRecorder, streaks StreakStore, opts ...Option) *Engine {
	e := &Engine{
		stats:    stats,
		streaks:  streaks,
		clock:    calendar.SystemClock{},
		loc:      time.UTC,
		listener: nopListener{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Today returns the engine's current calendar day.
func (e *Engine) Today() calendar.Date {
	return calendar.Today(e.clock, e.loc)
}

// Start builds a fresh deck and draws the first question. It returns
// ErrEmptySource (wrapped) when the source has no words.
func (e *Engine) Start(ctx context.Context, in StartInput) (*Session, Question, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")
	log.Debug("starting session: source=%s, cap=%d, words=%d", in.Source.Kind, in.DeckLengthCap, len(in.Words))

	e.rngMu.Lock()
	deck, err := BuildDeck(in.Source, in.Words, in.Favorites, in.DeckLengthCap, e.rng)
	e.rngMu.Unlock()
	if err != nil {
		log.Debug("deck not built: %v", err)
		return nil, Question{}, err
	}

	s := &Session{
		ID:        e.newID(),
		Source:    in.Source,
		StartedAt: e.clock.Now(),
		status:    StatusInProgress,
		deck:      deck,
		deckSize:  deck.Len(),
	}
	log.Info("session started: id=%s, source=%s, deck_size=%d", s.ID, in.Source.Kind, s.deckSize)

	q := e.Next(ctx, s)
	return s, q, nil
}

// Next draws the next question. On exhaustion the session becomes Finished and
// every later call returns an exhausted Question.
func (e *Engine) Next(ctx context.Context, s *Session) Question {
	s.mu.Lock()
	q, finished := e.nextLocked(s)
	summary := s.summaryLocked()
	s.mu.Unlock()

	if q.Exhausted {
		if finished {
			logger.FromContext(ctx).WithPrefix("quiz").Info("session finished: id=%s, score=%d/%d (%d%%)",
				s.ID, summary.Score, summary.Total, summary.Percent)
			e.listener.SessionFinished(s, summary)
		}
		return q
	}
	e.listener.QuestionStarted(s, q)
	return q
}

// nextLocked reports finished=true only on the transition into Finished.
func (e *Engine) nextLocked(s *Session) (Question, bool) {
	if s.status == StatusFinished {
		s.state.CurrentWord = nil
		return Question{Number: s.drawn, Exhausted: true}, false
	}
	w, ok := s.deck.Next()
	if !ok {
		s.status = StatusFinished
		s.state.CurrentWord = nil
		return Question{Number: s.drawn, Exhausted: true}, true
	}
	s.drawn++
	s.state.CurrentWord = &w
	word := w
	return Question{Word: &word, Number: s.drawn, Remaining: s.deck.Len()}, false
}

// Answer scores selected against the current question, persists the word's
// lifetime stat and, when dailyGoal is reached exactly, credits the streak.
//
// If the stat cannot be persisted nothing changes and the question stays
// open. If only the streak write fails, the answer stands: the result is
// valid and the error reports the failed write.
func (e *Engine) Answer(ctx context.Context, s *Session, selected string, dailyGoal int) (AnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	s.mu.Lock()
	result, err := e.answerLocked(ctx, s, selected, dailyGoal)
	s.mu.Unlock()

	if result.Goal != nil {
		log.Info("daily goal reached: session=%s, streak=%d", s.ID, result.Goal.Streak)
		e.listener.GoalCompleted(s, *result.Goal)
	}
	return result, err
}

func (e *Engine) answerLocked(ctx context.Context, s *Session, selected string, dailyGoal int) (AnswerResult, error) {
	log := logger.FromContext(ctx).WithPrefix("quiz")

	if s.state.CurrentWord == nil {
		log.Error("answer without active question: session=%s, status=%s", s.ID, s.status)
		return AnswerResult{}, ErrNoActiveQuestion
	}
	word := *s.state.CurrentWord
	outcome := score(word, selected)
	log.Debug("answer: session=%s, word_id=%d, selected=%q, correct=%t", s.ID, word.ID, selected, outcome.IsCorrect)

	stat, err := e.stats.RecordAnswer(ctx, word, outcome.IsCorrect)
	if err != nil {
		log.Error("failed to persist word stat: word_id=%d: %v", word.ID, err)
		return AnswerResult{}, fmt.Errorf("record word stat: %w", err)
	}

	s.state.TotalQuestions++
	if outcome.IsCorrect {
		s.state.Score++
	}
	s.state.CurrentWord = nil

	result := AnswerResult{Outcome: outcome, State: s.stateLocked(), Stat: stat}

	completion, err := e.evaluateGoal(ctx, s.state.TotalQuestions, dailyGoal)
	if err != nil {
		log.Error("failed to credit daily goal: session=%s: %v", s.ID, err)
		return result, fmt.Errorf("%w: %w", ErrGoalNotCredited, err)
	}
	result.Goal = completion
	return result, nil
}

func (e *Engine) evaluateGoal(ctx context.Context, total, dailyGoal int) (*models.GoalCompletion, error) {
	if dailyGoal <= 0 || total != dailyGoal {
		return nil, nil
	}
	today := e.Today()

	rec, err := e.streaks.GetStreak(ctx)
	if err != nil {
		return nil, fmt.Errorf("load streak: %w", err)
	}
	rec, _ = ExpireStreak(rec, today)

	updated, credited := EvaluateDailyGoal(total, dailyGoal, rec, today)
	if !credited {
		return nil, nil
	}
	if err := e.streaks.SaveStreak(ctx, updated); err != nil {
		return nil, fmt.Errorf("save streak: %w", err)
	}
	return &models.GoalCompletion{Streak: updated.Streak}, nil
}
