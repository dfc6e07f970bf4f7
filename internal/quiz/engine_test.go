package quiz_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/quiz"
)

var (
	tisch = models.WordEntry{ID: 1, Word: "Tisch", Article: models.ArticleDer}
	tuer  = models.WordEntry{ID: 2, Word: "Tür", Article: models.ArticleDie}
)

type memStats struct {
	mu    sync.Mutex
	stats map[int64]models.WordStat
	err   error
}

func newMemStats() *memStats {
	return &memStats{stats: make(map[int64]models.WordStat)}
}

func (m *memStats) RecordAnswer(_ context.Context, word models.WordEntry, correct bool) (models.WordStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return models.WordStat{}, m.err
	}
	st := m.stats[word.ID]
	st.WordID, st.Word = word.ID, word.Word
	if correct {
		st.Correct++
	} else {
		st.Incorrect++
	}
	m.stats[word.ID] = st
	return st, nil
}

type memStreaks struct {
	rec     models.StreakRecord
	saves   int
	saveErr error
}

func (m *memStreaks) GetStreak(context.Context) (models.StreakRecord, error) { return m.rec, nil }

func (m *memStreaks) SaveStreak(_ context.Context, rec models.StreakRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.rec = rec
	m.saves++
	return nil
}

type recordingListener struct {
	started  int
	goals    []models.GoalCompletion
	finished []models.SessionSummary
}

func (l *recordingListener) QuestionStarted(*quiz.Session, quiz.Question) { l.started++ }

func (l *recordingListener) GoalCompleted(_ *quiz.Session, c models.GoalCompletion) {
	l.goals = append(l.goals, c)
}

func (l *recordingListener) SessionFinished(_ *quiz.Session, s models.SessionSummary) {
	l.finished = append(l.finished, s)
}

type EngineTestSuite struct {
	suite.Suite
	ctx      context.Context
	stats    *memStats
	streaks  *memStreaks
	listener *recordingListener
	now      time.Time
	engine   *quiz.Engine
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stats = newMemStats()
	s.streaks = &memStreaks{}
	s.listener = &recordingListener{}
	s.now = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	s.engine = s.newEngine()
}

func (s *EngineTestSuite) newEngine() *quiz.Engine {
	n := 0
	return quiz.NewEngine(s.stats, s.streaks,
		quiz.WithClock(calendar.FixedClock(s.now)),
		quiz.WithRand(seeded(7)),
		quiz.WithListener(s.listener),
		quiz.WithIDGenerator(func() string {
			n++
			return "session-" + string(rune('0'+n))
		}),
	)
}

func (s *EngineTestSuite) start(words []models.WordEntry, limit int) (*quiz.Session, quiz.Question) {
	sess, q, err := s.engine.Start(s.ctx, quiz.StartInput{
		Source:        models.AllWords(),
		Words:         words,
		DeckLengthCap: limit,
	})
	s.Require().NoError(err)
	return sess, q
}

func (s *EngineTestSuite) TestStart_DrawsFirstQuestion() {
	sess, q := s.start(sampleWords(5), 3)

	s.Equal("session-1", sess.ID)
	s.Require().NotNil(q.Word)
	s.Equal(1, q.Number)
	s.Equal(2, q.Remaining)
	s.False(q.Exhausted)
	s.Equal(quiz.StatusInProgress, sess.Status())

	st := sess.State()
	s.Equal(0, st.Score)
	s.Equal(0, st.TotalQuestions)
	s.Equal(q.Word, st.CurrentWord)
	s.Equal(1, s.listener.started)
}

func (s *EngineTestSuite) TestStart_EmptyFavorites() {
	_, _, err := s.engine.Start(s.ctx, quiz.StartInput{
		Source: models.FavoritesOnly(),
		Words:  sampleWords(5),
	})
	s.ErrorIs(err, quiz.ErrEmptySource)
}

// Two-word deck where only Tisch is answered correctly.
func (s *EngineTestSuite) TestTwoWordSession() {
	sess, q := s.start([]models.WordEntry{tisch, tuer}, 0)

	answers := map[string]string{"Tisch": "der", "Tür": "das"}
	for !q.Exhausted {
		s.Require().NotNil(q.Word)
		res, err := s.engine.Answer(s.ctx, sess, answers[q.Word.Word], 10)
		s.Require().NoError(err)
		s.Equal(q.Word.Word == "Tisch", res.Outcome.IsCorrect)
		s.Equal(q.Word.Article, res.Outcome.CorrectArticle)
		s.Nil(res.State.CurrentWord)
		q = s.engine.Next(s.ctx, sess)
	}

	s.Equal(quiz.StatusFinished, sess.Status())
	sum := sess.Summary()
	s.Equal(models.SessionSummary{Score: 1, Total: 2, Percent: 50}, sum)

	s.Equal(models.WordStat{WordID: 1, Word: "Tisch", Correct: 1}, s.stats.stats[1])
	s.Equal(models.WordStat{WordID: 2, Word: "Tür", Incorrect: 1}, s.stats.stats[2])

	s.Require().Len(s.listener.finished, 1)
	s.Equal(sum, s.listener.finished[0])
	s.Empty(s.listener.goals)
}

func (s *EngineTestSuite) TestNext_ExhaustionIsIdempotent() {
	sess, q := s.start(sampleWords(1), 0)
	_, err := s.engine.Answer(s.ctx, sess, string(q.Word.Article), 0)
	s.Require().NoError(err)

	for i := 0; i < 3; i++ {
		q = s.engine.Next(s.ctx, sess)
		s.True(q.Exhausted)
		s.Nil(q.Word)
		s.Equal(1, q.Number)
	}
	s.Len(s.listener.finished, 1)

	snap := sess.Snapshot()
	s.Equal(quiz.StatusFinished, snap.Status)
	s.Require().NotNil(snap.Summary)
	s.Equal(100, snap.Summary.Percent)
}

func (s *EngineTestSuite) TestAnswer_WithoutActiveQuestion() {
	sess, q := s.start(sampleWords(3), 0)

	_, err := s.engine.Answer(s.ctx, sess, string(q.Word.Article), 0)
	s.Require().NoError(err)

	_, err = s.engine.Answer(s.ctx, sess, string(q.Word.Article), 0)
	s.ErrorIs(err, quiz.ErrNoActiveQuestion)
	s.Equal(1, sess.State().TotalQuestions)
}

func (s *EngineTestSuite) TestAnswer_ScoreNeverExceedsTotal() {
	sess, q := s.start(sampleWords(9), 0)

	prevScore, prevTotal := 0, 0
	for i := 0; !q.Exhausted; i++ {
		selected := "das"
		if i%2 == 0 {
			selected = string(q.Word.Article)
		}
		res, err := s.engine.Answer(s.ctx, sess, selected, 0)
		s.Require().NoError(err)

		s.Equal(prevTotal+1, res.State.TotalQuestions)
		s.GreaterOrEqual(res.State.Score, prevScore)
		s.LessOrEqual(res.State.Score, res.State.TotalQuestions)
		prevScore, prevTotal = res.State.Score, res.State.TotalQuestions

		q = s.engine.Next(s.ctx, sess)
	}
	s.Equal(9, prevTotal)
}

func (s *EngineTestSuite) TestAnswer_StatFailureLeavesStateUnchanged() {
	sess, q := s.start(sampleWords(3), 0)
	before := sess.State()
	s.stats.err = errors.New("disk full")

	_, err := s.engine.Answer(s.ctx, sess, string(q.Word.Article), 3)
	s.Require().Error(err)
	s.NotErrorIs(err, quiz.ErrNoActiveQuestion)
	s.NotErrorIs(err, quiz.ErrGoalNotCredited)

	s.Equal(before, sess.State())
	s.Equal(0, s.streaks.saves)

	s.stats.err = nil
	res, err := s.engine.Answer(s.ctx, sess, string(q.Word.Article), 3)
	s.Require().NoError(err)
	s.Equal(1, res.State.Score)
}

func (s *EngineTestSuite) TestAnswer_GoalIsEdgeTriggered() {
	sess, q := s.start(sampleWords(5), 0)

	var goals []*models.GoalCompletion
	for !q.Exhausted {
		res, err := s.engine.Answer(s.ctx, sess, "der", 3)
		s.Require().NoError(err)
		goals = append(goals, res.Goal)
		q = s.engine.Next(s.ctx, sess)
	}

	s.Nil(goals[0])
	s.Nil(goals[1])
	s.Equal(&models.GoalCompletion{Streak: 1}, goals[2])
	s.Nil(goals[3])
	s.Nil(goals[4])

	s.Equal(models.StreakRecord{Streak: 1, LastCompleted: "2026-10-15"}, s.streaks.rec)
	s.Equal(1, s.streaks.saves)
	s.Len(s.listener.goals, 1)
}

func (s *EngineTestSuite) TestAnswer_GoalOncePerDayAcrossSessions() {
	for i := 0; i < 2; i++ {
		sess, q := s.start(sampleWords(2), 0)
		for !q.Exhausted {
			_, err := s.engine.Answer(s.ctx, sess, "die", 2)
			s.Require().NoError(err)
			q = s.engine.Next(s.ctx, sess)
		}
	}
	s.Equal(1, s.streaks.rec.Streak)
	s.Equal(1, s.streaks.saves)
}

func (s *EngineTestSuite) TestAnswer_StreakContinuesAndBreaks() {
	s.streaks.rec = models.StreakRecord{Streak: 4, LastCompleted: "2026-10-14"}
	sess, _ := s.start(sampleWords(2), 0)
	res, err := s.engine.Answer(s.ctx, sess, "der", 1)
	s.Require().NoError(err)
	s.Equal(&models.GoalCompletion{Streak: 5}, res.Goal)

	s.streaks.rec = models.StreakRecord{Streak: 4, LastCompleted: "2026-10-12"}
	sess, _ = s.start(sampleWords(2), 0)
	res, err = s.engine.Answer(s.ctx, sess, "der", 1)
	s.Require().NoError(err)
	s.Equal(&models.GoalCompletion{Streak: 1}, res.Goal)
}

func (s *EngineTestSuite) TestAnswer_StreakWriteFailureKeepsAnswer() {
	s.streaks.saveErr = errors.New("locked")
	sess, _ := s.start(sampleWords(2), 0)

	res, err := s.engine.Answer(s.ctx, sess, "der", 1)
	s.Require().ErrorIs(err, quiz.ErrGoalNotCredited)
	s.Equal(1, res.State.TotalQuestions)
	s.Nil(res.Goal)
	s.Equal(1, sess.State().TotalQuestions)
	s.Nil(sess.State().CurrentWord)
}

func TestEngine_DefaultsAndToday(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	// 23:30 UTC is already the next day in Berlin.
	now := time.Date(2026, 10, 14, 23, 30, 0, 0, time.UTC)
	e := quiz.NewEngine(newMemStats(), &memStreaks{},
		quiz.WithClock(calendar.FixedClock(now)),
		quiz.WithLocation(berlin),
	)
	assert.Equal(t, calendar.Date("2026-10-15"), e.Today())

	sess, _, err := e.Start(context.Background(), quiz.StartInput{Source: models.AllWords(), Words: sampleWords(2)})
	require.NoError(t, err)
	assert.Len(t, sess.ID, 36)
}
