package api_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/artikelfinder/internal/api"
	"github.com/vytor/artikelfinder/internal/calendar"
	"github.com/vytor/artikelfinder/internal/logger"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/quiz"
	"github.com/vytor/artikelfinder/internal/repository/sqlite"
	"github.com/vytor/artikelfinder/internal/services"
	"github.com/vytor/artikelfinder/internal/testutil"
)

func TestMain(m *testing.M) {
	logger.SetDefault(logger.Discard())
	os.Exit(m.Run())
}

type APISuite struct {
	suite.Suite
	db      *sql.DB
	closeDB func()
	handler http.Handler
}

func (s *APISuite) SetupTest() {
	db := testutil.NewTestDB(s.T())
	s.db = db
	s.closeDB = func() { testutil.MustClose(s.T(), db) }

	cat := testutil.NewTestCatalog(s.T())
	clock := calendar.FixedClock(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC))

	statsRepo := sqlite.NewWordStatRepository(db)
	streakRepo := sqlite.NewStreakRepository(db)
	favoriteRepo := sqlite.NewFavoriteRepository(db)
	settingsRepo := sqlite.NewSettingsRepository(db)

	engine := quiz.NewEngine(statsRepo, streakRepo, quiz.WithClock(clock))
	srv := &api.Server{
		QuizService:      services.NewQuizService(cat, engine, favoriteRepo, settingsRepo),
		StatsService:     services.NewStatsService(cat, statsRepo),
		StreakService:    services.NewStreakService(streakRepo, clock, time.UTC),
		FavoritesService: services.NewFavoritesService(cat, favoriteRepo),
		SettingsService:  services.NewSettingsService(settingsRepo),
		WordService:      services.NewWordService(cat, sqlite.NewDailyWordRepository(db), clock, time.UTC),
		DataService:      services.NewDataService(cat, sqlite.NewSnapshotRepository(db), clock),
		DB:               db,
	}
	s.handler = srv.Routes()
}

func (s *APISuite) TearDownTest() {
	s.closeDB()
}

func (s *APISuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			s.Require().NoError(json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](s *APISuite, rec *httptest.ResponseRecorder) T {
	var v T
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *APISuite) TestHealthAndReady() {
	rec := s.do(http.MethodGet, "/health", nil)
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("nosniff", rec.Header().Get("X-Content-Type-Options"))
	s.NotEmpty(rec.Header().Get("X-Request-ID"))

	rec = s.do(http.MethodGet, "/ready", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *APISuite) TestStartQuiz_EmptyFavorites() {
	rec := s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "favorites"})
	s.Equal(http.StatusUnprocessableEntity, rec.Code)

	body := decode[errorResponse](s, rec)
	s.Equal("EMPTY_SOURCE", body.Error.Code)
	s.NotEmpty(body.Error.Message)
}

func (s *APISuite) TestStartQuiz_BadRequests() {
	rec := s.do(http.MethodPost, "/api/quiz/sessions", `{"source":`)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "everything"})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", decode[errorResponse](s, rec).Error.Code)

	rec = s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "curated"})
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestStartQuiz_EmptyBodyQuizzesAllWords() {
	rec := s.do(http.MethodPost, "/api/quiz/sessions", nil)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())

	view := decode[services.QuizView](s, rec)
	s.Equal(models.SourceAllWords, view.Session.Source.Kind)
	s.Equal(8, view.Session.DeckSize)
}

func (s *APISuite) TestStartQuiz_CorruptSettingsUseDefaults() {
	_, err := s.db.Exec(`INSERT INTO settings (id, deck_length_cap, daily_goal) VALUES (1, 'ten', 'lots')`)
	s.Require().NoError(err)

	rec := s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "all"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Equal(8, decode[services.QuizView](s, rec).Session.DeckSize)
}

func (s *APISuite) TestAnswer_IsCaseSensitive() {
	rec := s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "all"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	view := decode[services.QuizView](s, rec)

	rec = s.do(http.MethodPost, "/api/quiz/sessions/"+view.Session.ID+"/answer", answer("Der"))
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	res := decode[services.AnswerView](s, rec)
	s.False(res.Outcome.IsCorrect)
	s.Equal(1, res.Session.State.TotalQuestions)
	s.Equal(0, res.Session.State.Score)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/stats/words/%d", view.Question.Word.ID), nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(1, decode[models.WordStat](s, rec).Incorrect)
}

func (s *APISuite) TestQuizFlowReachesDailyGoal() {
	rec := s.do(http.MethodPut, "/api/settings", models.Settings{DeckLengthCap: 2, DailyGoal: 2})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "all"})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	view := decode[services.QuizView](s, rec)
	s.Equal(2, view.Session.DeckSize)
	id := view.Session.ID

	var goal *models.GoalCompletion
	for i := 0; i < 2; i++ {
		s.Require().NotNil(view.Question.Word)
		rec = s.do(http.MethodPost, "/api/quiz/sessions/"+id+"/answer", answer(string(view.Question.Word.Article)))
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
		res := decode[services.AnswerView](s, rec)
		s.True(res.Outcome.IsCorrect)
		if res.Goal != nil {
			goal = res.Goal
		}

		rec = s.do(http.MethodPost, "/api/quiz/sessions/"+id+"/answer", answer("der"))
		s.Equal(http.StatusConflict, rec.Code)

		rec = s.do(http.MethodPost, "/api/quiz/sessions/"+id+"/next", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		view = decode[services.QuizView](s, rec)
	}
	s.True(view.Question.Exhausted)
	s.Require().NotNil(view.Session.Summary)
	s.Equal(100, view.Session.Summary.Percent)
	s.Equal(&models.GoalCompletion{Streak: 1}, goal)

	rec = s.do(http.MethodGet, "/api/streak", nil)
	s.Equal(models.StreakRecord{Streak: 1, LastCompleted: "2026-10-15"}, decode[models.StreakRecord](s, rec))

	rec = s.do(http.MethodGet, "/api/stats", nil)
	stats := decode[models.StatsOverview](s, rec)
	s.Equal(2, stats.TotalAnswers)
	s.Equal(100.0, stats.Accuracy)
	s.Len(stats.Mastered, 2)
	s.Empty(stats.Difficult)
}

func (s *APISuite) TestQuiz_UnknownSession() {
	rec := s.do(http.MethodGet, "/api/quiz/sessions/nope", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *APISuite) TestFavoritesQuiz() {
	rec := s.do(http.MethodPost, "/api/favorites/3/toggle", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.True(decode[map[string]any](s, rec)["favorite"].(bool))

	rec = s.do(http.MethodPut, "/api/favorites/999", nil)
	s.Equal(http.StatusNotFound, rec.Code)
	rec = s.do(http.MethodPut, "/api/favorites/abc", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/favorites", nil)
	favs := decode[[]models.WordEntry](s, rec)
	s.Require().Len(favs, 1)
	s.Equal("Haus", favs[0].Word)

	rec = s.do(http.MethodPost, "/api/quiz/sessions", map[string]any{"source": "favorites"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	view := decode[services.QuizView](s, rec)
	s.Equal(1, view.Session.DeckSize)
	s.Equal(int64(3), view.Question.Word.ID)
}

func (s *APISuite) TestWords() {
	rec := s.do(http.MethodGet, "/api/words?letter=T", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	words := decode[[]models.WordEntry](s, rec)
	s.Require().Len(words, 2)
	s.Equal("Tisch", words[0].Word)
	s.Equal("Tür", words[1].Word)

	rec = s.do(http.MethodGet, "/api/words?letter=Ta", nil)
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/words/8", nil)
	s.Equal("Wasser", decode[models.WordEntry](s, rec).Word)

	rec = s.do(http.MethodGet, "/api/words/80", nil)
	s.Equal(http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/words/random", nil)
	s.Equal(http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/words/daily", nil)
	first := decode[models.DailyWord](s, rec)
	s.Equal(calendar.Date("2026-10-15"), first.Day)
	rec = s.do(http.MethodGet, "/api/words/daily", nil)
	s.Equal(first.Word, decode[models.DailyWord](s, rec).Word)
}

func (s *APISuite) TestExportImportReset() {
	s.do(http.MethodPut, "/api/favorites/2", nil)

	rec := s.do(http.MethodGet, "/api/data/export", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Header().Get("Content-Disposition"), "artikelfinder-2026-10-15.json")
	exported := rec.Body.String()

	rec = s.do(http.MethodDelete, "/api/data", nil)
	s.Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodGet, "/api/favorites", nil)
	s.Empty(decode[[]models.WordEntry](s, rec))

	rec = s.do(http.MethodPost, "/api/data/import", exported)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	report := decode[services.ImportReport](s, rec)
	s.Equal(1, report.Favorites)

	rec = s.do(http.MethodPost, "/api/data/import", `{"favorites": []}`)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *APISuite) TestSettingsValidation() {
	rec := s.do(http.MethodPut, "/api/settings", map[string]any{"deck_length_cap": 5, "daily_goal": 0})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("VALIDATION_ERROR", decode[errorResponse](s, rec).Error.Code)

	rec = s.do(http.MethodGet, "/api/settings", nil)
	s.Equal(models.DefaultSettings(), decode[models.Settings](s, rec))
}

func answer(article string) map[string]string {
	return map[string]string{"article": article}
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}
