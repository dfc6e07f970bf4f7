package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
	"github.com/vytor/artikelfinder/internal/repository/sqlite"
	"github.com/vytor/artikelfinder/internal/testutil"
)

type SettingsRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.SettingsRepository
}

func (s *SettingsRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewSettingsRepository(s.db)
}

func (s *SettingsRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *SettingsRepositorySuite) TestGet_DefaultsWhenEmpty() {
	got, err := s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(models.Settings{DeckLengthCap: 10, DailyGoal: 10}, got)
}

func (s *SettingsRepositorySuite) TestSaveAndGet() {
	ctx := context.Background()
	want := models.Settings{DeckLengthCap: 0, DailyGoal: 25}

	s.Require().NoError(s.repo.Save(ctx, want))
	got, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Equal(want, got)
}

func (s *SettingsRepositorySuite) TestGet_CorruptFallsBackToDefaults() {
	_, err := s.db.Exec(`INSERT INTO settings (id, deck_length_cap, daily_goal) VALUES (1, -4, 0)`)
	s.Require().NoError(err)

	got, err := s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(models.DefaultSettings(), got)
}

func (s *SettingsRepositorySuite) TestGet_NonNumericFallsBackToDefaults() {
	_, err := s.db.Exec(`INSERT INTO settings (id, deck_length_cap, daily_goal) VALUES (1, 'ten', 'lots')`)
	s.Require().NoError(err)

	got, err := s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(models.DefaultSettings(), got)

	_, err = s.db.Exec(`UPDATE settings SET deck_length_cap = 20, daily_goal = 'many'`)
	s.Require().NoError(err)

	got, err = s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Equal(models.DefaultSettings(), got)
}

func TestSettingsRepositorySuite(t *testing.T) {
	suite.Run(t, new(SettingsRepositorySuite))
}
