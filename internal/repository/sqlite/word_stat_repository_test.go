package sqlite_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/artikelfinder/internal/models"
	"github.com/vytor/artikelfinder/internal/repository"
	"github.com/vytor/artikelfinder/internal/repository/sqlite"
	"github.com/vytor/artikelfinder/internal/testutil"
)

type WordStatRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.WordStatRepository
}

func (s *WordStatRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewWordStatRepository(s.db)
}

func (s *WordStatRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *WordStatRepositorySuite) word(id int64) models.WordEntry {
	for _, w := range testutil.Words() {
		if w.ID == id {
			return w
		}
	}
	s.FailNow("unknown test word", "id=%d", id)
	return models.WordEntry{}
}

func (s *WordStatRepositorySuite) TestRecordAnswer_CreatesAndIncrements() {
	ctx := context.Background()
	tisch := s.word(1)

	st, err := s.repo.RecordAnswer(ctx, tisch, true)
	s.Require().NoError(err)
	s.Equal(models.WordStat{WordID: 1, Word: "Tisch", Correct: 1}, st)

	st, err = s.repo.RecordAnswer(ctx, tisch, false)
	s.Require().NoError(err)
	s.Equal(models.WordStat{WordID: 1, Word: "Tisch", Correct: 1, Incorrect: 1}, st)

	got, err := s.repo.Get(ctx, 1)
	s.Require().NoError(err)
	s.Equal(st, *got)
}

func (s *WordStatRepositorySuite) TestRecordAnswer_HomographsAreSeparate() {
	ctx := context.Background()

	_, err := s.repo.RecordAnswer(ctx, s.word(6), true)
	s.Require().NoError(err)
	_, err = s.repo.RecordAnswer(ctx, s.word(7), false)
	s.Require().NoError(err)

	stats, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Equal([]models.WordStat{
		{WordID: 6, Word: "Band", Correct: 1},
		{WordID: 7, Word: "Band", Incorrect: 1},
	}, stats)
}

func (s *WordStatRepositorySuite) TestRecordAnswer_ConcurrentIncrementsAreNotLost() {
	ctx := context.Background()
	haus := s.word(3)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(correct bool) {
			defer wg.Done()
			_, err := s.repo.RecordAnswer(ctx, haus, correct)
			s.NoError(err)
		}(i%2 == 0)
	}
	wg.Wait()

	got, err := s.repo.Get(ctx, 3)
	s.Require().NoError(err)
	s.Equal(10, got.Correct)
	s.Equal(10, got.Incorrect)
}

func (s *WordStatRepositorySuite) TestGet_NotFound() {
	_, err := s.repo.Get(context.Background(), 42)
	s.ErrorIs(err, sql.ErrNoRows)
}

func (s *WordStatRepositorySuite) TestMostIncorrectAndMostCorrect() {
	ctx := context.Background()
	record := func(id int64, correct, incorrect int) {
		for i := 0; i < correct; i++ {
			_, err := s.repo.RecordAnswer(ctx, s.word(id), true)
			s.Require().NoError(err)
		}
		for i := 0; i < incorrect; i++ {
			_, err := s.repo.RecordAnswer(ctx, s.word(id), false)
			s.Require().NoError(err)
		}
	}
	record(1, 3, 0) // Tisch
	record(2, 1, 2) // Tür
	record(3, 0, 2) // Haus
	record(4, 5, 1) // Apfel

	difficult, err := s.repo.MostIncorrect(ctx, 2)
	s.Require().NoError(err)
	s.Require().Len(difficult, 2)
	// Tie on incorrect=2 is broken by word.
	s.Equal("Haus", difficult[0].Word)
	s.Equal("Tür", difficult[1].Word)

	mastered, err := s.repo.MostCorrect(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(mastered, 3)
	s.Equal([]int64{4, 1, 2}, []int64{mastered[0].WordID, mastered[1].WordID, mastered[2].WordID})
}

func (s *WordStatRepositorySuite) TestDeleteAll() {
	ctx := context.Background()
	_, err := s.repo.RecordAnswer(ctx, s.word(1), true)
	s.Require().NoError(err)

	s.Require().NoError(s.repo.DeleteAll(ctx))

	stats, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Empty(stats)
}

func TestWordStatRepositorySuite(t *testing.T) {
	suite.Run(t, new(WordStatRepositorySuite))
}
