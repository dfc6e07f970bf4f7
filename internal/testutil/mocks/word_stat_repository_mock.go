package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/artikelfinder/internal/models"
)

// MockWordStatRepository is a mock implementation of repository.WordStatRepository
type MockWordStatRepository struct {
	mock.Mock
}

func (m *MockWordStatRepository) RecordAnswer(ctx context.Context, word models.WordEntry, correct bool) (models.WordStat, error) {
	args := m.Called(ctx, word, correct)
	return args.Get(0).(models.WordStat), args.Error(1)
}

func (m *MockWordStatRepository) Get(ctx context.Context, wordID int64) (*models.WordStat, error) {
	args := m.Called(ctx, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordStat), args.Error(1)
}

func (m *MockWordStatRepository) List(ctx context.Context) ([]models.WordStat, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordStat), args.Error(1)
}

func (m *MockWordStatRepository) MostIncorrect(ctx context.Context, limit int) ([]models.WordStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordStat), args.Error(1)
}

func (m *MockWordStatRepository) MostCorrect(ctx context.Context, limit int) ([]models.WordStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WordStat), args.Error(1)
}

func (m *MockWordStatRepository) DeleteAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
