package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/artikelfinder/internal/models"
)

// MockStreakRepository is a mock implementation of repository.StreakRepository
type MockStreakRepository struct {
	mock.Mock
}

func (m *MockStreakRepository) GetStreak(ctx context.Context) (models.StreakRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.StreakRecord), args.Error(1)
}

func (m *MockStreakRepository) SaveStreak(ctx context.Context, rec models.StreakRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
