package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/artikelfinder/internal/models"
)

// MockDailyWordRepository is a mock implementation of repository.DailyWordRepository
type MockDailyWordRepository struct {
	mock.Mock
}

func (m *MockDailyWordRepository) Get(ctx context.Context) (*models.DailyWordRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DailyWordRecord), args.Error(1)
}

func (m *MockDailyWordRepository) Save(ctx context.Context, rec models.DailyWordRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
