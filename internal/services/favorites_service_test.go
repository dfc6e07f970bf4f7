package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/artikelfinder/internal/errors"
	"github.com/vytor/artikelfinder/internal/services"
	"github.com/vytor/artikelfinder/internal/testutil"
	"github.com/vytor/artikelfinder/internal/testutil/mocks"
)

func TestFavoritesService_ListSkipsUnknownIDs(t *testing.T) {
	repo := new(mocks.MockFavoriteRepository)
	repo.On("List", mock.Anything).Return([]int64{3, 999, 1}, nil)
	svc := services.NewFavoritesService(testutil.NewTestCatalog(t), repo)

	words, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "Haus", words[0].Word)
	assert.Equal(t, "Tisch", words[1].Word)
}

func TestFavoritesService_AddValidatesWord(t *testing.T) {
	repo := new(mocks.MockFavoriteRepository)
	repo.On("Add", mock.Anything, int64(2)).Return(nil).Once()
	svc := services.NewFavoritesService(testutil.NewTestCatalog(t), repo)

	require.NoError(t, svc.Add(context.Background(), 2))
	err := svc.Add(context.Background(), 77)
	assert.True(t, errors.HasCode(err, errors.ErrCodeNotFound))
	repo.AssertExpectations(t)
}

func TestFavoritesService_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockFavoriteRepository)
	svc := services.NewFavoritesService(testutil.NewTestCatalog(t), repo)

	repo.On("Has", mock.Anything, int64(4)).Return(false, nil).Once()
	repo.On("Add", mock.Anything, int64(4)).Return(nil).Once()
	on, err := svc.Toggle(ctx, 4)
	require.NoError(t, err)
	assert.True(t, on)

	repo.On("Has", mock.Anything, int64(4)).Return(true, nil).Once()
	repo.On("Remove", mock.Anything, int64(4)).Return(nil).Once()
	on, err = svc.Toggle(ctx, 4)
	require.NoError(t, err)
	assert.False(t, on)

	repo.AssertExpectations(t)
}
