package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	gamemock "github.com/riskibarqy/season-tickets/internal/mocks/domain/game"
)

func TestGameRepository_ListIsCachedPerMonth(t *testing.T) {
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, time.Minute)
	ctx := context.Background()

	april := []game.Game{{Key: 1, OfficialDate: "2025-04-01"}}
	next.On("List", mock.Anything, game.Filter{Month: 4}).Return(april, nil).Once()
	next.On("List", mock.Anything, game.Filter{}).Return(april, nil).Once()

	for i := 0; i < 3; i++ {
		got, err := repo.List(ctx, game.Filter{Month: 4})
		require.NoError(t, err)
		require.Equal(t, april, got)
	}
	_, err := repo.List(ctx, game.Filter{})
	require.NoError(t, err)
}

func TestGameRepository_CachesMissingGame(t *testing.T) {
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, time.Minute)

	next.On("Get", mock.Anything, int64(99)).Return(game.Game{}, false, nil).Once()

	for i := 0; i < 2; i++ {
		_, exists, err := repo.Get(context.Background(), 99)
		require.NoError(t, err)
		require.False(t, exists)
	}
}

func TestGameRepository_UpsertInvalidates(t *testing.T) {
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, time.Minute)
	ctx := context.Background()

	promos := []game.Promotion{{OfferID: 10, GameKey: 5, Name: "Bobblehead"}}
	next.On("ListPromotions", mock.Anything, int64(5)).Return(promos, nil).Twice()
	next.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(game.UpsertResult{}, nil).Once()

	_, err := repo.ListPromotions(ctx, 5)
	require.NoError(t, err)
	_, err = repo.ListPromotions(ctx, 5)
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, nil, nil)
	require.NoError(t, err)

	_, err = repo.ListPromotions(ctx, 5)
	require.NoError(t, err)
}

func TestGameRepository_FailedUpsertKeepsCache(t *testing.T) {
	next := gamemock.NewRepository(t)
	repo := NewGameRepository(next, time.Minute)
	ctx := context.Background()

	next.On("Get", mock.Anything, int64(7)).Return(game.Game{Key: 7}, true, nil).Once()
	next.On("Upsert", mock.Anything, mock.Anything, mock.Anything).Return(game.UpsertResult{}, errors.New("db down")).Once()

	_, _, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, nil, nil)
	require.Error(t, err)

	got, exists, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, exists)
	require.Equal(t, int64(7), got.Key)
}
