package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
)

type fakeScheduleProvider struct {
	mu      sync.Mutex
	seasons map[int]ScheduleBatch
	fail    map[int]error
	calls   []int
}

func (f *fakeScheduleProvider) FetchSeason(_ context.Context, teamID int64, season int) (ScheduleBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, season)
	if teamID != trackedTeam {
		return ScheduleBatch{}, errors.New("unexpected team")
	}
	if err := f.fail[season]; err != nil {
		return ScheduleBatch{}, err
	}
	return f.seasons[season], nil
}

func seasonBatch(season int, keys ...int64) ScheduleBatch {
	start := time.Date(season, 4, 1, 20, 0, 0, 0, time.UTC)
	batch := ScheduleBatch{}
	for i, key := range keys {
		batch.Games = append(batch.Games, scenarioGame(key, i%2 == 0, start.Add(time.Duration(i)*24*time.Hour)))
	}
	return batch
}

func TestScheduleService_SyncSeasons(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(trackedTeam)
	_, err := NewSeatService(store.Seats(), nil).RegisterSeats(ctx, RegisterSeatsInput{Section: "121", Row: "E", Start: 1, End: 2})
	require.NoError(t, err)

	batch2025 := seasonBatch(2025, 10, 11)
	batch2025.Promotions = []game.Promotion{{OfferID: 900, GameKey: 10, Name: "Bobblehead"}}
	provider := &fakeScheduleProvider{seasons: map[int]ScheduleBatch{
		2025: batch2025,
		2026: seasonBatch(2026, 20, 21, 22),
	}}
	service := NewScheduleService(provider, store.Games(), ScheduleConfig{TrackedTeamID: trackedTeam, SyncWorkers: 4}, nil)

	result, err := service.SyncSeasons(ctx, []int{2026, 2025, 2026})
	require.NoError(t, err)
	require.Len(t, result.Seasons, 2)
	require.Equal(t, 2025, result.Seasons[0].Season)
	require.ElementsMatch(t, []int{2025, 2026}, provider.calls)

	totals := result.Totals()
	require.Equal(t, 5, totals.Games)
	require.Equal(t, 1, totals.Promotions)
	require.Equal(t, 2*3, totals.TicketsGenerated, "two seats for each of the three home games")

	promotions, err := service.ListPromotions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, promotions, 1)

	again, err := service.SyncSeasons(ctx, []int{2025})
	require.NoError(t, err)
	require.Zero(t, again.Totals().TicketsGenerated, "re-sync must not duplicate tickets")
}

func TestScheduleService_SyncSeasons_FetchFailureWritesNothing(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewStore(trackedTeam)
	provider := &fakeScheduleProvider{
		seasons: map[int]ScheduleBatch{2025: seasonBatch(2025, 10)},
		fail:    map[int]error{2026: errors.New("status 503")},
	}
	service := NewScheduleService(provider, store.Games(), ScheduleConfig{TrackedTeamID: trackedTeam, SyncWorkers: 2}, nil)

	_, err := service.SyncSeasons(ctx, []int{2025, 2026})
	require.ErrorIs(t, err, ErrDependencyUnavailable)

	games, err := service.ListGames(ctx, 0)
	require.NoError(t, err)
	require.Empty(t, games)
}

func TestScheduleService_RejectsBadInput(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewScheduleService(&fakeScheduleProvider{}, memory.NewStore(trackedTeam).Games(), ScheduleConfig{TrackedTeamID: trackedTeam}, nil)

	_, err := service.SyncSeasons(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = service.SyncSeasons(ctx, []int{1850})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Ingest(ctx, []game.Game{{Key: 0}}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	g := scenarioGame(10, true, time.Now())
	_, err = service.Ingest(ctx, []game.Game{g}, []game.Promotion{{OfferID: 1, GameKey: 11}})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.ListGames(ctx, 13)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.GetGame(ctx, 10)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestScheduleService_WithoutProvider(t *testing.T) {
	t.Parallel()

	service := NewScheduleService(nil, memory.NewStore(trackedTeam).Games(), ScheduleConfig{}, nil)
	_, err := service.SyncSeasons(context.Background(), []int{2026})
	require.ErrorIs(t, err, ErrDependencyUnavailable)
}
