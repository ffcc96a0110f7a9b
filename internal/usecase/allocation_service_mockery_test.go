package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	allocationmock "github.com/riskibarqy/season-tickets/internal/mocks/domain/allocation"
	gamemock "github.com/riskibarqy/season-tickets/internal/mocks/domain/game"
	requestmock "github.com/riskibarqy/season-tickets/internal/mocks/domain/request"
	ticketmock "github.com/riskibarqy/season-tickets/internal/mocks/domain/ticket"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type allocationFixture struct {
	service   *AllocationService
	allocs    *allocationmock.Repository
	requests  *requestmock.Repository
	tickets   *ticketmock.Repository
	games     *gamemock.Repository
	publisher *allocationmock.Publisher
}

func newAllocationFixture(t *testing.T) allocationFixture {
	t.Helper()
	f := allocationFixture{
		allocs:    allocationmock.NewRepository(t),
		requests:  requestmock.NewRepository(t),
		tickets:   ticketmock.NewRepository(t),
		games:     gamemock.NewRepository(t),
		publisher: allocationmock.NewPublisher(t),
	}
	f.service = NewAllocationService(f.allocs, f.requests, f.tickets, f.games, f.publisher, nil)
	return f
}

func int64Ptr(v int64) *int64 { return &v }

func TestAllocationService_Allocate_ValidatesBatch(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	ctx := context.Background()

	tooMany := make([]allocation.Assignment, allocation.MaxBatchSize+1)
	for i := range tooMany {
		tooMany[i] = allocation.Assignment{TicketID: int64(i + 1), UserID: 1}
	}

	cases := map[string][]allocation.Assignment{
		"empty":            nil,
		"over cap":         tooMany,
		"zero ticket":      {{TicketID: 0, UserID: 1}},
		"bad request id":   {{TicketID: 1, UserID: 1, RequestID: int64Ptr(0)}},
		"duplicate ticket": {{TicketID: 4, UserID: 1}, {TicketID: 4, UserID: 2}},
	}
	for name, batch := range cases {
		_, err := f.service.Allocate(ctx, batch)
		require.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestAllocationService_Allocate_PublishesAfterCommit(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	batch := []allocation.Assignment{
		{TicketID: 11, UserID: 3, RequestID: int64Ptr(7)},
		{TicketID: 12, UserID: 3, RequestID: int64Ptr(7)},
	}
	f.allocs.On("Allocate", mock.Anything, batch).Return(allocation.AllocateResult{
		Tickets: []ticket.Ticket{
			{ID: 11, GameKey: 500, Status: ticket.StatusAssigned},
			{ID: 12, GameKey: 500, Status: ticket.StatusAssigned},
		},
		Approved: map[int64]int{7: 2},
	}, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e allocation.Event) bool {
		return e.Type == allocation.EventAllocated &&
			len(e.GameKeys) == 1 && e.GameKeys[0] == 500 &&
			len(e.TicketIDs) == 2
	})).Return(nil).Once()

	result, err := f.service.Allocate(context.Background(), batch)
	require.NoError(t, err)
	require.Equal(t, 2, result.Approved[7])
}

func TestAllocationService_Allocate_MapsRepositoryErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"not available", allocation.ErrTicketNotAvailable, ErrConflict},
		{"request mismatch", allocation.ErrRequestMismatch, ErrConflict},
		{"missing ticket", allocation.ErrTicketNotFound, ErrNotFound},
		{"missing user", allocation.ErrUserNotFound, ErrNotFound},
		{"database", errors.New("deadlock detected"), ErrStore},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newAllocationFixture(t)
			f.allocs.On("Allocate", mock.Anything, mock.Anything).
				Return(allocation.AllocateResult{}, fmt.Errorf("%w: ticket=1", tc.err)).Once()

			_, err := f.service.Allocate(context.Background(), []allocation.Assignment{{TicketID: 1, UserID: 1}})
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAllocationService_Revoke(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	ctx := context.Background()

	f.allocs.On("Revoke", mock.Anything, int64(9)).
		Return(ticket.Ticket{}, fmt.Errorf("%w: ticket=9", allocation.ErrTicketNotAssigned)).Once()
	_, err := f.service.Revoke(ctx, 9)
	require.ErrorIs(t, err, ErrConflict)

	f.allocs.On("Revoke", mock.Anything, int64(10)).
		Return(ticket.Ticket{ID: 10, GameKey: 500, Status: ticket.StatusAvailable}, nil).Once()
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e allocation.Event) bool {
		return e.Type == allocation.EventRevoked && e.TicketIDs[0] == 10
	})).Return(nil).Once()
	revoked, err := f.service.Revoke(ctx, 10)
	require.NoError(t, err)
	require.Equal(t, ticket.StatusAvailable, revoked.Status)
}

func TestAllocationService_ReleaseForGame_NothingHeldIsQuiet(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	f.games.On("Get", mock.Anything, int64(500)).Return(game.Game{Key: 500}, true, nil).Once()
	f.allocs.On("ReleaseForGame", mock.Anything, int64(3), int64(500)).Return(allocation.ReleaseResult{}, nil).Once()

	result, err := f.service.ReleaseForGame(context.Background(), 3, 500)
	require.NoError(t, err)
	require.Empty(t, result.Released)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAllocationService_Summary_OversubscribedBoundary(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	f.allocs.On("Summary", mock.Anything).Return([]allocation.GameSummary{
		{GameKey: 1, Available: 4, TotalRequested: 4, Oversubscribed: true},
		{GameKey: 2, Available: 4, TotalRequested: 5},
		{GameKey: 3, Available: 0, TotalRequested: 0},
	}, nil).Once()

	rows, err := f.service.Summary(context.Background())
	require.NoError(t, err)
	require.False(t, rows[0].Oversubscribed, "equal demand is not oversubscribed")
	require.True(t, rows[1].Oversubscribed)
	require.False(t, rows[2].Oversubscribed)
}

func TestAllocationService_GameDetail(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	ctx := context.Background()

	f.games.On("Get", mock.Anything, int64(500)).Return(game.Game{Key: 500}, true, nil).Once()
	f.tickets.On("ListByGame", mock.Anything, int64(500)).Return([]ticket.Detail{{Ticket: ticket.Ticket{ID: 1}}}, nil).Once()
	f.requests.On("ListByGame", mock.Anything, int64(500)).Return([]request.Detail{{Request: request.Request{ID: 2}}}, nil).Once()

	detail, err := f.service.GameDetail(ctx, 500)
	require.NoError(t, err)
	require.Len(t, detail.Tickets, 1)
	require.Len(t, detail.Requests, 1)

	f.games.On("Get", mock.Anything, int64(501)).Return(game.Game{}, false, nil).Once()
	_, err = f.service.GameDetail(ctx, 501)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAllocationService_Decline(t *testing.T) {
	t.Parallel()

	f := newAllocationFixture(t)
	ctx := context.Background()

	f.requests.On("Get", mock.Anything, int64(1)).Return(request.Request{ID: 1, Status: request.StatusApproved}, true, nil).Once()
	_, err := f.service.Decline(ctx, 1)
	require.ErrorIs(t, err, ErrConflict)

	f.requests.On("Get", mock.Anything, int64(2)).Return(request.Request{ID: 2, Status: request.StatusPending}, true, nil).Once()
	f.requests.On("Decline", mock.Anything, int64(2)).Return(request.Request{ID: 2, Status: request.StatusDeclined}, true, nil).Once()
	declined, err := f.service.Decline(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, request.StatusDeclined, declined.Status)
}
