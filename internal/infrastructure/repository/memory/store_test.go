package memory

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

const giants = 137

func testGame(key int64, home bool) game.Game {
	g := game.Game{
		Key:          key,
		GameDate:     time.Date(2026, 6, 1, 2, 0, 0, 0, time.UTC).Add(time.Duration(key) * time.Hour),
		OfficialDate: "2026-05-31",
		HomeTeamID:   giants,
		HomeTeamName: "San Francisco Giants",
		AwayTeamID:   119,
		AwayTeamName: "Los Angeles Dodgers",
	}
	if !home {
		g.HomeTeamID, g.AwayTeamID = g.AwayTeamID, g.HomeTeamID
		g.HomeTeamName, g.AwayTeamName = g.AwayTeamName, g.HomeTeamName
	}
	return g
}

func countTickets(s *Store) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tickets)
}

func TestStore_CoverageAfterAnyInterleaving(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		s := NewStore(giants)
		seats, games := s.Seats(), s.Games()

		nextSeat, nextGame := 0, int64(0)
		homeGames := 0
		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(rt, "addSeats") {
				n := rapid.IntRange(1, 3).Draw(rt, "seatCount")
				batch := make([]seat.NewSeat, 0, n)
				for j := 0; j < n; j++ {
					nextSeat++
					batch = append(batch, seat.NewSeat{Section: "121", Row: "E", Label: strconv.Itoa(nextSeat)})
				}
				if _, err := seats.CreateBatch(ctx, batch); err != nil {
					rt.Fatalf("create seats: %v", err)
				}
				continue
			}
			nextGame++
			home := rapid.Bool().Draw(rt, "home")
			if home {
				homeGames++
			}
			if _, err := games.Upsert(ctx, []game.Game{testGame(nextGame, home)}, nil); err != nil {
				rt.Fatalf("upsert game: %v", err)
			}
		}

		if got, want := countTickets(s), nextSeat*homeGames; got != want {
			rt.Fatalf("tickets=%d, want seats(%d) x home games(%d)", got, nextSeat, homeGames)
		}

		before := countTickets(s)
		created, err := s.Tickets().Backfill(ctx)
		if err != nil {
			rt.Fatalf("backfill: %v", err)
		}
		if created != 0 || countTickets(s) != before {
			rt.Fatalf("backfill on covered data created %d rows", created)
		}
	})
}

func TestStore_RegenerationKeepsAssignments(t *testing.T) {
	ctx := context.Background()
	s := NewStore(giants)

	_, err := s.Seats().CreateBatch(ctx, []seat.NewSeat{{Section: "121", Row: "E", Label: "1"}})
	require.NoError(t, err)
	_, err = s.Games().Upsert(ctx, []game.Game{testGame(1, true)}, nil)
	require.NoError(t, err)
	u, _, err := s.Users().Provision(ctx, user.Principal{Subject: "auth0|1", Name: "Willie"})
	require.NoError(t, err)

	tickets, err := s.Tickets().ListByGame(ctx, 1)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	_, err = s.Allocations().Allocate(ctx, []allocation.Assignment{{TicketID: tickets[0].ID, UserID: u.ID}})
	require.NoError(t, err)

	res, err := s.Games().Upsert(ctx, []game.Game{testGame(1, true)}, nil)
	require.NoError(t, err)
	require.Zero(t, res.TicketsGenerated)

	got, found, err := s.Tickets().Get(ctx, tickets[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, ticket.StatusAssigned, got.Status)
	require.Equal(t, u.ID, *got.AssignedTo)
}

func TestSeatRepository_BatchIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewStore(giants)

	_, err := s.Seats().CreateBatch(ctx, []seat.NewSeat{{Section: "121", Row: "E", Label: "2"}})
	require.NoError(t, err)

	_, err = s.Seats().CreateBatch(ctx, []seat.NewSeat{
		{Section: "121", Row: "E", Label: "1"},
		{Section: "121", Row: "E", Label: "2"},
		{Section: "121", Row: "E", Label: "3"},
	})
	require.ErrorIs(t, err, seat.ErrDuplicate)

	all, err := s.Seats().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestSeatRepository_DeleteCascadesTickets(t *testing.T) {
	ctx := context.Background()
	s := NewStore(giants)

	_, err := s.Games().Upsert(ctx, []game.Game{testGame(1, true), testGame(2, true)}, nil)
	require.NoError(t, err)
	created, err := s.Seats().CreateBatch(ctx, []seat.NewSeat{
		{Section: "121", Row: "E", Label: "1"},
		{Section: "121", Row: "E", Label: "2"},
	})
	require.NoError(t, err)
	require.Equal(t, 4, created.TicketsGenerated)

	removed, found, err := s.Seats().Delete(ctx, created.Seats[0].ID)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, removed)
	require.Equal(t, 2, countTickets(s))

	_, found, err = s.Seats().Delete(ctx, created.Seats[0].ID)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRequestRepository_OneOpenRequestPerGame(t *testing.T) {
	ctx := context.Background()
	s := NewStore(giants)
	repo := s.Requests()

	first, err := repo.Create(ctx, request.NewRequest{UserID: 1, GameKey: 1, SeatsRequested: 2})
	require.NoError(t, err)

	_, err = repo.Create(ctx, request.NewRequest{UserID: 1, GameKey: 1, SeatsRequested: 1})
	require.ErrorIs(t, err, request.ErrDuplicate)

	_, ok, err := repo.Withdraw(ctx, first.ID, 1)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.Create(ctx, request.NewRequest{UserID: 1, GameKey: 1, SeatsRequested: 1})
	require.NoError(t, err)
}

func TestAllocationRepository_ReleaseWithdrawsRequest(t *testing.T) {
	ctx := context.Background()
	s := NewStore(giants)

	_, err := s.Games().Upsert(ctx, []game.Game{testGame(1, true)}, nil)
	require.NoError(t, err)
	_, err = s.Seats().CreateBatch(ctx, []seat.NewSeat{{Section: "121", Row: "E", Label: "1"}})
	require.NoError(t, err)
	u, _, err := s.Users().Provision(ctx, user.Principal{Subject: "auth0|1", Name: "Willie"})
	require.NoError(t, err)
	req, err := s.Requests().Create(ctx, request.NewRequest{UserID: u.ID, GameKey: 1, SeatsRequested: 1})
	require.NoError(t, err)

	tickets, err := s.Tickets().ListByGame(ctx, 1)
	require.NoError(t, err)
	_, err = s.Allocations().Allocate(ctx, []allocation.Assignment{{TicketID: tickets[0].ID, UserID: u.ID, RequestID: &req.ID}})
	require.NoError(t, err)

	res, err := s.Allocations().ReleaseForGame(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Equal(t, []int64{tickets[0].ID}, res.Released)
	require.NotNil(t, res.WithdrawnRequestID)
	require.Equal(t, req.ID, *res.WithdrawnRequestID)

	again, err := s.Allocations().ReleaseForGame(ctx, u.ID, 1)
	require.NoError(t, err)
	require.Empty(t, again.Released)
	require.Nil(t, again.WithdrawnRequestID)

	_, err = s.Allocations().Revoke(ctx, tickets[0].ID)
	require.True(t, errors.Is(err, allocation.ErrTicketNotAssigned))
}

func TestUserRepository_FirstUserIsAdmin(t *testing.T) {
	ctx := context.Background()
	repo := NewStore(giants).Users()

	first, created, err := repo.Provision(ctx, user.Principal{Subject: "a", Name: "A"})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, user.RoleAdmin, first.Role)

	second, _, err := repo.Provision(ctx, user.Principal{Subject: "b", Name: "B"})
	require.NoError(t, err)
	require.Equal(t, user.RoleMember, second.Role)

	again, created, err := repo.Provision(ctx, user.Principal{Subject: "a", Name: "A renamed"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, first.ID, again.ID)
	require.Equal(t, "A renamed", again.Name)
	require.Equal(t, user.RoleAdmin, again.Role)
}

func TestSeedDemo(t *testing.T) {
	s := NewStore(giants)
	s.SeedDemo(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	require.Equal(t, 4*3, countTickets(s))
}
