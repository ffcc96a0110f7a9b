package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/memory"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type services struct {
	store      *memory.Store
	seats      *SeatService
	schedule   *ScheduleService
	inventory  *InventoryService
	requests   *RequestService
	allocation *AllocationService
	users      *UserService
}

func newServices(t *testing.T) services {
	t.Helper()
	store := memory.NewStore(trackedTeam)
	return services{
		store:      store,
		seats:      NewSeatService(store.Seats(), nil),
		schedule:   NewScheduleService(nil, store.Games(), ScheduleConfig{TrackedTeamID: trackedTeam}, nil),
		inventory:  NewInventoryService(store.Tickets(), store.Games(), nil),
		requests:   NewRequestService(store.Requests(), store.Games(), trackedTeam, nil, nil),
		allocation: NewAllocationService(store.Allocations(), store.Requests(), store.Tickets(), store.Games(), nil, nil),
		users:      NewUserService(store.Users(), nil),
	}
}

func scenarioGame(key int64, home bool, start time.Time) game.Game {
	g := game.Game{
		Key:          key,
		GameType:     "R",
		Season:       "2026",
		GameDate:     start,
		OfficialDate: start.Format(time.DateOnly),
		HomeTeamID:   trackedTeam,
		HomeTeamName: "San Francisco Giants",
		AwayTeamID:   119,
		AwayTeamName: "Los Angeles Dodgers",
		DoubleHeader: game.DefaultDoubleHeader,
		GameNumber:   game.DefaultGameNumber,
	}
	if !home {
		g.HomeTeamID, g.AwayTeamID = g.AwayTeamID, g.HomeTeamID
		g.HomeTeamName, g.AwayTeamName = g.AwayTeamName, g.HomeTeamName
	}
	return g
}

func ticketFor(t *testing.T, tickets []ticket.Detail, label string) ticket.Detail {
	t.Helper()
	for _, item := range tickets {
		if item.SeatLabel == label {
			return item
		}
	}
	t.Fatalf("no ticket for seat %s", label)
	return ticket.Detail{}
}

func TestScenario_RequestAllocateWithdraw(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)

	_, err := svc.seats.RegisterSeats(ctx, RegisterSeatsInput{Section: "121", Row: "E", Start: 1, End: 2})
	require.NoError(t, err)

	start := time.Now().Add(30 * 24 * time.Hour)
	counts, err := svc.schedule.Ingest(ctx, []game.Game{
		scenarioGame(1001, true, start),
		scenarioGame(1002, false, start.Add(24*time.Hour)),
	}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, counts.Games)
	require.Equal(t, 2, counts.TicketsGenerated, "only the home game gets tickets")

	admin, err := svc.users.Provision(ctx, user.Principal{Subject: "auth0|admin"})
	require.NoError(t, err)
	require.True(t, admin.IsAdmin())
	member, err := svc.users.Provision(ctx, user.Principal{Subject: "auth0|member", Name: "Pat"})
	require.NoError(t, err)
	require.False(t, member.IsAdmin())

	created, err := svc.requests.CreateRequests(ctx, member.ID, []CreateRequestInput{
		{GameKey: 1001, SeatsRequested: 2},
		{GameKey: 1002, SeatsRequested: 1},
	})
	require.NoError(t, err)
	require.Len(t, created.Created, 1)
	require.Len(t, created.Failed, 1)
	require.ErrorIs(t, created.Failed[0].Err, ErrInvalidInput)
	req := created.Created[0]

	summary, err := svc.allocation.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)
	require.Equal(t, 2, summary[0].TotalRequested)
	require.False(t, summary[0].Oversubscribed)

	tickets, err := svc.inventory.TicketsForGame(ctx, 1001)
	require.NoError(t, err)
	t1, t2 := ticketFor(t, tickets, "1"), ticketFor(t, tickets, "2")

	_, err = svc.allocation.Allocate(ctx, []allocation.Assignment{{TicketID: t1.ID, UserID: member.ID, RequestID: &req.ID}})
	require.NoError(t, err)
	current, err := svc.requests.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, request.StatusApproved, current[0].Status)
	require.Equal(t, 1, current[0].SeatsApproved)

	_, err = svc.allocation.Allocate(ctx, []allocation.Assignment{{TicketID: t2.ID, UserID: member.ID, RequestID: &req.ID}})
	require.NoError(t, err)
	current, err = svc.requests.ListForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Equal(t, 2, current[0].SeatsApproved)

	_, err = svc.allocation.Allocate(ctx, []allocation.Assignment{{TicketID: t1.ID, UserID: admin.ID}})
	require.ErrorIs(t, err, ErrConflict, "assigned tickets cannot be assigned again")

	mine, err := svc.inventory.TicketsForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	withdrawn, err := svc.requests.WithdrawRequest(ctx, member.ID, req.ID)
	require.NoError(t, err)
	require.Equal(t, request.StatusWithdrawn, withdrawn.Request.Status)
	require.ElementsMatch(t, []int64{t1.ID, t2.ID}, withdrawn.Released)

	tickets, err = svc.inventory.TicketsForGame(ctx, 1001)
	require.NoError(t, err)
	for _, item := range tickets {
		require.Equal(t, ticket.StatusAvailable, item.Status)
		require.Nil(t, item.AssignedTo)
	}
}

func TestScenario_AllocateIsAtomic(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)

	_, err := svc.seats.RegisterSeats(ctx, RegisterSeatsInput{Section: "121", Row: "E", Start: 1, End: 3})
	require.NoError(t, err)
	_, err = svc.schedule.Ingest(ctx, []game.Game{scenarioGame(2001, true, time.Now().Add(48*time.Hour))}, nil)
	require.NoError(t, err)
	member, err := svc.users.Provision(ctx, user.Principal{Subject: "auth0|member"})
	require.NoError(t, err)

	tickets, err := svc.inventory.TicketsForGame(ctx, 2001)
	require.NoError(t, err)
	t1, t2, t3 := ticketFor(t, tickets, "1"), ticketFor(t, tickets, "2"), ticketFor(t, tickets, "3")

	_, err = svc.inventory.UpdateStatus(ctx, t2.ID, "unavailable", nil)
	require.NoError(t, err)

	_, err = svc.allocation.Allocate(ctx, []allocation.Assignment{
		{TicketID: t1.ID, UserID: member.ID},
		{TicketID: t2.ID, UserID: member.ID},
		{TicketID: t3.ID, UserID: member.ID},
	})
	require.ErrorIs(t, err, ErrConflict)

	mine, err := svc.inventory.TicketsForUser(ctx, member.ID)
	require.NoError(t, err)
	require.Empty(t, mine, "a rejected batch must not assign anything")
}

func TestScenario_ReleaseForGameWithdrawsRequest(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)

	_, err := svc.seats.RegisterSeat(ctx, RegisterSeatInput{Section: "300", Row: "A", Label: "7"})
	require.NoError(t, err)
	_, err = svc.schedule.Ingest(ctx, []game.Game{scenarioGame(3001, true, time.Now().Add(48*time.Hour))}, nil)
	require.NoError(t, err)
	member, err := svc.users.Provision(ctx, user.Principal{Subject: "auth0|member"})
	require.NoError(t, err)

	created, err := svc.requests.CreateRequests(ctx, member.ID, []CreateRequestInput{{GameKey: 3001, SeatsRequested: 1}})
	require.NoError(t, err)
	req := created.Created[0]

	tickets, err := svc.inventory.TicketsForGame(ctx, 3001)
	require.NoError(t, err)
	_, err = svc.allocation.Allocate(ctx, []allocation.Assignment{{TicketID: tickets[0].ID, UserID: member.ID, RequestID: &req.ID}})
	require.NoError(t, err)

	released, err := svc.allocation.ReleaseForGame(ctx, member.ID, 3001)
	require.NoError(t, err)
	require.Equal(t, []int64{tickets[0].ID}, released.Released)
	require.NotNil(t, released.WithdrawnRequestID)
	require.Equal(t, req.ID, *released.WithdrawnRequestID)

	again, err := svc.requests.CreateRequests(ctx, member.ID, []CreateRequestInput{{GameKey: 3001, SeatsRequested: 1}})
	require.NoError(t, err)
	require.Len(t, again.Created, 1, "a withdrawn request does not block a new one")
}

func TestScenario_AssignedTicketsNeverExceedSeats(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		ctx := context.Background()
		store := memory.NewStore(trackedTeam)
		seats := NewSeatService(store.Seats(), nil)
		schedule := NewScheduleService(nil, store.Games(), ScheduleConfig{TrackedTeamID: trackedTeam}, nil)
		inventory := NewInventoryService(store.Tickets(), store.Games(), nil)
		alloc := NewAllocationService(store.Allocations(), store.Requests(), store.Tickets(), store.Games(), nil, nil)
		users := NewUserService(store.Users(), nil)

		seatCount := rapid.IntRange(1, 6).Draw(rt, "seats")
		if _, err := seats.RegisterSeats(ctx, RegisterSeatsInput{Section: "121", Row: "E", Start: 1, End: seatCount}); err != nil {
			rt.Fatalf("register seats: %v", err)
		}
		if _, err := schedule.Ingest(ctx, []game.Game{scenarioGame(4001, true, time.Now().Add(time.Hour))}, nil); err != nil {
			rt.Fatalf("ingest: %v", err)
		}
		member, err := users.Provision(ctx, user.Principal{Subject: "auth0|member"})
		if err != nil {
			rt.Fatalf("provision: %v", err)
		}
		tickets, err := inventory.TicketsForGame(ctx, 4001)
		if err != nil {
			rt.Fatalf("list tickets: %v", err)
		}

		steps := rapid.IntRange(1, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			target := tickets[rapid.IntRange(0, len(tickets)-1).Draw(rt, "ticket")]
			if rapid.Bool().Draw(rt, "allocate") {
				_, _ = alloc.Allocate(ctx, []allocation.Assignment{{TicketID: target.ID, UserID: member.ID}})
			} else {
				_, _ = alloc.Revoke(ctx, target.ID)
			}
		}

		summary, err := alloc.Summary(ctx)
		if err != nil {
			rt.Fatalf("summary: %v", err)
		}
		row := summary[0]
		if row.TotalSeats != seatCount || row.Assigned+row.Available != seatCount {
			rt.Fatalf("inventory drifted: %+v with %d seats", row, seatCount)
		}
		mine, err := inventory.TicketsForUser(ctx, member.ID)
		if err != nil {
			rt.Fatalf("tickets for user: %v", err)
		}
		if len(mine) != row.Assigned {
			rt.Fatalf("user holds %d tickets, summary says %d", len(mine), row.Assigned)
		}
	})
}
