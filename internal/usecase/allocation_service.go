package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

// GameDetail is everything an administrator needs to assign seats for one
// game.
type GameDetail struct {
	Game     game.Game
	Tickets  []ticket.Detail
	Requests []request.Detail
}

type AllocationService struct {
	allocRepo   allocation.Repository
	requestRepo request.Repository
	ticketRepo  ticket.Repository
	gameRepo    game.Repository
	events      notifier
	logger      *logging.Logger
	now         func() time.Time
}

func NewAllocationService(
	allocRepo allocation.Repository,
	requestRepo request.Repository,
	ticketRepo ticket.Repository,
	gameRepo game.Repository,
	publisher allocation.Publisher,
	logger *logging.Logger,
) *AllocationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AllocationService{
		allocRepo:   allocRepo,
		requestRepo: requestRepo,
		ticketRepo:  ticketRepo,
		gameRepo:    gameRepo,
		events:      newNotifier(publisher, logger),
		logger:      logger,
		now:         time.Now,
	}
}

// Allocate applies the whole batch atomically. It does not consult the
// oversubscription signal.
func (s *AllocationService) Allocate(ctx context.Context, assignments []allocation.Assignment) (result allocation.AllocateResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllocationService.Allocate", attribute.Int("assignment.count", len(assignments)))
	defer func() { endSpan(span, err) }()

	if err := validateAssignments(assignments); err != nil {
		return allocation.AllocateResult{}, err
	}

	result, err = s.allocRepo.Allocate(ctx, assignments)
	if err != nil {
		return allocation.AllocateResult{}, mapAllocationError("allocate tickets", err)
	}

	ticketIDs := make([]int64, 0, len(result.Tickets))
	gameKeys := make([]int64, 0, 1)
	seen := make(map[int64]struct{})
	for _, t := range result.Tickets {
		ticketIDs = append(ticketIDs, t.ID)
		if _, ok := seen[t.GameKey]; !ok {
			seen[t.GameKey] = struct{}{}
			gameKeys = append(gameKeys, t.GameKey)
		}
	}
	s.logger.InfoContext(ctx, "tickets allocated", "assigned", len(result.Tickets), "requests_credited", len(result.Approved))
	s.events.notify(ctx, allocation.Event{
		Type:       allocation.EventAllocated,
		GameKeys:   gameKeys,
		TicketIDs:  ticketIDs,
		OccurredAt: s.now(),
	})
	return result, nil
}

// Revoke frees an assigned ticket. The originating request keeps its
// seats_approved count; administrators reconcile that by hand.
func (s *AllocationService) Revoke(ctx context.Context, ticketID int64) (ticket.Ticket, error) {
	if ticketID <= 0 {
		return ticket.Ticket{}, fmt.Errorf("%w: ticket id must be positive", ErrInvalidInput)
	}
	revoked, err := s.allocRepo.Revoke(ctx, ticketID)
	if err != nil {
		return ticket.Ticket{}, mapAllocationError("revoke ticket", err)
	}

	s.events.notify(ctx, allocation.Event{
		Type:       allocation.EventRevoked,
		GameKeys:   []int64{revoked.GameKey},
		TicketIDs:  []int64{revoked.ID},
		OccurredAt: s.now(),
	})
	return revoked, nil
}

// ReleaseForGame gives back every ticket the user holds for one game.
func (s *AllocationService) ReleaseForGame(ctx context.Context, userID, gameKey int64) (allocation.ReleaseResult, error) {
	if userID <= 0 {
		return allocation.ReleaseResult{}, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if _, err := requireGame(ctx, s.gameRepo, gameKey); err != nil {
		return allocation.ReleaseResult{}, err
	}

	result, err := s.allocRepo.ReleaseForGame(ctx, userID, gameKey)
	if err != nil {
		return allocation.ReleaseResult{}, storeError("release tickets", err)
	}
	if len(result.Released) > 0 {
		s.events.notify(ctx, allocation.Event{
			Type:       allocation.EventReleased,
			GameKeys:   []int64{gameKey},
			TicketIDs:  result.Released,
			UserID:     &userID,
			RequestID:  result.WithdrawnRequestID,
			OccurredAt: s.now(),
		})
	}
	return result, nil
}

// Summary is advisory and point in time.
func (s *AllocationService) Summary(ctx context.Context) ([]allocation.GameSummary, error) {
	rows, err := s.allocRepo.Summary(ctx)
	if err != nil {
		return nil, storeError("allocation summary", err)
	}
	for i := range rows {
		rows[i].Oversubscribed = allocation.IsOversubscribed(rows[i].TotalRequested, rows[i].Available)
	}
	return rows, nil
}

func (s *AllocationService) GameDetail(ctx context.Context, gameKey int64) (detail GameDetail, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AllocationService.GameDetail", attribute.Int64("game.pk", gameKey))
	defer func() { endSpan(span, err) }()

	g, err := requireGame(ctx, s.gameRepo, gameKey)
	if err != nil {
		return GameDetail{}, err
	}
	detail.Game = g

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		tickets, err := s.ticketRepo.ListByGame(ctx, gameKey)
		if err != nil {
			return storeError("list tickets by game", err)
		}
		detail.Tickets = tickets
		return nil
	})
	p.Go(func(ctx context.Context) error {
		requests, err := s.requestRepo.ListByGame(ctx, gameKey)
		if err != nil {
			return storeError("list requests by game", err)
		}
		detail.Requests = requests
		return nil
	})
	if err := p.Wait(); err != nil {
		return GameDetail{}, err
	}
	return detail, nil
}

// Decline closes a pending request without seats.
func (s *AllocationService) Decline(ctx context.Context, requestID int64) (request.Request, error) {
	if requestID <= 0 {
		return request.Request{}, fmt.Errorf("%w: request id must be positive", ErrInvalidInput)
	}
	current, found, err := s.requestRepo.Get(ctx, requestID)
	if err != nil {
		return request.Request{}, storeError("get request", err)
	}
	if !found {
		return request.Request{}, fmt.Errorf("%w: request=%d", ErrNotFound, requestID)
	}
	if !current.Status.CanTransitionTo(request.StatusDeclined) {
		return request.Request{}, fmt.Errorf("%w: request %d is %s", ErrConflict, requestID, current.Status)
	}

	declined, ok, err := s.requestRepo.Decline(ctx, requestID)
	if err != nil {
		return request.Request{}, storeError("decline request", err)
	}
	if !ok {
		return request.Request{}, fmt.Errorf("%w: request %d is no longer pending", ErrConflict, requestID)
	}
	return declined, nil
}

func validateAssignments(assignments []allocation.Assignment) error {
	if len(assignments) == 0 {
		return fmt.Errorf("%w: at least one assignment is required", ErrInvalidInput)
	}
	if len(assignments) > allocation.MaxBatchSize {
		return fmt.Errorf("%w: at most %d assignments per call", ErrInvalidInput, allocation.MaxBatchSize)
	}
	seen := make(map[int64]struct{}, len(assignments))
	for i, a := range assignments {
		if a.TicketID <= 0 || a.UserID <= 0 {
			return fmt.Errorf("%w: assignment %d needs positive game_ticket_id and user_id", ErrInvalidInput, i)
		}
		if a.RequestID != nil && *a.RequestID <= 0 {
			return fmt.Errorf("%w: assignment %d has an invalid request_id", ErrInvalidInput, i)
		}
		if _, dup := seen[a.TicketID]; dup {
			return fmt.Errorf("%w: ticket %d appears twice", ErrInvalidInput, a.TicketID)
		}
		seen[a.TicketID] = struct{}{}
	}
	return nil
}

func mapAllocationError(op string, err error) error {
	switch {
	case errors.Is(err, allocation.ErrTicketNotAvailable),
		errors.Is(err, allocation.ErrTicketNotAssigned),
		errors.Is(err, allocation.ErrRequestMismatch):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, allocation.ErrTicketNotFound),
		errors.Is(err, allocation.ErrRequestNotFound),
		errors.Is(err, allocation.ErrUserNotFound):
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	default:
		return storeError(op, err)
	}
}
