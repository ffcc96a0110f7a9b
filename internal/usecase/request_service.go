package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const maxRequestBatch = 50

type CreateRequestInput struct {
	GameKey        int64
	SeatsRequested int
	Notes          *string
}

// RequestFailure explains why one batch entry was skipped.
type RequestFailure struct {
	Index   int
	GameKey int64
	Err     error
}

type CreateRequestsResult struct {
	Created []request.Request
	Failed  []RequestFailure
}

type RequestService struct {
	requestRepo   request.Repository
	gameRepo      game.Repository
	trackedTeamID int64
	events        notifier
	logger        *logging.Logger
	now           func() time.Time
}

func NewRequestService(
	requestRepo request.Repository,
	gameRepo game.Repository,
	trackedTeamID int64,
	publisher allocation.Publisher,
	logger *logging.Logger,
) *RequestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RequestService{
		requestRepo:   requestRepo,
		gameRepo:      gameRepo,
		trackedTeamID: trackedTeamID,
		events:        newNotifier(publisher, logger),
		logger:        logger,
		now:           time.Now,
	}
}

// CreateRequests files one request per entry. Entries are independent: a bad
// or duplicate entry is reported in Failed and the rest still go through. Only
// a store failure stops the batch.
func (s *RequestService) CreateRequests(ctx context.Context, userID int64, entries []CreateRequestInput) (result CreateRequestsResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.CreateRequests",
		attribute.Int64("user.id", userID),
		attribute.Int("request.count", len(entries)),
	)
	defer func() { endSpan(span, err) }()

	if userID <= 0 {
		return CreateRequestsResult{}, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if len(entries) == 0 {
		return CreateRequestsResult{}, fmt.Errorf("%w: at least one request is required", ErrInvalidInput)
	}
	if len(entries) > maxRequestBatch {
		return CreateRequestsResult{}, fmt.Errorf("%w: at most %d requests per batch", ErrInvalidInput, maxRequestBatch)
	}

	now := s.now()
	result.Created = make([]request.Request, 0, len(entries))
	for i, entry := range entries {
		created, err := s.createOne(ctx, userID, entry, now)
		if errors.Is(err, ErrStore) {
			return result, err
		}
		if err != nil {
			result.Failed = append(result.Failed, RequestFailure{Index: i, GameKey: entry.GameKey, Err: err})
			continue
		}
		result.Created = append(result.Created, created)
	}

	if len(result.Failed) > 0 {
		s.logger.InfoContext(ctx, "ticket request batch partially applied",
			"user_id", userID,
			"created", len(result.Created),
			"failed", len(result.Failed),
		)
	}
	return result, nil
}

func (s *RequestService) createOne(ctx context.Context, userID int64, entry CreateRequestInput, now time.Time) (request.Request, error) {
	if err := request.ValidateSeats(entry.SeatsRequested); err != nil {
		return request.Request{}, fmt.Errorf("%w: game_pk %d: %v", ErrInvalidInput, entry.GameKey, err)
	}
	g, err := requireGame(ctx, s.gameRepo, entry.GameKey)
	if err != nil {
		return request.Request{}, err
	}
	if !g.IsHomeFor(s.trackedTeamID) {
		return request.Request{}, fmt.Errorf("%w: game_pk %d is not a home game", ErrInvalidInput, g.Key)
	}
	if !g.GameDate.After(now) {
		return request.Request{}, fmt.Errorf("%w: game_pk %d has already started", ErrInvalidInput, g.Key)
	}

	created, err := s.requestRepo.Create(ctx, request.NewRequest{
		UserID:         userID,
		GameKey:        g.Key,
		SeatsRequested: entry.SeatsRequested,
		Notes:          normalizeNotes(entry.Notes),
	})
	switch {
	case errors.Is(err, request.ErrDuplicate):
		return request.Request{}, fmt.Errorf("%w: game_pk %d: %v", ErrConflict, g.Key, err)
	case err != nil:
		return request.Request{}, storeError("create request", err)
	}
	return created, nil
}

// UpdateRequest changes the seat count of the caller's own pending request.
func (s *RequestService) UpdateRequest(ctx context.Context, userID, requestID int64, seats int) (request.Request, error) {
	if err := request.ValidateSeats(seats); err != nil {
		return request.Request{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	current, err := s.ownedRequest(ctx, userID, requestID)
	if err != nil {
		return request.Request{}, err
	}
	if current.Status != request.StatusPending {
		return request.Request{}, fmt.Errorf("%w: request %d is %s, only pending requests can be edited", ErrForbidden, requestID, current.Status)
	}

	updated, ok, err := s.requestRepo.UpdateSeats(ctx, requestID, userID, seats)
	if err != nil {
		return request.Request{}, storeError("update request", err)
	}
	if !ok {
		return request.Request{}, fmt.Errorf("%w: request %d is no longer pending", ErrForbidden, requestID)
	}
	return updated, nil
}

// WithdrawRequest closes the caller's open request and frees any seats it was
// given in the same transaction.
func (s *RequestService) WithdrawRequest(ctx context.Context, userID, requestID int64) (result request.WithdrawResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RequestService.WithdrawRequest", attribute.Int64("request.id", requestID))
	defer func() { endSpan(span, err) }()

	current, err := s.ownedRequest(ctx, userID, requestID)
	if err != nil {
		return request.WithdrawResult{}, err
	}
	if !current.Status.CanTransitionTo(request.StatusWithdrawn) {
		return request.WithdrawResult{}, fmt.Errorf("%w: request %d is already %s", ErrConflict, requestID, current.Status)
	}

	result, ok, err := s.requestRepo.Withdraw(ctx, requestID, userID)
	if err != nil {
		return request.WithdrawResult{}, storeError("withdraw request", err)
	}
	if !ok {
		return request.WithdrawResult{}, fmt.Errorf("%w: request %d changed concurrently", ErrConflict, requestID)
	}

	s.events.notify(ctx, allocation.Event{
		Type:       allocation.EventRequestWithdrawn,
		GameKeys:   []int64{result.Request.GameKey},
		TicketIDs:  result.Released,
		UserID:     &userID,
		RequestID:  &requestID,
		OccurredAt: s.now(),
	})
	return result, nil
}

func (s *RequestService) ListForUser(ctx context.Context, userID int64) ([]request.Request, error) {
	items, err := s.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list requests by user", err)
	}
	return items, nil
}

// ListAll is the administrator view. Role checks belong to the caller.
func (s *RequestService) ListAll(ctx context.Context) ([]request.Detail, error) {
	items, err := s.requestRepo.ListAll(ctx)
	if err != nil {
		return nil, storeError("list requests", err)
	}
	return items, nil
}

func (s *RequestService) ListPending(ctx context.Context) ([]request.Detail, error) {
	items, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, storeError("list pending requests", err)
	}
	return items, nil
}

func (s *RequestService) ownedRequest(ctx context.Context, userID, requestID int64) (request.Request, error) {
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
	if current.UserID != userID {
		return request.Request{}, fmt.Errorf("%w: request %d belongs to another user", ErrForbidden, requestID)
	}
	return current, nil
}
