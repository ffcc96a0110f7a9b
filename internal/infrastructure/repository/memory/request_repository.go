package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/season-tickets/internal/domain/request"
)

type RequestRepository struct {
	store *Store
}

func (r *RequestRepository) Create(_ context.Context, in request.NewRequest) (request.Request, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.requests {
		if existing.UserID == in.UserID && existing.GameKey == in.GameKey && existing.Status != request.StatusWithdrawn {
			return request.Request{}, fmt.Errorf("%w: user=%d game=%d", request.ErrDuplicate, in.UserID, in.GameKey)
		}
	}

	now := s.now()
	item := request.Request{
		ID:             s.nextID(),
		UserID:         in.UserID,
		GameKey:        in.GameKey,
		SeatsRequested: in.SeatsRequested,
		Status:         request.StatusPending,
		Notes:          cloneString(in.Notes),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.requests[item.ID] = item
	return cloneRequest(item), nil
}

func (r *RequestRepository) Get(_ context.Context, id int64) (request.Request, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.requests[id]
	if !ok {
		return request.Request{}, false, nil
	}
	return cloneRequest(item), true, nil
}

func (r *RequestRepository) UpdateSeats(_ context.Context, id, userID int64, seats int) (request.Request, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.requests[id]
	if !ok || item.UserID != userID || item.Status != request.StatusPending {
		return request.Request{}, false, nil
	}
	item.SeatsRequested = seats
	item.UpdatedAt = s.now()
	s.requests[id] = item
	return cloneRequest(item), true, nil
}

func (r *RequestRepository) Withdraw(_ context.Context, id, userID int64) (request.WithdrawResult, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.requests[id]
	if !ok || item.UserID != userID || !item.Status.Open() {
		return request.WithdrawResult{}, false, nil
	}
	item.Status = request.StatusWithdrawn
	item.UpdatedAt = s.now()
	s.requests[id] = item

	return request.WithdrawResult{
		Request:  cloneRequest(item),
		Released: s.releaseLocked(userID, item.GameKey),
	}, true, nil
}

func (r *RequestRepository) Decline(_ context.Context, id int64) (request.Request, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.requests[id]
	if !ok || item.Status != request.StatusPending {
		return request.Request{}, false, nil
	}
	item.Status = request.StatusDeclined
	item.UpdatedAt = s.now()
	s.requests[id] = item
	return cloneRequest(item), true, nil
}

func (r *RequestRepository) ListByUser(_ context.Context, userID int64) ([]request.Request, error) {
	details := r.list(func(item request.Request) bool { return item.UserID == userID })
	out := make([]request.Request, 0, len(details))
	for _, d := range details {
		out = append(out, d.Request)
	}
	return out, nil
}

func (r *RequestRepository) ListAll(_ context.Context) ([]request.Detail, error) {
	return r.list(func(request.Request) bool { return true }), nil
}

func (r *RequestRepository) ListPending(_ context.Context) ([]request.Detail, error) {
	return r.list(func(item request.Request) bool { return item.Status == request.StatusPending }), nil
}

func (r *RequestRepository) ListByGame(_ context.Context, gameKey int64) ([]request.Detail, error) {
	return r.list(func(item request.Request) bool { return item.GameKey == gameKey }), nil
}

func (r *RequestRepository) list(match func(request.Request) bool) []request.Detail {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]request.Detail, 0)
	for _, item := range s.requests {
		if !match(item) {
			continue
		}
		out = append(out, request.Detail{Request: cloneRequest(item), UserName: s.users[item.UserID].Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneRequest(item request.Request) request.Request {
	item.Notes = cloneString(item.Notes)
	return item
}
