package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

type AllocationRepository struct {
	store *Store
}

// Allocate checks every assignment before touching anything, so a failure
// leaves the store unchanged.
func (r *AllocationRepository) Allocate(_ context.Context, assignments []allocation.Assignment) (allocation.AllocateResult, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range assignments {
		t, ok := s.tickets[a.TicketID]
		if !ok {
			return allocation.AllocateResult{}, fmt.Errorf("%w: ticket=%d", allocation.ErrTicketNotFound, a.TicketID)
		}
		if t.Status != ticket.StatusAvailable {
			return allocation.AllocateResult{}, fmt.Errorf("%w: ticket=%d status=%s", allocation.ErrTicketNotAvailable, a.TicketID, t.Status)
		}
		if _, ok := s.users[a.UserID]; !ok {
			return allocation.AllocateResult{}, fmt.Errorf("%w: user=%d", allocation.ErrUserNotFound, a.UserID)
		}
		if a.RequestID == nil {
			continue
		}
		req, ok := s.requests[*a.RequestID]
		if !ok {
			return allocation.AllocateResult{}, fmt.Errorf("%w: request=%d", allocation.ErrRequestNotFound, *a.RequestID)
		}
		if req.UserID != a.UserID || req.GameKey != t.GameKey || !req.Status.Open() {
			return allocation.AllocateResult{}, fmt.Errorf("%w: request=%d ticket=%d", allocation.ErrRequestMismatch, req.ID, t.ID)
		}
	}

	now := s.now()
	result := allocation.AllocateResult{Approved: make(map[int64]int)}
	for _, a := range assignments {
		t := s.tickets[a.TicketID]
		userID := a.UserID
		t.Status = ticket.StatusAssigned
		t.AssignedTo = &userID
		t.UpdatedAt = now
		s.tickets[t.ID] = t
		result.Tickets = append(result.Tickets, cloneTicket(t))
		if a.RequestID != nil {
			result.Approved[*a.RequestID]++
		}
	}
	for id, n := range result.Approved {
		req := s.requests[id]
		req.SeatsApproved += n
		req.Status = request.StatusApproved
		req.UpdatedAt = now
		s.requests[id] = req
	}
	return result, nil
}

func (r *AllocationRepository) Revoke(_ context.Context, ticketID int64) (ticket.Ticket, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[ticketID]
	if !ok {
		return ticket.Ticket{}, fmt.Errorf("%w: ticket=%d", allocation.ErrTicketNotFound, ticketID)
	}
	if t.Status != ticket.StatusAssigned {
		return ticket.Ticket{}, fmt.Errorf("%w: ticket=%d status=%s", allocation.ErrTicketNotAssigned, ticketID, t.Status)
	}
	t.Status = ticket.StatusAvailable
	t.AssignedTo = nil
	t.UpdatedAt = s.now()
	s.tickets[ticketID] = t
	return cloneTicket(t), nil
}

func (r *AllocationRepository) ReleaseForGame(_ context.Context, userID, gameKey int64) (allocation.ReleaseResult, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	result := allocation.ReleaseResult{Released: s.releaseLocked(userID, gameKey)}
	if len(result.Released) == 0 {
		return result, nil
	}
	for id, req := range s.requests {
		if req.UserID != userID || req.GameKey != gameKey || !req.Status.Open() {
			continue
		}
		req.Status = request.StatusWithdrawn
		req.UpdatedAt = s.now()
		s.requests[id] = req
		reqID := id
		result.WithdrawnRequestID = &reqID
	}
	return result, nil
}

func (r *AllocationRepository) Summary(_ context.Context) ([]allocation.GameSummary, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make(map[int64]*allocation.GameSummary)
	for _, key := range s.homeGameKeys() {
		g := s.games[key]
		rows[key] = &allocation.GameSummary{
			GameKey:      key,
			OfficialDate: g.OfficialDate,
			Opponent:     g.Opponent(s.trackedTeamID),
		}
	}
	for _, t := range s.tickets {
		row, ok := rows[t.GameKey]
		if !ok {
			continue
		}
		row.TotalSeats++
		switch t.Status {
		case ticket.StatusAssigned:
			row.Assigned++
		case ticket.StatusAvailable:
			row.Available++
		}
	}
	for _, req := range s.requests {
		if row, ok := rows[req.GameKey]; ok {
			row.TotalRequested += req.Outstanding()
		}
	}

	out := make([]allocation.GameSummary, 0, len(rows))
	for _, row := range rows {
		row.Oversubscribed = allocation.IsOversubscribed(row.TotalRequested, row.Available)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		gi, gj := s.games[out[i].GameKey], s.games[out[j].GameKey]
		if !gi.GameDate.Equal(gj.GameDate) {
			return gi.GameDate.Before(gj.GameDate)
		}
		return out[i].GameKey < out[j].GameKey
	})
	return out, nil
}
