package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

type TicketRepository struct {
	store *Store
}

func (r *TicketRepository) GenerateForSeats(_ context.Context, seatIDs []int64) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(s.homeGameKeys(), seatIDs), nil
}

func (r *TicketRepository) GenerateForGames(_ context.Context, gameKeys []int64) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(gameKeys, s.seatIDs()), nil
}

func (r *TicketRepository) Backfill(_ context.Context) (int, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generate(s.homeGameKeys(), s.seatIDs()), nil
}

func (r *TicketRepository) Get(_ context.Context, id int64) (ticket.Ticket, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return ticket.Ticket{}, false, nil
	}
	return cloneTicket(t), true, nil
}

func (r *TicketRepository) UpdateStatus(_ context.Context, id int64, status ticket.Status, notes *string) (ticket.Ticket, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return ticket.Ticket{}, false, nil
	}
	t.Status = status
	t.Notes = cloneString(notes)
	if status != ticket.StatusAssigned {
		t.AssignedTo = nil
	}
	t.UpdatedAt = s.now()
	s.tickets[id] = t
	return cloneTicket(t), true, nil
}

func (r *TicketRepository) Summary(_ context.Context) ([]ticket.Summary, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	byGame := make(map[int64]*ticket.Summary, len(s.games))
	for key := range s.games {
		byGame[key] = &ticket.Summary{GameKey: key}
	}
	for _, t := range s.tickets {
		row, ok := byGame[t.GameKey]
		if !ok {
			continue
		}
		row.Total++
		if t.Status == ticket.StatusAvailable {
			row.Available++
		}
	}

	out := make([]ticket.Summary, 0, len(byGame))
	for _, row := range byGame {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameKey < out[j].GameKey })
	return out, nil
}

func (r *TicketRepository) ListByGame(_ context.Context, gameKey int64) ([]ticket.Detail, error) {
	return r.list(func(t ticket.Ticket) bool { return t.GameKey == gameKey })
}

func (r *TicketRepository) ListByUser(_ context.Context, userID int64) ([]ticket.Detail, error) {
	return r.list(func(t ticket.Ticket) bool {
		return t.Status == ticket.StatusAssigned && t.AssignedTo != nil && *t.AssignedTo == userID
	})
}

func (r *TicketRepository) list(match func(ticket.Ticket) bool) ([]ticket.Detail, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ticket.Detail, 0)
	for _, t := range s.tickets {
		if match(t) {
			out = append(out, s.ticketDetail(t))
		}
	}
	sortDetails(out, s.games)
	return out, nil
}
