package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/season-tickets/internal/domain/seat"
)

type SeatRepository struct {
	store *Store
}

func (r *SeatRepository) CreateBatch(_ context.Context, batch []seat.NewSeat) (seat.CreateResult, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make(map[seatKey]struct{}, len(batch))
	for _, n := range batch {
		key := seatKey{section: n.Section, row: n.Row, label: n.Label}
		if _, exists := s.seatIdx[key]; exists {
			return seat.CreateResult{}, fmt.Errorf("%w: %s/%s/%s", seat.ErrDuplicate, n.Section, n.Row, n.Label)
		}
		if _, dup := pending[key]; dup {
			return seat.CreateResult{}, fmt.Errorf("%w: %s/%s/%s repeated in batch", seat.ErrDuplicate, n.Section, n.Row, n.Label)
		}
		pending[key] = struct{}{}
	}

	now := s.now()
	result := seat.CreateResult{Seats: make([]seat.Seat, 0, len(batch))}
	ids := make([]int64, 0, len(batch))
	for _, n := range batch {
		item := seat.Seat{
			ID:        s.nextID(),
			Section:   n.Section,
			Row:       n.Row,
			Label:     n.Label,
			Notes:     cloneString(n.Notes),
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.seats[item.ID] = item
		s.seatIdx[seatKey{section: n.Section, row: n.Row, label: n.Label}] = item.ID
		ids = append(ids, item.ID)
		result.Seats = append(result.Seats, cloneSeat(item))
	}
	result.TicketsGenerated = s.generate(s.homeGameKeys(), ids)
	return result, nil
}

func (r *SeatRepository) List(_ context.Context) ([]seat.Seat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]seat.Seat, 0, len(s.seats))
	for _, item := range s.seats {
		out = append(out, cloneSeat(item))
	}
	seat.Sort(out)
	return out, nil
}

func (r *SeatRepository) Get(_ context.Context, id int64) (seat.Seat, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.seats[id]
	if !ok {
		return seat.Seat{}, false, nil
	}
	return cloneSeat(item), true, nil
}

func (r *SeatRepository) UpdateGroupNotes(_ context.Context, group seat.Group, notes *string) ([]seat.Seat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var out []seat.Seat
	for id, item := range s.seats {
		if item.Section != group.Section || item.Row != group.Row {
			continue
		}
		item.Notes = cloneString(notes)
		item.UpdatedAt = now
		s.seats[id] = item
		out = append(out, cloneSeat(item))
	}
	seat.Sort(out)
	if out == nil {
		out = []seat.Seat{}
	}
	return out, nil
}

func (r *SeatRepository) Delete(_ context.Context, id int64) (int, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.seats[id]
	if !ok {
		return 0, false, nil
	}

	removed := 0
	for key, ticketID := range s.ticketIx {
		if key.seat != id {
			continue
		}
		delete(s.tickets, ticketID)
		delete(s.ticketIx, key)
		removed++
	}
	delete(s.seats, id)
	delete(s.seatIdx, seatKey{section: item.Section, row: item.Row, label: item.Label})
	return removed, true, nil
}

func cloneSeat(item seat.Seat) seat.Seat {
	item.Notes = cloneString(item.Notes)
	return item
}
