package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type seatKey struct{ section, row, label string }

type ticketKey struct{ game, seat int64 }

type promotionKey struct{ offer, game int64 }

// Store keeps every table behind one mutex so that each repository call is
// atomic, the way a single database transaction would be. Repositories are
// views over the same Store.
type Store struct {
	mu            sync.Mutex
	trackedTeamID int64
	now           func() time.Time

	seats    map[int64]seat.Seat
	seatIdx  map[seatKey]int64
	games    map[int64]game.Game
	promos   map[promotionKey]game.Promotion
	tickets  map[int64]ticket.Ticket
	ticketIx map[ticketKey]int64
	users    map[int64]user.User
	userIdx  map[string]int64
	requests map[int64]request.Request

	lastID int64
}

func NewStore(trackedTeamID int64) *Store {
	return &Store{
		trackedTeamID: trackedTeamID,
		now:           time.Now,
		seats:         make(map[int64]seat.Seat),
		seatIdx:       make(map[seatKey]int64),
		games:         make(map[int64]game.Game),
		promos:        make(map[promotionKey]game.Promotion),
		tickets:       make(map[int64]ticket.Ticket),
		ticketIx:      make(map[ticketKey]int64),
		users:         make(map[int64]user.User),
		userIdx:       make(map[string]int64),
		requests:      make(map[int64]request.Request),
	}
}

func (s *Store) Seats() *SeatRepository             { return &SeatRepository{s} }
func (s *Store) Games() *GameRepository             { return &GameRepository{s} }
func (s *Store) Tickets() *TicketRepository         { return &TicketRepository{s} }
func (s *Store) Requests() *RequestRepository       { return &RequestRepository{s} }
func (s *Store) Allocations() *AllocationRepository { return &AllocationRepository{s} }
func (s *Store) Users() *UserRepository             { return &UserRepository{s} }

// nextID hands out ids from one sequence shared by all tables.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

func (s *Store) homeGameKeys() []int64 {
	keys := make([]int64, 0, len(s.games))
	for key, g := range s.games {
		if g.IsHomeFor(s.trackedTeamID) {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *Store) seatIDs() []int64 {
	ids := make([]int64, 0, len(s.seats))
	for id := range s.seats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// generate inserts an available ticket for every missing (home game, seat)
// pair in the cross product. Existing tickets are left alone.
func (s *Store) generate(gameKeys, seatIDs []int64) int {
	now := s.now()
	created := 0
	for _, gameKey := range gameKeys {
		g, ok := s.games[gameKey]
		if !ok || !g.IsHomeFor(s.trackedTeamID) {
			continue
		}
		for _, seatID := range seatIDs {
			if _, ok := s.seats[seatID]; !ok {
				continue
			}
			key := ticketKey{game: gameKey, seat: seatID}
			if _, exists := s.ticketIx[key]; exists {
				continue
			}
			id := s.nextID()
			s.tickets[id] = ticket.Ticket{
				ID:        id,
				GameKey:   gameKey,
				SeatID:    seatID,
				Status:    ticket.StatusAvailable,
				CreatedAt: now,
				UpdatedAt: now,
			}
			s.ticketIx[key] = id
			created++
		}
	}
	return created
}

// releaseLocked frees the user's assigned tickets for one game.
func (s *Store) releaseLocked(userID, gameKey int64) []int64 {
	now := s.now()
	var released []int64
	for _, id := range s.sortedTicketIDs() {
		t := s.tickets[id]
		if t.GameKey != gameKey || t.Status != ticket.StatusAssigned || t.AssignedTo == nil || *t.AssignedTo != userID {
			continue
		}
		t.Status = ticket.StatusAvailable
		t.AssignedTo = nil
		t.UpdatedAt = now
		s.tickets[id] = t
		released = append(released, id)
	}
	return released
}

func (s *Store) sortedTicketIDs() []int64 {
	ids := make([]int64, 0, len(s.tickets))
	for id := range s.tickets {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *Store) ticketDetail(t ticket.Ticket) ticket.Detail {
	st := s.seats[t.SeatID]
	g := s.games[t.GameKey]
	d := ticket.Detail{
		Ticket:       cloneTicket(t),
		Section:      st.Section,
		Row:          st.Row,
		SeatLabel:    st.Label,
		OfficialDate: g.OfficialDate,
		Opponent:     g.Opponent(s.trackedTeamID),
	}
	if t.AssignedTo != nil {
		if u, ok := s.users[*t.AssignedTo]; ok {
			name := u.Name
			d.AssigneeName = &name
		}
	}
	return d
}

func sortDetails(items []ticket.Detail, games map[int64]game.Game) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.GameKey != b.GameKey {
			ga, gb := games[a.GameKey], games[b.GameKey]
			if !ga.GameDate.Equal(gb.GameDate) {
				return ga.GameDate.Before(gb.GameDate)
			}
			return a.GameKey < b.GameKey
		}
		return seat.Less(
			seat.Seat{Section: a.Section, Row: a.Row, Label: a.SeatLabel},
			seat.Seat{Section: b.Section, Row: b.Row, Label: b.SeatLabel},
		)
	})
}

func cloneTicket(t ticket.Ticket) ticket.Ticket {
	t.Notes = cloneString(t.Notes)
	if t.AssignedTo != nil {
		v := *t.AssignedTo
		t.AssignedTo = &v
	}
	return t
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
