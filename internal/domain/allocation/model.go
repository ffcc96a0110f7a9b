package allocation

import (
	"errors"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

// MaxBatchSize bounds one allocate call.
const MaxBatchSize = 50

var (
	ErrTicketNotFound     = errors.New("ticket not found")
	ErrTicketNotAvailable = errors.New("ticket is not available")
	ErrTicketNotAssigned  = errors.New("ticket is not assigned")
	ErrRequestNotFound    = errors.New("request not found")
	ErrRequestMismatch    = errors.New("request does not match ticket game and user or is closed")
	ErrUserNotFound       = errors.New("user not found")
)

// Assignment pairs a ticket with a member, optionally crediting a request.
type Assignment struct {
	TicketID  int64
	UserID    int64
	RequestID *int64
}

type AllocateResult struct {
	Tickets []ticket.Ticket
	// Approved maps request id to seats credited by this call.
	Approved map[int64]int
}

// ReleaseResult reports a member giving back their seats for one game.
type ReleaseResult struct {
	Released []int64
	// WithdrawnRequestID is set when the release emptied an approved request.
	WithdrawnRequestID *int64
}

// GameSummary is the per home game allocation view.
type GameSummary struct {
	GameKey        int64
	OfficialDate   string
	Opponent       string
	TotalSeats     int
	Assigned       int
	Available      int
	TotalRequested int
	Oversubscribed bool
}

// IsOversubscribed reports whether outstanding demand exceeds the seats left.
// Equal demand and supply is not oversubscribed.
func IsOversubscribed(requested, available int) bool {
	return requested > available
}

type EventType string

const (
	EventAllocated        EventType = "tickets.allocated"
	EventRevoked          EventType = "tickets.revoked"
	EventReleased         EventType = "tickets.released"
	EventRequestWithdrawn EventType = "request.withdrawn"
)

// Event is an advisory notification emitted after a committed change.
type Event struct {
	Type       EventType `json:"type"`
	GameKeys   []int64   `json:"game_pks,omitempty"`
	TicketIDs  []int64   `json:"ticket_ids,omitempty"`
	UserID     *int64    `json:"user_id,omitempty"`
	RequestID  *int64    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
