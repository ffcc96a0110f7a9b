package ticket

import (
	"fmt"
	"strings"
	"time"
)

// Status is the inventory state of one ticket.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusAssigned    Status = "assigned"
	StatusUnavailable Status = "unavailable"
)

// ParseStatus rejects anything outside the known set.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusAvailable, StatusAssigned, StatusUnavailable:
		return s, nil
	default:
		return "", fmt.Errorf("unknown ticket status %q", raw)
	}
}

// Ticket is one seat for one home game.
type Ticket struct {
	ID         int64
	GameKey    int64
	SeatID     int64
	Status     Status
	Notes      *string
	AssignedTo *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Detail is a ticket joined with its seat identity and assignee name.
type Detail struct {
	Ticket
	Section      string
	Row          string
	SeatLabel    string
	AssigneeName *string
	OfficialDate string
	Opponent     string
}

// Summary counts a game's tickets.
type Summary struct {
	GameKey   int64
	Total     int
	Available int
}
