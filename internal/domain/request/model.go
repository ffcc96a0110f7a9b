package request

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	MinSeats = 1
	MaxSeats = 4
)

var ErrDuplicate = errors.New("an open request for this game already exists")

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusWithdrawn Status = "withdrawn"
)

func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case StatusPending, StatusApproved, StatusDeclined, StatusWithdrawn:
		return s, nil
	default:
		return "", fmt.Errorf("unknown request status %q", raw)
	}
}

// CanTransitionTo encodes the request lifecycle. approved -> approved is the
// incremental allocation case.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusDeclined || next == StatusWithdrawn
	case StatusApproved:
		return next == StatusApproved || next == StatusWithdrawn
	default:
		return false
	}
}

// Open reports whether the request still counts toward demand.
func (s Status) Open() bool {
	return s == StatusPending || s == StatusApproved
}

func ValidateSeats(n int) error {
	if n < MinSeats || n > MaxSeats {
		return fmt.Errorf("seats_requested must be %d-%d, got %d", MinSeats, MaxSeats, n)
	}
	return nil
}

// Request is one member's demand for one game.
type Request struct {
	ID             int64
	UserID         int64
	GameKey        int64
	SeatsRequested int
	SeatsApproved  int
	Status         Status
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Outstanding is the number of seats still wanted.
func (r Request) Outstanding() int {
	if !r.Status.Open() || r.SeatsApproved >= r.SeatsRequested {
		return 0
	}
	return r.SeatsRequested - r.SeatsApproved
}

type NewRequest struct {
	UserID         int64
	GameKey        int64
	SeatsRequested int
	Notes          *string
}

// Detail adds the requester's display name.
type Detail struct {
	Request
	UserName string
}

// WithdrawResult reports the withdrawn request and how many of its tickets
// went back to the pool.
type WithdrawResult struct {
	Request  Request
	Released []int64
}
