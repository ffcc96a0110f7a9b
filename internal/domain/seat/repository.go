package seat

import "context"

// Repository owns seat rows. CreateBatch and Delete also touch game tickets so
// that both happen in the same transaction.
type Repository interface {
	// CreateBatch inserts every seat and generates tickets for all existing
	// home games, or nothing at all. A clash with an existing seat returns
	// ErrDuplicate.
	CreateBatch(ctx context.Context, seats []NewSeat) (CreateResult, error)
	List(ctx context.Context) ([]Seat, error)
	Get(ctx context.Context, id int64) (Seat, bool, error)
	UpdateGroupNotes(ctx context.Context, group Group, notes *string) ([]Seat, error)
	// Delete removes the seat's tickets and then the seat. It reports false
	// when no seat has that id.
	Delete(ctx context.Context, id int64) (int, bool, error)
}
