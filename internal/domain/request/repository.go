package request

import "context"

// Repository owns ticket_requests rows. Guarded mutations return false when
// the row is missing or the guard did not match.
type Repository interface {
	// Create fails with ErrDuplicate when the user already has a
	// non-withdrawn request for the game.
	Create(ctx context.Context, req NewRequest) (Request, error)
	Get(ctx context.Context, id int64) (Request, bool, error)
	// UpdateSeats applies only while the request is pending and owned by
	// userID.
	UpdateSeats(ctx context.Context, id, userID int64, seats int) (Request, bool, error)
	// Withdraw flips an open request owned by userID to withdrawn and frees the
	// user's assigned tickets for that game in the same transaction.
	Withdraw(ctx context.Context, id, userID int64) (WithdrawResult, bool, error)
	// Decline applies only while the request is pending.
	Decline(ctx context.Context, id int64) (Request, bool, error)
	ListByUser(ctx context.Context, userID int64) ([]Request, error)
	ListAll(ctx context.Context) ([]Detail, error)
	ListPending(ctx context.Context) ([]Detail, error)
	ListByGame(ctx context.Context, gameKey int64) ([]Detail, error)
}
