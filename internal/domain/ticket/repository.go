package ticket

import "context"

// Repository owns game_tickets rows.
type Repository interface {
	// GenerateForSeats inserts an available ticket for every home game and
	// each given seat, skipping pairs that already have one.
	GenerateForSeats(ctx context.Context, seatIDs []int64) (int, error)
	// GenerateForGames is the same pass keyed by newly ingested games; away
	// games are ignored.
	GenerateForGames(ctx context.Context, gameKeys []int64) (int, error)
	// Backfill creates every missing (home game, seat) ticket and returns how
	// many rows were inserted. It never rewrites an existing ticket.
	Backfill(ctx context.Context) (int, error)
	Get(ctx context.Context, id int64) (Ticket, bool, error)
	// UpdateStatus sets status and notes. Leaving the assigned state clears
	// the assignee.
	UpdateStatus(ctx context.Context, id int64, status Status, notes *string) (Ticket, bool, error)
	Summary(ctx context.Context) ([]Summary, error)
	ListByGame(ctx context.Context, gameKey int64) ([]Detail, error)
	ListByUser(ctx context.Context, userID int64) ([]Detail, error)
}
