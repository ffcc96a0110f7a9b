package allocation

import (
	"context"

	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

// Repository applies allocation changes across tickets and requests. Every
// method is one transaction.
type Repository interface {
	// Allocate assigns every ticket or none. A ticket that is not available
	// aborts the batch with ErrTicketNotAvailable.
	Allocate(ctx context.Context, assignments []Assignment) (AllocateResult, error)
	// Revoke returns an assigned ticket to the pool. Request counters are not
	// adjusted.
	Revoke(ctx context.Context, ticketID int64) (ticket.Ticket, error)
	ReleaseForGame(ctx context.Context, userID, gameKey int64) (ReleaseResult, error)
	Summary(ctx context.Context) ([]GameSummary, error)
}

// Publisher delivers events. Implementations must not block for long.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
