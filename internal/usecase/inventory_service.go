package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

type InventoryService struct {
	ticketRepo ticket.Repository
	gameRepo   game.Repository
	logger     *logging.Logger
}

func NewInventoryService(ticketRepo ticket.Repository, gameRepo game.Repository, logger *logging.Logger) *InventoryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &InventoryService{ticketRepo: ticketRepo, gameRepo: gameRepo, logger: logger}
}

// UpdateStatus is an administrative correction. It validates the status value
// but does not apply allocation rules.
func (s *InventoryService) UpdateStatus(ctx context.Context, ticketID int64, rawStatus string, notes *string) (ticket.Ticket, error) {
	if ticketID <= 0 {
		return ticket.Ticket{}, fmt.Errorf("%w: ticket id must be positive", ErrInvalidInput)
	}
	status, err := ticket.ParseStatus(rawStatus)
	if err != nil {
		return ticket.Ticket{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	updated, found, err := s.ticketRepo.UpdateStatus(ctx, ticketID, status, normalizeNotes(notes))
	if err != nil {
		return ticket.Ticket{}, storeError("update ticket status", err)
	}
	if !found {
		return ticket.Ticket{}, fmt.Errorf("%w: ticket=%d", ErrNotFound, ticketID)
	}
	return updated, nil
}

func (s *InventoryService) Summary(ctx context.Context) ([]ticket.Summary, error) {
	rows, err := s.ticketRepo.Summary(ctx)
	if err != nil {
		return nil, storeError("ticket summary", err)
	}
	return rows, nil
}

func (s *InventoryService) TicketsForGame(ctx context.Context, gameKey int64) ([]ticket.Detail, error) {
	if _, err := requireGame(ctx, s.gameRepo, gameKey); err != nil {
		return nil, err
	}
	tickets, err := s.ticketRepo.ListByGame(ctx, gameKey)
	if err != nil {
		return nil, storeError("list tickets by game", err)
	}
	return tickets, nil
}

// TicketsForUser lists every ticket currently assigned to the user.
func (s *InventoryService) TicketsForUser(ctx context.Context, userID int64) ([]ticket.Detail, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	tickets, err := s.ticketRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError("list tickets by user", err)
	}
	return tickets, nil
}

// Backfill runs the generation pass over all seats and home games.
func (s *InventoryService) Backfill(ctx context.Context) (int, error) {
	created, err := s.ticketRepo.Backfill(ctx)
	if err != nil {
		return 0, storeError("backfill tickets", err)
	}
	if created > 0 {
		s.logger.InfoContext(ctx, "tickets backfilled", "created", created)
	}
	return created, nil
}

func requireGame(ctx context.Context, repo game.Repository, key int64) (game.Game, error) {
	if key <= 0 {
		return game.Game{}, fmt.Errorf("%w: game_pk must be positive", ErrInvalidInput)
	}
	g, found, err := repo.Get(ctx, key)
	if err != nil {
		return game.Game{}, storeError("get game", err)
	}
	if !found {
		return game.Game{}, fmt.Errorf("%w: game=%d", ErrNotFound, key)
	}
	return g, nil
}
