package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster and homestand into an empty database.
// It does nothing once any game exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, trackedTeamID int64, now time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM games`); err != nil {
		return fmt.Errorf("count games for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seats := make([]seat.NewSeat, 0, 4)
	for _, label := range []string{"1", "2", "3", "4"} {
		seats = append(seats, seat.NewSeat{Section: "121", Row: "E", Label: label})
	}
	if _, err := NewSeatRepository(db, trackedTeamID).CreateBatch(ctx, seats); err != nil {
		return fmt.Errorf("seed seats: %w", err)
	}
	if _, err := NewGameRepository(db, trackedTeamID).Upsert(ctx, memory.SeedGames(trackedTeamID, now), nil); err != nil {
		return fmt.Errorf("seed games: %w", err)
	}
	return nil
}
