package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// generationLockKey serializes every transaction that adds seats or games and
// then generates tickets. Without it, a seat and a home game committed
// concurrently under READ COMMITTED never see each other and their pair stays
// uncovered.
const generationLockKey = 0x71c7_6e4e

func lockTicketGeneration(ctx context.Context, tx *sqlx.Tx) error {
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, generationLockKey); err != nil {
		return fmt.Errorf("acquire ticket generation lock: %w", err)
	}
	return nil
}

// generateTicketsSQL pairs every home game with every seat, optionally
// narrowed by game keys or seat ids. Existing pairs are left alone.
const generateTicketsSQL = `
INSERT INTO game_tickets (game_pk, seat_id, status)
SELECT g.game_pk, s.id, 'available'
FROM games g
CROSS JOIN seats s
WHERE g.home_team_id = $1
  AND ($2::bigint[] IS NULL OR g.game_pk = ANY($2))
  AND ($3::bigint[] IS NULL OR s.id = ANY($3))
ORDER BY g.game_pk, s.id
ON CONFLICT (game_pk, seat_id) DO NOTHING`

// generateTickets treats a nil slice as "all" and an empty one as "none".
func generateTickets(ctx context.Context, exec sqlx.ExecerContext, teamID int64, gameKeys, seatIDs []int64) (int, error) {
	if (gameKeys != nil && len(gameKeys) == 0) || (seatIDs != nil && len(seatIDs) == 0) {
		return 0, nil
	}
	res, err := exec.ExecContext(ctx, generateTicketsSQL, teamID, pq.Array(gameKeys), pq.Array(seatIDs))
	if err != nil {
		return 0, fmt.Errorf("generate tickets: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count generated tickets: %w", err)
	}
	return int(n), nil
}
