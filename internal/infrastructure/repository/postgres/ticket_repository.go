package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

type TicketRepository struct {
	db            *sqlx.DB
	trackedTeamID int64
}

func NewTicketRepository(db *sqlx.DB, trackedTeamID int64) *TicketRepository {
	return &TicketRepository{db: db, trackedTeamID: trackedTeamID}
}

func (r *TicketRepository) GenerateForSeats(ctx context.Context, seatIDs []int64) (int, error) {
	if seatIDs == nil {
		seatIDs = []int64{}
	}
	return r.generateLocked(ctx, nil, seatIDs)
}

func (r *TicketRepository) GenerateForGames(ctx context.Context, gameKeys []int64) (int, error) {
	if gameKeys == nil {
		gameKeys = []int64{}
	}
	return r.generateLocked(ctx, gameKeys, nil)
}

func (r *TicketRepository) Backfill(ctx context.Context) (int, error) {
	return r.generateLocked(ctx, nil, nil)
}

func (r *TicketRepository) generateLocked(ctx context.Context, gameKeys, seatIDs []int64) (int, error) {
	var created int
	err := inTx(ctx, r.db, "generate tickets", func(tx *sqlx.Tx) error {
		if err := lockTicketGeneration(ctx, tx); err != nil {
			return err
		}
		n, err := generateTickets(ctx, tx, r.trackedTeamID, gameKeys, seatIDs)
		created = n
		return err
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

func (r *TicketRepository) Get(ctx context.Context, id int64) (ticket.Ticket, bool, error) {
	query, args, err := qb.Select(ticketColumns).From("game_tickets").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return ticket.Ticket{}, false, fmt.Errorf("build get ticket query: %w", err)
	}
	var row ticketTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return ticket.Ticket{}, false, nil
		}
		return ticket.Ticket{}, false, fmt.Errorf("get ticket: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TicketRepository) UpdateStatus(ctx context.Context, id int64, status ticket.Status, notes *string) (ticket.Ticket, bool, error) {
	builder := qb.Update("game_tickets").
		Set("status", string(status)).
		Set("notes", nullString(notes)).
		SetExpr("updated_at", "NOW()")
	if status != ticket.StatusAssigned {
		builder = builder.SetExpr("assigned_to", "NULL")
	}
	query, args, err := builder.Where(qb.Eq("id", id)).Returning(ticketColumns).ToSQL()
	if err != nil {
		return ticket.Ticket{}, false, fmt.Errorf("build update ticket status query: %w", err)
	}

	var row ticketTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return ticket.Ticket{}, false, nil
		}
		return ticket.Ticket{}, false, fmt.Errorf("update ticket status: %w", err)
	}
	return row.toDomain(), true, nil
}

// Summary lists every game, away games included with zero counts.
func (r *TicketRepository) Summary(ctx context.Context) ([]ticket.Summary, error) {
	query, args, err := qb.Select(
		"g.game_pk",
		"COUNT(t.id) AS total",
		"COUNT(t.id) FILTER (WHERE t.status = 'available') AS available",
	).From("games g").
		LeftJoin("game_tickets t ON t.game_pk = g.game_pk").
		GroupBy("g.game_pk").
		OrderBy("g.game_pk").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build ticket summary query: %w", err)
	}

	var rows []struct {
		GameKey   int64 `db:"game_pk"`
		Total     int   `db:"total"`
		Available int   `db:"available"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select ticket summary: %w", err)
	}
	out := make([]ticket.Summary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ticket.Summary{GameKey: row.GameKey, Total: row.Total, Available: row.Available})
	}
	return out, nil
}

func (r *TicketRepository) ListByGame(ctx context.Context, gameKey int64) ([]ticket.Detail, error) {
	var rows []ticketDetailModel
	query := ticketDetailSelect + `
WHERE t.game_pk = $2`
	if err := r.db.SelectContext(ctx, &rows, query, r.trackedTeamID, gameKey); err != nil {
		return nil, fmt.Errorf("select tickets by game: %w", err)
	}
	return detailsFromRows(rows), nil
}

func (r *TicketRepository) ListByUser(ctx context.Context, userID int64) ([]ticket.Detail, error) {
	var rows []ticketDetailModel
	query := ticketDetailSelect + `
WHERE t.assigned_to = $2
  AND t.status = 'assigned'`
	if err := r.db.SelectContext(ctx, &rows, query, r.trackedTeamID, userID); err != nil {
		return nil, fmt.Errorf("select tickets by user: %w", err)
	}
	return detailsFromRows(rows), nil
}
