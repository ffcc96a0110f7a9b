package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

type SeatRepository struct {
	db            *sqlx.DB
	trackedTeamID int64
}

func NewSeatRepository(db *sqlx.DB, trackedTeamID int64) *SeatRepository {
	return &SeatRepository{db: db, trackedTeamID: trackedTeamID}
}

func (r *SeatRepository) CreateBatch(ctx context.Context, batch []seat.NewSeat) (seat.CreateResult, error) {
	if len(batch) == 0 {
		return seat.CreateResult{Seats: []seat.Seat{}}, nil
	}
	models := make([]any, 0, len(batch))
	for _, n := range batch {
		models = append(models, seatInsertModel{Section: n.Section, Row: n.Row, Label: n.Label, Notes: nullString(n.Notes)})
	}
	query, args, err := qb.InsertModels("seats", models, "RETURNING "+seatColumns)
	if err != nil {
		return seat.CreateResult{}, fmt.Errorf("build insert seats query: %w", err)
	}

	var result seat.CreateResult
	err = inTx(ctx, r.db, "create seats", func(tx *sqlx.Tx) error {
		if err := lockTicketGeneration(ctx, tx); err != nil {
			return err
		}
		var rows []seatTableModel
		if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %v", seat.ErrDuplicate, err)
			}
			return fmt.Errorf("insert seats: %w", err)
		}

		ids := make([]int64, 0, len(rows))
		for _, row := range rows {
			ids = append(ids, row.ID)
		}
		generated, err := generateTickets(ctx, tx, r.trackedTeamID, nil, ids)
		if err != nil {
			return err
		}
		result = seat.CreateResult{Seats: seatsFromRows(rows), TicketsGenerated: generated}
		return nil
	})
	if err != nil {
		return seat.CreateResult{}, err
	}
	return result, nil
}

func (r *SeatRepository) List(ctx context.Context) ([]seat.Seat, error) {
	query, args, err := qb.Select(seatColumns).From("seats").OrderBy("section", "row_label", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seats query: %w", err)
	}
	var rows []seatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select seats: %w", err)
	}
	return seatsFromRows(rows), nil
}

func (r *SeatRepository) Get(ctx context.Context, id int64) (seat.Seat, bool, error) {
	query, args, err := qb.Select(seatColumns).From("seats").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return seat.Seat{}, false, fmt.Errorf("build get seat query: %w", err)
	}
	var row seatTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return seat.Seat{}, false, nil
		}
		return seat.Seat{}, false, fmt.Errorf("get seat: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SeatRepository) UpdateGroupNotes(ctx context.Context, group seat.Group, notes *string) ([]seat.Seat, error) {
	query, args, err := qb.Update("seats").
		Set("notes", nullString(notes)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("section", group.Section), qb.Eq("row_label", group.Row)).
		Returning(seatColumns).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build update seat notes query: %w", err)
	}
	var rows []seatTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("update seat notes: %w", err)
	}
	return seatsFromRows(rows), nil
}

// Delete removes tickets first; the schema has no cascading deletes.
func (r *SeatRepository) Delete(ctx context.Context, id int64) (int, bool, error) {
	var (
		removed int
		found   bool
	)
	err := inTx(ctx, r.db, "delete seat", func(tx *sqlx.Tx) error {
		var locked int64
		if err := tx.GetContext(ctx, &locked, `SELECT id FROM seats WHERE id = $1 FOR UPDATE`, id); err != nil {
			if isNotFound(err) {
				return nil
			}
			return fmt.Errorf("lock seat: %w", err)
		}
		found = true

		query, args, err := qb.DeleteFrom("game_tickets").Where(qb.Eq("seat_id", id)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete seat tickets query: %w", err)
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("delete seat tickets: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("count deleted seat tickets: %w", err)
		}
		removed = int(n)

		query, args, err = qb.DeleteFrom("seats").Where(qb.Eq("id", id)).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete seat query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete seat: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, false, err
	}
	return removed, found, nil
}
