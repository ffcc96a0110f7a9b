package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

type AllocationRepository struct {
	db            *sqlx.DB
	trackedTeamID int64
}

func NewAllocationRepository(db *sqlx.DB, trackedTeamID int64) *AllocationRepository {
	return &AllocationRepository{db: db, trackedTeamID: trackedTeamID}
}

// Allocate locks the tickets in id order, verifies the whole batch, then
// writes it. Any failure rolls everything back.
func (r *AllocationRepository) Allocate(ctx context.Context, assignments []allocation.Assignment) (allocation.AllocateResult, error) {
	if len(assignments) == 0 {
		return allocation.AllocateResult{Approved: map[int64]int{}}, nil
	}

	ticketIDs := make([]int64, 0, len(assignments))
	userIDs := make([]int64, 0, len(assignments))
	requestIDs := make([]int64, 0, len(assignments))
	for _, a := range assignments {
		ticketIDs = append(ticketIDs, a.TicketID)
		userIDs = append(userIDs, a.UserID)
		if a.RequestID != nil {
			requestIDs = append(requestIDs, *a.RequestID)
		}
	}
	slices.Sort(ticketIDs)
	slices.Sort(requestIDs)
	requestIDs = slices.Compact(requestIDs)

	var result allocation.AllocateResult
	err := inTx(ctx, r.db, "allocate tickets", func(tx *sqlx.Tx) error {
		tickets, err := lockTickets(ctx, tx, ticketIDs)
		if err != nil {
			return err
		}
		users, err := existingUsers(ctx, tx, userIDs)
		if err != nil {
			return err
		}
		requests, err := lockRequests(ctx, tx, requestIDs)
		if err != nil {
			return err
		}

		for _, a := range assignments {
			t, ok := tickets[a.TicketID]
			if !ok {
				return fmt.Errorf("%w: ticket=%d", allocation.ErrTicketNotFound, a.TicketID)
			}
			if ticket.Status(t.Status) != ticket.StatusAvailable {
				return fmt.Errorf("%w: ticket=%d status=%s", allocation.ErrTicketNotAvailable, a.TicketID, t.Status)
			}
			if _, ok := users[a.UserID]; !ok {
				return fmt.Errorf("%w: user=%d", allocation.ErrUserNotFound, a.UserID)
			}
			if a.RequestID == nil {
				continue
			}
			req, ok := requests[*a.RequestID]
			if !ok {
				return fmt.Errorf("%w: request=%d", allocation.ErrRequestNotFound, *a.RequestID)
			}
			if req.UserID != a.UserID || req.GameKey != t.GameKey || !request.Status(req.Status).Open() {
				return fmt.Errorf("%w: request=%d ticket=%d", allocation.ErrRequestMismatch, req.ID, t.ID)
			}
		}

		result = allocation.AllocateResult{
			Tickets:  make([]ticket.Ticket, 0, len(assignments)),
			Approved: make(map[int64]int),
		}
		for _, a := range assignments {
			query, args, err := qb.Update("game_tickets").
				Set("status", string(ticket.StatusAssigned)).
				Set("assigned_to", a.UserID).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", a.TicketID)).
				Returning(ticketColumns).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build assign ticket query: %w", err)
			}
			var row ticketTableModel
			if err := tx.GetContext(ctx, &row, query, args...); err != nil {
				if isForeignKeyViolation(err) {
					return fmt.Errorf("%w: user=%d", allocation.ErrUserNotFound, a.UserID)
				}
				return fmt.Errorf("assign ticket %d: %w", a.TicketID, err)
			}
			result.Tickets = append(result.Tickets, row.toDomain())
			if a.RequestID != nil {
				result.Approved[*a.RequestID]++
			}
		}

		for _, id := range requestIDs {
			query, args, err := qb.Update("ticket_requests").
				SetExpr("seats_approved", "seats_approved + ?", result.Approved[id]).
				Set("status", string(request.StatusApproved)).
				SetExpr("updated_at", "NOW()").
				Where(qb.Eq("id", id)).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build approve request query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("approve request %d: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return allocation.AllocateResult{}, err
	}
	return result, nil
}

func (r *AllocationRepository) Revoke(ctx context.Context, ticketID int64) (ticket.Ticket, error) {
	var out ticket.Ticket
	err := inTx(ctx, r.db, "revoke ticket", func(tx *sqlx.Tx) error {
		locked, err := lockTickets(ctx, tx, []int64{ticketID})
		if err != nil {
			return err
		}
		current, ok := locked[ticketID]
		if !ok {
			return fmt.Errorf("%w: ticket=%d", allocation.ErrTicketNotFound, ticketID)
		}
		if ticket.Status(current.Status) != ticket.StatusAssigned {
			return fmt.Errorf("%w: ticket=%d status=%s", allocation.ErrTicketNotAssigned, ticketID, current.Status)
		}

		query, args, err := qb.Update("game_tickets").
			Set("status", string(ticket.StatusAvailable)).
			SetExpr("assigned_to", "NULL").
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", ticketID)).
			Returning(ticketColumns).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build revoke ticket query: %w", err)
		}
		var row ticketTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return fmt.Errorf("revoke ticket: %w", err)
		}
		out = row.toDomain()
		return nil
	})
	if err != nil {
		return ticket.Ticket{}, err
	}
	return out, nil
}

// ReleaseForGame also withdraws the user's open request for the game when
// anything was released.
func (r *AllocationRepository) ReleaseForGame(ctx context.Context, userID, gameKey int64) (allocation.ReleaseResult, error) {
	var result allocation.ReleaseResult
	err := inTx(ctx, r.db, "release tickets", func(tx *sqlx.Tx) error {
		released, err := releaseTickets(ctx, tx, userID, gameKey)
		if err != nil {
			return err
		}
		result.Released = released
		if len(released) == 0 {
			return nil
		}

		query, args, err := qb.Update("ticket_requests").
			Set("status", string(request.StatusWithdrawn)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("user_id", userID),
				qb.Eq("game_pk", gameKey),
				qb.Expr("status IN ('pending', 'approved')"),
			).
			Returning("id").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build withdraw released request query: %w", err)
		}
		var ids []int64
		if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
			return fmt.Errorf("withdraw released request: %w", err)
		}
		if len(ids) > 0 {
			result.WithdrawnRequestID = &ids[0]
		}
		return nil
	})
	if err != nil {
		return allocation.ReleaseResult{}, err
	}
	return result, nil
}

func (r *AllocationRepository) Summary(ctx context.Context) ([]allocation.GameSummary, error) {
	const query = `
SELECT g.game_pk,
       g.official_date,
       g.away_team_name AS opponent,
       COUNT(t.id) AS total_seats,
       COUNT(t.id) FILTER (WHERE t.status = 'assigned') AS assigned,
       COUNT(t.id) FILTER (WHERE t.status = 'available') AS available,
       COALESCE((
           SELECT SUM(GREATEST(r.seats_requested - r.seats_approved, 0))
           FROM ticket_requests r
           WHERE r.game_pk = g.game_pk
             AND r.status IN ('pending', 'approved')
       ), 0) AS total_requested
FROM games g
LEFT JOIN game_tickets t ON t.game_pk = g.game_pk
WHERE g.home_team_id = $1
GROUP BY g.game_pk
ORDER BY g.game_date, g.game_pk`

	var rows []struct {
		GameKey        int64  `db:"game_pk"`
		OfficialDate   string `db:"official_date"`
		Opponent       string `db:"opponent"`
		TotalSeats     int    `db:"total_seats"`
		Assigned       int    `db:"assigned"`
		Available      int    `db:"available"`
		TotalRequested int    `db:"total_requested"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, r.trackedTeamID); err != nil {
		return nil, fmt.Errorf("select allocation summary: %w", err)
	}

	out := make([]allocation.GameSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, allocation.GameSummary{
			GameKey:        row.GameKey,
			OfficialDate:   row.OfficialDate,
			Opponent:       row.Opponent,
			TotalSeats:     row.TotalSeats,
			Assigned:       row.Assigned,
			Available:      row.Available,
			TotalRequested: row.TotalRequested,
			Oversubscribed: allocation.IsOversubscribed(row.TotalRequested, row.Available),
		})
	}
	return out, nil
}

func lockTickets(ctx context.Context, tx *sqlx.Tx, ids []int64) (map[int64]ticketTableModel, error) {
	query, args, err := qb.Select(ticketColumns).From("game_tickets").
		Where(qb.In("id", ids)).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock tickets query: %w", err)
	}
	var rows []ticketTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("lock tickets: %w", err)
	}
	out := make(map[int64]ticketTableModel, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func lockRequests(ctx context.Context, tx *sqlx.Tx, ids []int64) (map[int64]requestTableModel, error) {
	if len(ids) == 0 {
		return map[int64]requestTableModel{}, nil
	}
	query, args, err := qb.Select(requestColumns).From("ticket_requests").
		Where(qb.In("id", ids)).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock requests query: %w", err)
	}
	var rows []requestTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("lock requests: %w", err)
	}
	out := make(map[int64]requestTableModel, len(rows))
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func existingUsers(ctx context.Context, tx *sqlx.Tx, ids []int64) (map[int64]struct{}, error) {
	query, args, err := qb.Select("id").From("users").Where(qb.In("id", ids)).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}
	var found []int64
	if err := tx.SelectContext(ctx, &found, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	out := make(map[int64]struct{}, len(found))
	for _, id := range found {
		out[id] = struct{}{}
	}
	return out, nil
}
