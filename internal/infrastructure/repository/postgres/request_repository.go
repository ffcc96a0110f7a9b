package postgres

import (
	"context"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

type RequestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) Create(ctx context.Context, in request.NewRequest) (request.Request, error) {
	query, args, err := qb.InsertModel("ticket_requests", requestInsertModel{
		UserID:         in.UserID,
		GameKey:        in.GameKey,
		SeatsRequested: in.SeatsRequested,
		Status:         string(request.StatusPending),
		Notes:          nullString(in.Notes),
	}, "RETURNING "+requestColumns)
	if err != nil {
		return request.Request{}, fmt.Errorf("build insert request query: %w", err)
	}

	var row requestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return request.Request{}, fmt.Errorf("%w: user=%d game=%d", request.ErrDuplicate, in.UserID, in.GameKey)
		}
		return request.Request{}, fmt.Errorf("insert request: %w", err)
	}
	return row.toDomain(), nil
}

func (r *RequestRepository) Get(ctx context.Context, id int64) (request.Request, bool, error) {
	query, args, err := qb.Select(requestColumns).From("ticket_requests").Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return request.Request{}, false, fmt.Errorf("build get request query: %w", err)
	}
	var row requestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return request.Request{}, false, nil
		}
		return request.Request{}, false, fmt.Errorf("get request: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RequestRepository) UpdateSeats(ctx context.Context, id, userID int64, seats int) (request.Request, bool, error) {
	query, args, err := qb.Update("ticket_requests").
		Set("seats_requested", seats).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", id),
			qb.Eq("user_id", userID),
			qb.EqLiteral("status", string(request.StatusPending)),
		).
		Returning(requestColumns).
		ToSQL()
	if err != nil {
		return request.Request{}, false, fmt.Errorf("build update request seats query: %w", err)
	}
	var row requestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return request.Request{}, false, nil
		}
		return request.Request{}, false, fmt.Errorf("update request seats: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RequestRepository) Withdraw(ctx context.Context, id, userID int64) (request.WithdrawResult, bool, error) {
	var (
		result request.WithdrawResult
		found  bool
	)
	err := inTx(ctx, r.db, "withdraw request", func(tx *sqlx.Tx) error {
		query, args, err := qb.Update("ticket_requests").
			Set("status", string(request.StatusWithdrawn)).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("id", id),
				qb.Eq("user_id", userID),
				qb.Expr("status IN ('pending', 'approved')"),
			).
			Returning(requestColumns).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build withdraw request query: %w", err)
		}
		var row requestTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			if isNotFound(err) {
				return nil
			}
			return fmt.Errorf("withdraw request: %w", err)
		}
		found = true

		released, err := releaseTickets(ctx, tx, userID, row.GameKey)
		if err != nil {
			return err
		}
		result = request.WithdrawResult{Request: row.toDomain(), Released: released}
		return nil
	})
	if err != nil {
		return request.WithdrawResult{}, false, err
	}
	return result, found, nil
}

func (r *RequestRepository) Decline(ctx context.Context, id int64) (request.Request, bool, error) {
	query, args, err := qb.Update("ticket_requests").
		Set("status", string(request.StatusDeclined)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", id), qb.EqLiteral("status", string(request.StatusPending))).
		Returning(requestColumns).
		ToSQL()
	if err != nil {
		return request.Request{}, false, fmt.Errorf("build decline request query: %w", err)
	}
	var row requestTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return request.Request{}, false, nil
		}
		return request.Request{}, false, fmt.Errorf("decline request: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RequestRepository) ListByUser(ctx context.Context, userID int64) ([]request.Request, error) {
	query, args, err := qb.Select(requestColumns).From("ticket_requests").
		Where(qb.Eq("user_id", userID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select requests by user query: %w", err)
	}
	var rows []requestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select requests by user: %w", err)
	}
	out := make([]request.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *RequestRepository) ListAll(ctx context.Context) ([]request.Detail, error) {
	return r.listDetails(ctx, "", nil)
}

func (r *RequestRepository) ListPending(ctx context.Context) ([]request.Detail, error) {
	return r.listDetails(ctx, "WHERE r.status = 'pending'", nil)
}

func (r *RequestRepository) ListByGame(ctx context.Context, gameKey int64) ([]request.Detail, error) {
	return r.listDetails(ctx, "WHERE r.game_pk = $1", []any{gameKey})
}

func (r *RequestRepository) listDetails(ctx context.Context, where string, args []any) ([]request.Detail, error) {
	query := requestDetailSelect + "\n" + where + "\nORDER BY r.id"
	var rows []requestDetailModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select request details: %w", err)
	}
	return requestDetailsFromRows(rows), nil
}

// releaseTickets frees the user's assigned tickets for one game inside tx.
func releaseTickets(ctx context.Context, tx *sqlx.Tx, userID, gameKey int64) ([]int64, error) {
	query, args, err := qb.Update("game_tickets").
		Set("status", "available").
		SetExpr("assigned_to", "NULL").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("game_pk", gameKey),
			qb.Eq("assigned_to", userID),
			qb.EqLiteral("status", "assigned"),
		).
		Returning("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build release tickets query: %w", err)
	}
	var ids []int64
	if err := tx.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("release tickets: %w", err)
	}
	slices.Sort(ids)
	return ids, nil
}
