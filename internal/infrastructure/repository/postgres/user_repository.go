package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

// provisionLockKey serializes first-user detection across connections.
const provisionLockKey = 0x5eed_7c1c

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Provision(ctx context.Context, p user.Principal) (user.User, bool, error) {
	var (
		out     user.User
		created bool
	)
	err := inTx(ctx, r.db, "provision user", func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, provisionLockKey); err != nil {
			return fmt.Errorf("acquire provision lock: %w", err)
		}

		query, args, err := qb.Update("users").
			Set("email", p.Email).
			Set("name", p.Name).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("subject", p.Subject)).
			Returning(userColumns).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build refresh user query: %w", err)
		}
		var row userTableModel
		err = tx.GetContext(ctx, &row, query, args...)
		switch {
		case err == nil:
			out = row.toDomain()
			return nil
		case !isNotFound(err):
			return fmt.Errorf("refresh user: %w", err)
		}

		var existing int
		if err := tx.GetContext(ctx, &existing, `SELECT COUNT(1) FROM users`); err != nil {
			return fmt.Errorf("count users: %w", err)
		}
		role := user.RoleMember
		if existing == 0 {
			role = user.RoleAdmin
		}

		query, args, err = qb.InsertModel("users", userInsertModel{
			Subject: p.Subject,
			Email:   p.Email,
			Name:    p.Name,
			Role:    string(role),
		}, "RETURNING "+userColumns)
		if err != nil {
			return fmt.Errorf("build insert user query: %w", err)
		}
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return fmt.Errorf("insert user: %w", err)
		}
		out, created = row.toDomain(), true
		return nil
	})
	if err != nil {
		return user.User{}, false, err
	}
	return out, created, nil
}

func (r *UserRepository) GetBySubject(ctx context.Context, subject string) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("subject", subject))
}

func (r *UserRepository) Get(ctx context.Context, id int64) (user.User, bool, error) {
	return r.getOne(ctx, qb.Eq("id", id))
}

func (r *UserRepository) getOne(ctx context.Context, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select(userColumns).From("users").Where(cond).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}
	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select(userColumns).From("users").OrderBy("id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select users query: %w", err)
	}
	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
