package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/request"
)

type requestTableModel struct {
	ID             int64          `db:"id"`
	UserID         int64          `db:"user_id"`
	GameKey        int64          `db:"game_pk"`
	SeatsRequested int            `db:"seats_requested"`
	SeatsApproved  int            `db:"seats_approved"`
	Status         string         `db:"status"`
	Notes          sql.NullString `db:"notes"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

type requestInsertModel struct {
	UserID         int64          `db:"user_id"`
	GameKey        int64          `db:"game_pk"`
	SeatsRequested int            `db:"seats_requested"`
	Status         string         `db:"status"`
	Notes          sql.NullString `db:"notes"`
}

type requestDetailModel struct {
	requestTableModel
	UserName string `db:"user_name"`
}

const requestColumns = "id, user_id, game_pk, seats_requested, seats_approved, status, notes, created_at, updated_at"

const requestDetailSelect = `
SELECT r.id, r.user_id, r.game_pk, r.seats_requested, r.seats_approved, r.status, r.notes,
       r.created_at, r.updated_at, u.name AS user_name
FROM ticket_requests r
JOIN users u ON u.id = r.user_id`

func (m requestTableModel) toDomain() request.Request {
	return request.Request{
		ID:             m.ID,
		UserID:         m.UserID,
		GameKey:        m.GameKey,
		SeatsRequested: m.SeatsRequested,
		SeatsApproved:  m.SeatsApproved,
		Status:         request.Status(m.Status),
		Notes:          stringPtr(m.Notes),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func requestDetailsFromRows(rows []requestDetailModel) []request.Detail {
	out := make([]request.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, request.Detail{Request: row.requestTableModel.toDomain(), UserName: row.UserName})
	}
	return out
}
