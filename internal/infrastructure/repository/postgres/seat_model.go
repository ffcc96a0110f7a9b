package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/seat"
)

type seatTableModel struct {
	ID        int64          `db:"id"`
	Section   string         `db:"section"`
	Row       string         `db:"row_label"`
	Label     string         `db:"seat_label"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type seatInsertModel struct {
	Section string         `db:"section"`
	Row     string         `db:"row_label"`
	Label   string         `db:"seat_label"`
	Notes   sql.NullString `db:"notes"`
}

const seatColumns = "id, section, row_label, seat_label, notes, created_at, updated_at"

func (m seatTableModel) toDomain() seat.Seat {
	return seat.Seat{
		ID:        m.ID,
		Section:   m.Section,
		Row:       m.Row,
		Label:     m.Label,
		Notes:     stringPtr(m.Notes),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func seatsFromRows(rows []seatTableModel) []seat.Seat {
	out := make([]seat.Seat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	seat.Sort(out)
	return out
}
