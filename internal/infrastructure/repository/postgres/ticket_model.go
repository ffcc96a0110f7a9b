package postgres

import (
	"database/sql"
	"sort"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

type ticketTableModel struct {
	ID         int64          `db:"id"`
	GameKey    int64          `db:"game_pk"`
	SeatID     int64          `db:"seat_id"`
	Status     string         `db:"status"`
	Notes      sql.NullString `db:"notes"`
	AssignedTo sql.NullInt64  `db:"assigned_to"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type ticketDetailModel struct {
	ticketTableModel
	Section      string         `db:"section"`
	Row          string         `db:"row_label"`
	SeatLabel    string         `db:"seat_label"`
	AssigneeName sql.NullString `db:"assignee_name"`
	OfficialDate string         `db:"official_date"`
	Opponent     string         `db:"opponent"`
	GameDate     time.Time      `db:"game_date"`
}

const ticketColumns = "id, game_pk, seat_id, status, notes, assigned_to, created_at, updated_at"

// ticketDetailSelect takes the tracked team id as $1 to name the opponent.
const ticketDetailSelect = `
SELECT t.id, t.game_pk, t.seat_id, t.status, t.notes, t.assigned_to, t.created_at, t.updated_at,
       s.section, s.row_label, s.seat_label,
       u.name AS assignee_name,
       g.official_date, g.game_date,
       CASE WHEN g.home_team_id = $1 THEN g.away_team_name ELSE g.home_team_name END AS opponent
FROM game_tickets t
JOIN seats s ON s.id = t.seat_id
JOIN games g ON g.game_pk = t.game_pk
LEFT JOIN users u ON u.id = t.assigned_to`

func (m ticketTableModel) toDomain() ticket.Ticket {
	return ticket.Ticket{
		ID:         m.ID,
		GameKey:    m.GameKey,
		SeatID:     m.SeatID,
		Status:     ticket.Status(m.Status),
		Notes:      stringPtr(m.Notes),
		AssignedTo: int64Ptr(m.AssignedTo),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// detailsFromRows orders by game date, then by natural seat order.
func detailsFromRows(rows []ticketDetailModel) []ticket.Detail {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.GameKey != b.GameKey {
			if !a.GameDate.Equal(b.GameDate) {
				return a.GameDate.Before(b.GameDate)
			}
			return a.GameKey < b.GameKey
		}
		return seat.Less(
			seat.Seat{Section: a.Section, Row: a.Row, Label: a.SeatLabel},
			seat.Seat{Section: b.Section, Row: b.Row, Label: b.SeatLabel},
		)
	})

	out := make([]ticket.Detail, 0, len(rows))
	for _, row := range rows {
		out = append(out, ticket.Detail{
			Ticket:       row.ticketTableModel.toDomain(),
			Section:      row.Section,
			Row:          row.Row,
			SeatLabel:    row.SeatLabel,
			AssigneeName: stringPtr(row.AssigneeName),
			OfficialDate: row.OfficialDate,
			Opponent:     row.Opponent,
		})
	}
	return out
}
