package postgres

import (
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type userTableModel struct {
	ID        int64     `db:"id"`
	Subject   string    `db:"subject"`
	Email     string    `db:"email"`
	Name      string    `db:"name"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type userInsertModel struct {
	Subject string `db:"subject"`
	Email   string `db:"email"`
	Name    string `db:"name"`
	Role    string `db:"role"`
}

const userColumns = "id, subject, email, name, role, created_at, updated_at"

func (m userTableModel) toDomain() user.User {
	return user.User{
		ID:        m.ID,
		Subject:   m.Subject,
		Email:     m.Email,
		Name:      m.Name,
		Role:      user.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
