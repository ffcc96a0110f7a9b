package user

import (
	"strings"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is a provisioned member keyed by the identity provider's subject.
type User struct {
	ID        int64
	Subject   string
	Email     string
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Principal is what a verified token says about the caller.
type Principal struct {
	Subject string
	Email   string
	Name    string
}

// Normalize fills the profile fields the provider left empty.
func (p Principal) Normalize() Principal {
	p.Subject = strings.TrimSpace(p.Subject)
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	if p.Email == "" {
		p.Email = "unknown@example.com"
	}
	if p.Name == "" {
		p.Name = "Unknown"
	}
	return p
}
