package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type UserRepository struct {
	store *Store
}

func (r *UserRepository) Provision(_ context.Context, p user.Principal) (user.User, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if id, ok := s.userIdx[p.Subject]; ok {
		u := s.users[id]
		u.Email = p.Email
		u.Name = p.Name
		u.UpdatedAt = now
		s.users[id] = u
		return u, false, nil
	}

	role := user.RoleMember
	if len(s.users) == 0 {
		role = user.RoleAdmin
	}
	u := user.User{
		ID:        s.nextID(),
		Subject:   p.Subject,
		Email:     p.Email,
		Name:      p.Name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	s.userIdx[u.Subject] = u.ID
	return u, true, nil
}

func (r *UserRepository) GetBySubject(_ context.Context, subject string) (user.User, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.userIdx[subject]
	if !ok {
		return user.User{}, false, nil
	}
	return s.users[id], true, nil
}

func (r *UserRepository) Get(_ context.Context, id int64) (user.User, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	return u, ok, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]user.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
