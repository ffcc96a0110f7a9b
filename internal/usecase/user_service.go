package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

type UserService struct {
	userRepo user.Repository
	logger   *logging.Logger
}

func NewUserService(userRepo user.Repository, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{userRepo: userRepo, logger: logger}
}

// Provision resolves the caller to a user row, creating it on first sight.
// The very first user becomes admin.
func (s *UserService) Provision(ctx context.Context, principal user.Principal) (user.User, error) {
	principal = principal.Normalize()
	if principal.Subject == "" {
		return user.User{}, fmt.Errorf("%w: token has no subject", ErrUnauthorized)
	}

	u, created, err := s.userRepo.Provision(ctx, principal)
	if err != nil {
		return user.User{}, storeError("provision user", err)
	}
	if created {
		s.logger.InfoContext(ctx, "user provisioned", "user_id", u.ID, "role", string(u.Role))
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (user.User, error) {
	u, found, err := s.userRepo.Get(ctx, id)
	if err != nil {
		return user.User{}, storeError("get user", err)
	}
	if !found {
		return user.User{}, fmt.Errorf("%w: user=%d", ErrNotFound, id)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storeError("list users", err)
	}
	return users, nil
}
