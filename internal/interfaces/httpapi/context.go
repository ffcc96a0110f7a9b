package httpapi

import (
	"context"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
)

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	userContextKey      contextKey = "auth_user"
)

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(user.Principal)
	return p, ok
}

func withUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, userContextKey, u)
}

func userFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(userContextKey).(user.User)
	return u, ok
}
