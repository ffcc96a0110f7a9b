package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/ratelimit"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type stubVerifier map[string]user.Principal

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type stubLimiter struct {
	decision ratelimit.Decision
	err      error
	keys     []string
}

func (s *stubLimiter) Allow(_ context.Context, key string) (ratelimit.Decision, error) {
	s.keys = append(s.keys, key)
	return s.decision, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRequireAuth(t *testing.T) {
	verifier := stubVerifier{"good": {Subject: "auth0|1"}}
	var seen user.Principal
	handler := RequireAuth(verifier, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = principalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Basic abc", http.StatusUnauthorized},
		{"Bearer ", http.StatusUnauthorized},
		{"Bearer bad", http.StatusUnauthorized},
		{"bearer good", http.StatusNoContent},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/my/requests", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != tt.want {
			t.Fatalf("header %q: expected %d, got %d", tt.header, tt.want, rec.Code)
		}
	}
	if seen.Subject != "auth0|1" {
		t.Fatalf("expected principal in context, got %+v", seen)
	}
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(okHandler())

	for role, want := range map[user.Role]int{user.RoleAdmin: http.StatusNoContent, user.RoleMember: http.StatusForbidden} {
		req := httptest.NewRequest(http.MethodGet, "/v1/seats", nil)
		req = req.WithContext(withUser(req.Context(), user.User{ID: 1, Role: role}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != want {
			t.Fatalf("role %s: expected %d, got %d", role, want, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seats", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a user, got %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	limiter := &stubLimiter{decision: ratelimit.Decision{Allowed: false, Limit: 5, RetryAfter: 1500 * time.Millisecond}}
	handler := RateLimit(limiter, logging.NewNop(), okHandler())

	req := httptest.NewRequest(http.MethodPost, "/v1/my/requests", nil)
	req = req.WithContext(withUser(req.Context(), user.User{ID: 42}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if got := rec.Header().Get("Retry-After"); got != "2" {
		t.Fatalf("expected Retry-After=2, got %q", got)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "user:42" {
		t.Fatalf("unexpected limiter keys %v", limiter.keys)
	}

	limiter.decision = ratelimit.Decision{Allowed: true, Limit: 5, Remaining: 4}
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent || rec.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Fatalf("expected pass-through with headers, got %d %v", rec.Code, rec.Header())
	}

	limiter.err = errors.New("redis down")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("limiter failure must fail open, got %d", rec.Code)
	}
}

func TestRateLimit_NilLimiterIsPassThrough(t *testing.T) {
	handler := RateLimit(nil, logging.NewNop(), okHandler())
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/my/requests", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	if rec.Header().Get("X-RateLimit-Limit") != "" {
		t.Fatalf("no limit headers expected without a limiter")
	}
}
