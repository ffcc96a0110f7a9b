package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
)

func TestSpanWorthRecording(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"httpapi.Handler.Allocate", true},
		{"httpapi.Handler.ReleaseMyGame", true},
		{"httpapi.RequireAuth", true},
		{"httpapi.RequireUser", true},
		{"httpapi.RequireAdmin", false},
		{"httpapi.RateLimit", false},
		{"httpapi.writeError", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := spanWorthRecording(tt.name); got != tt.want {
			t.Fatalf("spanWorthRecording(%q)=%v want=%v", tt.name, got, tt.want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.Allocate", attribute.Int64("game.pk", 1001))
	defer span.End()

	if got != ctx {
		t.Fatalf("expected the caller's context back when no request span exists")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected a no-op span, got %v", span.SpanContext())
	}
}
