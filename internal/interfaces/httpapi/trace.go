package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("season-tickets/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child of the request span for handlers and the
// identity middlewares. Response helpers and untraced routes such as
// /healthz get the no-op span.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !spanWorthRecording(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func spanWorthRecording(name string) bool {
	switch {
	case strings.HasPrefix(name, "httpapi.Handler."):
		return true
	case name == "httpapi.RequireAuth", name == "httpapi.RequireUser":
		// Token verification and auto-provisioning hit the network or the store.
		return true
	default:
		return false
	}
}
