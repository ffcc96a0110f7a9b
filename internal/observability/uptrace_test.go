package observability

import (
	"context"
	"testing"

	"github.com/riskibarqy/season-tickets/internal/config"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

func TestInitUptrace_DisabledWithoutDSN(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: true,
		ServiceName:    "season-tickets-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestStart_AllDisabled(t *testing.T) {
	stack, err := Start(config.Config{ServiceName: "season-tickets-api"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if stack.pprof != nil {
		t.Fatalf("expected no pprof server")
	}
	if err := stack.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
