package observability

import (
	"context"
	"strconv"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/season-tickets/internal/config"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

// InitUptrace installs the global OpenTelemetry tracer and meter providers.
// Spans from otelhttp, otelsql and the service tracers are exported only
// while it is enabled.
func InitUptrace(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.UptraceEnabled || cfg.UptraceDSN == "" {
		logger.Info("uptrace disabled")
		return noopShutdown, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("tickets.team_id", strconv.FormatInt(cfg.TrackedTeamID, 10)),
		),
	)

	logger.Info("uptrace enabled",
		"service_name", cfg.ServiceName,
		"service_version", cfg.ServiceVersion,
		"environment", cfg.AppEnv,
	)
	return uptrace.Shutdown, nil
}

func noopShutdown(context.Context) error { return nil }
