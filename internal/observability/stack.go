package observability

import (
	"context"
	"net/http"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/season-tickets/internal/config"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

// Stack owns the process-wide telemetry started by Start.
type Stack struct {
	logger        *logging.Logger
	stopTracing   func(context.Context) error
	stopProfiling func() error
	pprof         *http.Server
}

// Start brings up tracing, continuous profiling and the pprof listener
// according to cfg. A failure tears down whatever already started.
func Start(cfg config.Config, logger *logging.Logger) (*Stack, error) {
	if logger == nil {
		logger = logging.Default()
	}
	stack := &Stack{
		logger:        logger,
		stopTracing:   noopShutdown,
		stopProfiling: func() error { return nil },
	}

	stopTracing, err := InitUptrace(cfg, logger)
	if err != nil {
		return nil, crerr.Wrap(err, "init uptrace")
	}
	stack.stopTracing = stopTracing

	stopProfiling, err := InitPyroscope(cfg, logger)
	if err != nil {
		_ = stack.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	stack.stopProfiling = stopProfiling

	stack.pprof = StartPprofServer(cfg, logger)
	return stack, nil
}

// Shutdown stops every component and reports all failures together.
func (s *Stack) Shutdown(ctx context.Context) error {
	var errs error
	if err := stopPprofServer(ctx, s.pprof); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pprof"))
	}
	if err := s.stopProfiling(); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop pyroscope"))
	}
	if err := s.stopTracing(ctx); err != nil {
		errs = crerr.CombineErrors(errs, crerr.Wrap(err, "stop uptrace"))
	}
	if errs == nil {
		s.logger.Info("observability stopped")
	}
	return errs
}
