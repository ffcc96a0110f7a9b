package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

type RouterConfig struct {
	ServiceName        string
	CORSAllowedOrigins []string
	Verifier           TokenVerifier
	Users              UserProvisioner
	// RateLimiter may be nil.
	RateLimiter RateLimiter
}

func NewRouter(handler *Handler, cfg RouterConfig, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "season-tickets"
	}

	guard := routeGuard{verifier: cfg.Verifier, users: cfg.Users, limiter: cfg.RateLimiter, logger: logger}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerPublicGameRoutes(mux, handler)
	registerMemberRoutes(mux, handler, guard)
	registerAdminRoutes(mux, handler, guard)

	return RequestTracing(cfg.ServiceName, RequestLogging(logger, CORS(cfg.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
