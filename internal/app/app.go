package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/season-tickets/external/mlbstats"
	"github.com/riskibarqy/season-tickets/internal/config"
	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/domain/seat"
	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/account/jwks"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/events"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/ratelimit"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/season-tickets/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/season-tickets/internal/interfaces/httpapi"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

const scheduleRetryBackoff = 250 * time.Millisecond

// Services are the use cases shared by the HTTP API and the operator CLI.
type Services struct {
	Seats      *usecase.SeatService
	Inventory  *usecase.InventoryService
	Requests   *usecase.RequestService
	Allocation *usecase.AllocationService
	Schedule   *usecase.ScheduleService
	Users      *usecase.UserService
}

// App holds the wired process. Close releases every connection it opened.
type App struct {
	Services

	cfg     config.Config
	logger  *logging.Logger
	limiter httpapi.RateLimiter
	closers []func() error
}

type repositories struct {
	seats       seat.Repository
	games       game.Repository
	tickets     ticket.Repository
	requests    request.Repository
	allocations allocation.Repository
	users       user.Repository
}

// New opens the configured store and builds every service. With
// DB_URL=memory the process runs on the in-process store.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	repos, err := a.openRepositories(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	if cfg.GameCacheTTL > 0 {
		repos.games = cache.NewGameRepository(repos.games, cfg.GameCacheTTL)
	}

	publisher := a.newPublisher()

	var provider usecase.ScheduleProvider
	if cfg.ScheduleBaseURL != "" {
		provider = mlbstats.NewClient(mlbstats.ClientConfig{
			HTTPClient:     &http.Client{Timeout: cfg.ScheduleTimeout},
			BaseURL:        cfg.ScheduleBaseURL,
			Timeout:        cfg.ScheduleTimeout,
			MaxRetries:     cfg.ScheduleMaxRetries,
			Backoff:        scheduleRetryBackoff,
			Logger:         logger,
			CircuitBreaker: cfg.ScheduleCircuit,
		})
	}

	a.Services = Services{
		Seats:     usecase.NewSeatService(repos.seats, logger),
		Inventory: usecase.NewInventoryService(repos.tickets, repos.games, logger),
		Requests:  usecase.NewRequestService(repos.requests, repos.games, cfg.TrackedTeamID, publisher, logger),
		Allocation: usecase.NewAllocationService(
			repos.allocations,
			repos.requests,
			repos.tickets,
			repos.games,
			publisher,
			logger,
		),
		Schedule: usecase.NewScheduleService(provider, repos.games, usecase.ScheduleConfig{
			TrackedTeamID: cfg.TrackedTeamID,
			SyncWorkers:   cfg.ScheduleSyncWorkers,
		}, logger),
		Users: usecase.NewUserService(repos.users, logger),
	}

	if cfg.RateLimitEnabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		a.closers = append(a.closers, client.Close)
		a.limiter = ratelimit.NewRedisLimiter(client, ratelimit.Config{
			Prefix:   cfg.ServiceName,
			Capacity: cfg.RateLimitCapacity,
			Window:   cfg.RateLimitWindow,
		})
	}

	return a, nil
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	teamID := a.cfg.TrackedTeamID

	if isMemoryStore(a.cfg.DBURL) {
		store := memory.NewStore(teamID)
		if a.cfg.DBSeedDemo {
			store.SeedDemo(time.Now())
		}
		a.logger.Info("using in-memory store", "seeded", a.cfg.DBSeedDemo)
		return repositories{
			seats:       store.Seats(),
			games:       store.Games(),
			tickets:     store.Tickets(),
			requests:    store.Requests(),
			allocations: store.Allocations(),
			users:       store.Users(),
		}, nil
	}

	db, err := OpenDB(ctx, a.cfg)
	if err != nil {
		return repositories{}, err
	}
	a.closers = append(a.closers, db.Close)
	a.logger.Info("connected to postgres", "url", redactDBURL(a.cfg.DBURL))

	if a.cfg.DBSeedDemo {
		if err := postgres.BootstrapSeed(ctx, db, teamID, time.Now()); err != nil {
			return repositories{}, crerr.Wrap(err, "bootstrap seed")
		}
	}

	return repositories{
		seats:       postgres.NewSeatRepository(db, teamID),
		games:       postgres.NewGameRepository(db, teamID),
		tickets:     postgres.NewTicketRepository(db, teamID),
		requests:    postgres.NewRequestRepository(db),
		allocations: postgres.NewAllocationRepository(db, teamID),
		users:       postgres.NewUserRepository(db),
	}, nil
}

// newPublisher returns nil when events are disabled so the services fall
// back to their no-op publisher.
func (a *App) newPublisher() allocation.Publisher {
	if !a.cfg.EventsEnabled {
		return nil
	}
	publisher := events.NewAMQPPublisher(events.AMQPPublisherConfig{
		URL:            a.cfg.EventsAMQPURL,
		Queue:          a.cfg.EventsQueue,
		PublishTimeout: 5 * time.Second,
	}, a.logger)
	a.closers = append(a.closers, publisher.Close)
	return publisher
}

// OpenDB opens an instrumented PostgreSQL pool and verifies connectivity.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	opts := []otelsql.Option{
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	}
	if name := dbNameFromURL(cfg.DBURL); name != "" {
		opts = append(opts, otelsql.WithDBName(name))
	}

	db, err := otelsqlx.Open("postgres", cfg.DBURL, opts...)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrap(err, "ping postgres")
	}
	return db, nil
}

// HTTPServer builds the public API server.
func (a *App) HTTPServer() (*http.Server, error) {
	if a.cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	verifier := jwks.NewVerifier(jwks.Config{
		HTTPClient:     &http.Client{Timeout: 5 * time.Second},
		JWKSURL:        a.cfg.AuthJWKSURL,
		Issuer:         a.cfg.AuthIssuer,
		Audience:       a.cfg.AuthAudience,
		ClaimNamespace: a.cfg.AuthClaimNamespace,
		KeyTTL:         a.cfg.AuthJWKSTTL,
		Logger:         a.logger,
	})

	handler := httpapi.NewHandler(httpapi.HandlerDeps{
		Seats:         a.Seats,
		Inventory:     a.Inventory,
		Requests:      a.Requests,
		Allocation:    a.Allocation,
		Schedule:      a.Schedule,
		Users:         a.Users,
		TrackedTeamID: a.cfg.TrackedTeamID,
	}, a.logger)

	router := httpapi.NewRouter(handler, httpapi.RouterConfig{
		ServiceName:        a.cfg.ServiceName,
		CORSAllowedOrigins: a.cfg.CORSAllowedOrigins,
		Verifier:           verifier,
		Users:              a.Users,
		RateLimiter:        a.limiter,
	}, a.logger)

	return &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       a.cfg.ReadTimeout,
		ReadHeaderTimeout: a.cfg.ReadTimeout,
		WriteTimeout:      a.cfg.WriteTimeout,
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = crerr.CombineErrors(errs, err)
		}
	}
	a.closers = nil
	return errs
}
