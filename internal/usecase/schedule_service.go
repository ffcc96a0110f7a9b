package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

// ScheduleProvider fetches one team's regular season schedule.
type ScheduleProvider interface {
	FetchSeason(ctx context.Context, teamID int64, season int) (ScheduleBatch, error)
}

type ScheduleBatch struct {
	Games      []game.Game
	Promotions []game.Promotion
}

type ScheduleConfig struct {
	TrackedTeamID int64
	SyncWorkers   int
}

type SeasonSyncResult struct {
	Season int
	game.UpsertResult
}

type ScheduleSyncResult struct {
	Seasons []SeasonSyncResult
}

// Totals sums the per season counts.
func (r ScheduleSyncResult) Totals() game.UpsertResult {
	var out game.UpsertResult
	for _, s := range r.Seasons {
		out.Games += s.Games
		out.Promotions += s.Promotions
		out.TicketsGenerated += s.TicketsGenerated
	}
	return out
}

type ScheduleService struct {
	provider ScheduleProvider
	gameRepo game.Repository
	cfg      ScheduleConfig
	logger   *logging.Logger
}

func NewScheduleService(provider ScheduleProvider, gameRepo game.Repository, cfg ScheduleConfig, logger *logging.Logger) *ScheduleService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.SyncWorkers < 1 {
		cfg.SyncWorkers = 1
	}
	return &ScheduleService{provider: provider, gameRepo: gameRepo, cfg: cfg, logger: logger}
}

// Ingest upserts a parsed batch and backfills tickets for its home games.
func (s *ScheduleService) Ingest(ctx context.Context, games []game.Game, promotions []game.Promotion) (result game.UpsertResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.Ingest", attribute.Int("game.count", len(games)))
	defer func() { endSpan(span, err) }()

	keys := make(map[int64]struct{}, len(games))
	for i, g := range games {
		if g.Key <= 0 {
			return game.UpsertResult{}, fmt.Errorf("%w: game %d has no game_pk", ErrInvalidInput, i)
		}
		keys[g.Key] = struct{}{}
	}
	for _, p := range promotions {
		if _, ok := keys[p.GameKey]; !ok {
			return game.UpsertResult{}, fmt.Errorf("%w: promotion %d references game_pk %d outside the batch", ErrInvalidInput, p.OfferID, p.GameKey)
		}
	}
	if len(games) == 0 {
		return game.UpsertResult{}, nil
	}

	result, err = s.gameRepo.Upsert(ctx, games, promotions)
	if err != nil {
		return game.UpsertResult{}, storeError("upsert schedule", err)
	}
	return result, nil
}

// SyncSeasons downloads every season concurrently, then ingests them one
// season per transaction. A failed download aborts before anything is written.
func (s *ScheduleService) SyncSeasons(ctx context.Context, seasons []int) (result ScheduleSyncResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScheduleService.SyncSeasons")
	defer func() { endSpan(span, err) }()

	if s.provider == nil {
		return ScheduleSyncResult{}, fmt.Errorf("%w: schedule provider is not configured", ErrDependencyUnavailable)
	}
	seasons = slices.Clone(seasons)
	slices.Sort(seasons)
	seasons = slices.Compact(seasons)
	if len(seasons) == 0 {
		return ScheduleSyncResult{}, fmt.Errorf("%w: at least one season is required", ErrInvalidInput)
	}
	for _, season := range seasons {
		if season < 1900 || season > 2200 {
			return ScheduleSyncResult{}, fmt.Errorf("%w: season %d out of range", ErrInvalidInput, season)
		}
	}

	batches, err := s.fetchAll(ctx, seasons)
	if err != nil {
		return ScheduleSyncResult{}, err
	}

	for i, season := range seasons {
		counts, err := s.Ingest(ctx, batches[i].Games, batches[i].Promotions)
		if err != nil {
			return result, fmt.Errorf("ingest season %d: %w", season, err)
		}
		result.Seasons = append(result.Seasons, SeasonSyncResult{Season: season, UpsertResult: counts})
		s.logger.InfoContext(ctx, "schedule season synced",
			"season", season,
			"games", counts.Games,
			"promotions", counts.Promotions,
			"tickets_generated", counts.TicketsGenerated,
		)
	}
	return result, nil
}

func (s *ScheduleService) fetchAll(ctx context.Context, seasons []int) ([]ScheduleBatch, error) {
	batches := make([]ScheduleBatch, len(seasons))
	errs := make([]error, len(seasons))

	pool, err := ants.NewPool(min(s.cfg.SyncWorkers, len(seasons)))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, season := range seasons {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			batches[i], errs[i] = s.provider.FetchSeason(ctx, s.cfg.TrackedTeamID, season)
		}); err != nil {
			workers.Done()
			errs[i] = fmt.Errorf("submit season %d: %w", season, err)
		}
	}
	workers.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("%w: fetch season %d: %w", ErrDependencyUnavailable, seasons[i], err)
		}
	}
	return batches, nil
}

func (s *ScheduleService) ListGames(ctx context.Context, month int) ([]game.Game, error) {
	filter := game.Filter{Month: month}
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		return nil, storeError("list games", err)
	}
	return games, nil
}

func (s *ScheduleService) GetGame(ctx context.Context, key int64) (game.Game, error) {
	return requireGame(ctx, s.gameRepo, key)
}

func (s *ScheduleService) ListPromotions(ctx context.Context, key int64) ([]game.Promotion, error) {
	if _, err := requireGame(ctx, s.gameRepo, key); err != nil {
		return nil, err
	}
	promotions, err := s.gameRepo.ListPromotions(ctx, key)
	if err != nil {
		return nil, storeError("list promotions", err)
	}
	return promotions, nil
}
