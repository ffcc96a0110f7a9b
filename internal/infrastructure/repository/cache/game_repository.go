package cache

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	basecache "github.com/riskibarqy/season-tickets/internal/platform/cache"
)

// GameRepository fronts a game.Repository with read-through caches. Every
// successful Upsert drops all cached reads.
type GameRepository struct {
	next       game.Repository
	lists      *basecache.Store[[]game.Game]
	games      *basecache.Store[cachedGame]
	promotions *basecache.Store[[]game.Promotion]
}

var _ game.Repository = (*GameRepository)(nil)

type cachedGame struct {
	value  game.Game
	exists bool
}

func NewGameRepository(next game.Repository, ttl time.Duration) *GameRepository {
	return &GameRepository{
		next:       next,
		lists:      basecache.NewStore[[]game.Game](ttl),
		games:      basecache.NewStore[cachedGame](ttl),
		promotions: basecache.NewStore[[]game.Promotion](ttl),
	}
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game, promotions []game.Promotion) (game.UpsertResult, error) {
	result, err := r.next.Upsert(ctx, games, promotions)
	if err != nil {
		return result, err
	}
	r.invalidate()
	return result, nil
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	key := "month:" + strconv.Itoa(filter.Month)
	items, err := r.lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]game.Game, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *GameRepository) Get(ctx context.Context, key int64) (game.Game, bool, error) {
	cached, err := r.games.GetOrLoad(ctx, strconv.FormatInt(key, 10), func(ctx context.Context) (cachedGame, error) {
		item, exists, err := r.next.Get(ctx, key)
		if err != nil {
			return cachedGame{}, err
		}
		return cachedGame{value: item, exists: exists}, nil
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.value, cached.exists, nil
}

func (r *GameRepository) ListPromotions(ctx context.Context, key int64) ([]game.Promotion, error) {
	items, err := r.promotions.GetOrLoad(ctx, strconv.FormatInt(key, 10), func(ctx context.Context) ([]game.Promotion, error) {
		return r.next.ListPromotions(ctx, key)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *GameRepository) invalidate() {
	r.lists.InvalidatePrefix("")
	r.games.InvalidatePrefix("")
	r.promotions.InvalidatePrefix("")
}
