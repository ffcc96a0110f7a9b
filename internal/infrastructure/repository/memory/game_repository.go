package memory

import (
	"context"
	"sort"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
)

type GameRepository struct {
	store *Store
}

func (r *GameRepository) Upsert(_ context.Context, games []game.Game, promotions []game.Promotion) (game.UpsertResult, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	keys := make([]int64, 0, len(games))
	for _, g := range games {
		if existing, ok := s.games[g.Key]; ok {
			g.CreatedAt = existing.CreatedAt
		} else {
			g.CreatedAt = now
		}
		g.UpdatedAt = now
		s.games[g.Key] = g
		keys = append(keys, g.Key)
	}
	for _, p := range promotions {
		s.promos[promotionKey{offer: p.OfferID, game: p.GameKey}] = p
	}

	return game.UpsertResult{
		Games:            len(games),
		Promotions:       len(promotions),
		TicketsGenerated: s.generate(keys, s.seatIDs()),
	}, nil
}

func (r *GameRepository) List(_ context.Context, filter game.Filter) ([]game.Game, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]game.Game, 0, len(s.games))
	for _, g := range s.games {
		if filter.Month != 0 && g.Month() != filter.Month {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GameDate.Equal(out[j].GameDate) {
			return out[i].GameDate.Before(out[j].GameDate)
		}
		return out[i].Key < out[j].Key
	})
	return out, nil
}

func (r *GameRepository) Get(_ context.Context, key int64) (game.Game, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.games[key]
	return g, ok, nil
}

func (r *GameRepository) ListPromotions(_ context.Context, key int64) ([]game.Promotion, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]game.Promotion, 0)
	for k, p := range s.promos {
		if k.game == key {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].OfferID < out[j].OfferID
	})
	return out, nil
}
