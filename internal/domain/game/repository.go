package game

import "context"

// Repository stores ingested schedule data.
type Repository interface {
	// Upsert writes games and promotions and backfills tickets for every home
	// game in one transaction. Existing tickets are never touched.
	Upsert(ctx context.Context, games []Game, promotions []Promotion) (UpsertResult, error)
	List(ctx context.Context, filter Filter) ([]Game, error)
	Get(ctx context.Context, key int64) (Game, bool, error)
	ListPromotions(ctx context.Context, key int64) ([]Promotion, error)
}
