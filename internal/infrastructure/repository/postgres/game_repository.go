package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/season-tickets/internal/domain/game"
	qb "github.com/riskibarqy/season-tickets/internal/platform/querybuilder"
)

// upsertChunk keeps multi-row inserts well under the bind parameter limit.
const upsertChunk = 200

type GameRepository struct {
	db            *sqlx.DB
	trackedTeamID int64
}

func NewGameRepository(db *sqlx.DB, trackedTeamID int64) *GameRepository {
	return &GameRepository{db: db, trackedTeamID: trackedTeamID}
}

func (r *GameRepository) Upsert(ctx context.Context, games []game.Game, promotions []game.Promotion) (game.UpsertResult, error) {
	if len(games) == 0 && len(promotions) == 0 {
		return game.UpsertResult{}, nil
	}

	games, promotions = dedupeSchedule(games, promotions)

	var result game.UpsertResult
	err := inTx(ctx, r.db, "upsert schedule", func(tx *sqlx.Tx) error {
		if err := lockTicketGeneration(ctx, tx); err != nil {
			return err
		}
		keys := make([]int64, 0, len(games))
		for start := 0; start < len(games); start += upsertChunk {
			chunk := games[start:min(start+upsertChunk, len(games))]
			models := make([]any, 0, len(chunk))
			for _, g := range chunk {
				models = append(models, gameInsertFromDomain(g))
				keys = append(keys, g.Key)
			}
			query, args, err := qb.InsertModels("games", models, upsertGameSuffix)
			if err != nil {
				return fmt.Errorf("build upsert games query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert games: %w", err)
			}
		}

		for start := 0; start < len(promotions); start += upsertChunk {
			chunk := promotions[start:min(start+upsertChunk, len(promotions))]
			models := make([]any, 0, len(chunk))
			for _, p := range chunk {
				models = append(models, promotionFromDomain(p))
			}
			query, args, err := qb.InsertModels("promotions", models, upsertPromotionSuffix)
			if err != nil {
				return fmt.Errorf("build upsert promotions query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert promotions: %w", err)
			}
		}

		generated, err := generateTickets(ctx, tx, r.trackedTeamID, keys, nil)
		if err != nil {
			return err
		}
		result = game.UpsertResult{Games: len(games), Promotions: len(promotions), TicketsGenerated: generated}
		return nil
	})
	if err != nil {
		return game.UpsertResult{}, err
	}
	return result, nil
}

func (r *GameRepository) List(ctx context.Context, filter game.Filter) ([]game.Game, error) {
	builder := qb.Select(gameColumns).From("games").OrderBy("game_date", "game_pk")
	if filter.Month != 0 {
		builder = builder.Where(qb.Expr("substring(official_date from 6 for 2) = ?", fmt.Sprintf("%02d", filter.Month)))
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select games query: %w", err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select games: %w", err)
	}
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *GameRepository) Get(ctx context.Context, key int64) (game.Game, bool, error) {
	query, args, err := qb.Select(gameColumns).From("games").Where(qb.Eq("game_pk", key)).ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}
	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *GameRepository) ListPromotions(ctx context.Context, key int64) ([]game.Promotion, error) {
	query, args, err := qb.Select(qb.Columns(promotionTableModel{})...).
		From("promotions").
		Where(qb.Eq("game_pk", key)).
		OrderBy("display_order", "offer_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select promotions query: %w", err)
	}
	var rows []promotionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select promotions: %w", err)
	}
	out := make([]game.Promotion, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// dedupeSchedule keeps the last copy of each key. A single INSERT .. ON
// CONFLICT statement cannot touch the same row twice.
func dedupeSchedule(games []game.Game, promotions []game.Promotion) ([]game.Game, []game.Promotion) {
	gameIdx := make(map[int64]int, len(games))
	outGames := make([]game.Game, 0, len(games))
	for _, g := range games {
		if i, ok := gameIdx[g.Key]; ok {
			outGames[i] = g
			continue
		}
		gameIdx[g.Key] = len(outGames)
		outGames = append(outGames, g)
	}

	type promoKey struct{ offer, game int64 }
	promoIdx := make(map[promoKey]int, len(promotions))
	outPromos := make([]game.Promotion, 0, len(promotions))
	for _, p := range promotions {
		key := promoKey{p.OfferID, p.GameKey}
		if i, ok := promoIdx[key]; ok {
			outPromos[i] = p
			continue
		}
		promoIdx[key] = len(outPromos)
		outPromos = append(outPromos, p)
	}
	return outGames, outPromos
}
