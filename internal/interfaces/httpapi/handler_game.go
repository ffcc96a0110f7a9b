package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/season-tickets/internal/domain/game"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	month := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("month")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: month must be an integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		month = parsed
	}

	games, err := h.scheduleService.ListGames(ctx, month)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(games, func(g game.Game) gameDTO {
		return gameToDTO(g, h.trackedTeamID)
	})))
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetGame")
	defer span.End()

	gameKey, err := pathID(r, "gamePK")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	g, err := h.scheduleService.GetGame(ctx, gameKey)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, gameToDTO(g, h.trackedTeamID))
}

func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPromotions")
	defer span.End()

	gameKey, err := pathID(r, "gamePK")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	promotions, err := h.scheduleService.ListPromotions(ctx, gameKey)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(promotions, promotionToDTO)))
}
