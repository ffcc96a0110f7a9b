package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-tickets/internal/domain/ticket"
)

type updateTicketRequest struct {
	Status string  `json:"status" validate:"required,oneof=available assigned unavailable"`
	Notes  *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

func (h *Handler) ListGameTickets(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGameTickets")
	defer span.End()

	gameKey, err := pathID(r, "gamePK")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tickets, err := h.inventoryService.TicketsForGame(ctx, gameKey)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(tickets, ticketDetailToDTO)))
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTicket")
	defer span.End()

	ticketID, err := pathID(r, "ticketID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateTicketRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.inventoryService.UpdateStatus(ctx, ticketID, req.Status, req.Notes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ticketToDTO(updated))
}

func (h *Handler) TicketSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TicketSummary")
	defer span.End()

	summary, err := h.inventoryService.Summary(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(summary, func(s ticket.Summary) ticketSummaryDTO {
		return ticketSummaryDTO{GamePK: s.GameKey, Total: s.Total, Available: s.Available}
	})))
}
