package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type createSeatRequest struct {
	Section string  `json:"section" validate:"required,max=32"`
	Row     string  `json:"row" validate:"required,max=32"`
	Seat    string  `json:"seat" validate:"required,max=32"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type createSeatBatchRequest struct {
	Section string  `json:"section" validate:"required,max=32"`
	Row     string  `json:"row" validate:"required,max=32"`
	Start   *int    `json:"start" validate:"required,min=0"`
	End     *int    `json:"end" validate:"required,min=0"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type updateSeatGroupRequest struct {
	Section string  `json:"section" validate:"required"`
	Row     string  `json:"row" validate:"required"`
	Notes   *string `json:"notes" validate:"omitempty,max=500"`
}

type seatBatchDTO struct {
	Seats            []seatDTO `json:"seats"`
	TicketsGenerated int       `json:"tickets_generated"`
}

func (h *Handler) ListSeats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeats")
	defer span.End()

	seats, err := h.seatService.ListSeats(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(seats, seatToDTO)))
}

func (h *Handler) CreateSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeat")
	defer span.End()

	var req createSeatRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.seatService.RegisterSeat(ctx, usecase.RegisterSeatInput{
		Section: req.Section,
		Row:     req.Row,
		Label:   req.Seat,
		Notes:   req.Notes,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, seatToDTO(created))
}

func (h *Handler) CreateSeatBatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSeatBatch")
	defer span.End()

	var req createSeatBatchRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.seatService.RegisterSeats(ctx, usecase.RegisterSeatsInput{
		Section: req.Section,
		Row:     req.Row,
		Start:   *req.Start,
		End:     *req.End,
		Notes:   req.Notes,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "register seats failed", "section", req.Section, "row", req.Row, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, seatBatchDTO{
		Seats:            mapSlice(result.Seats, seatToDTO),
		TicketsGenerated: result.TicketsGenerated,
	})
}

func (h *Handler) UpdateSeatGroupNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateSeatGroupNotes")
	defer span.End()

	var req updateSeatGroupRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	seats, err := h.seatService.UpdateGroupNotes(ctx, req.Section, req.Row, req.Notes)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(seats, seatToDTO)))
}

func (h *Handler) DeleteSeat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteSeat")
	defer span.End()

	seatID, err := pathID(r, "seatID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.seatService.DeleteSeat(ctx, seatID); err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]int64{"deleted_seat_id": seatID})
}
