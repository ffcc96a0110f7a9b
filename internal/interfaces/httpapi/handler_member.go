package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type createRequestsRequest struct {
	Requests []createRequestEntry `json:"requests" validate:"required,min=1,max=50,dive"`
}

type createRequestEntry struct {
	GamePK         int64   `json:"game_pk" validate:"required,gt=0"`
	// Seat bounds are checked per entry so one bad count fails only its row.
	SeatsRequested int     `json:"seats_requested"`
	Notes          *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type updateRequestRequest struct {
	SeatsRequested int `json:"seats_requested" validate:"required,min=1,max=4"`
}

type requestFailureDTO struct {
	Index  int    `json:"index"`
	GamePK int64  `json:"game_pk"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

type createRequestsDTO struct {
	Created []requestDTO        `json:"created"`
	Failed  []requestFailureDTO `json:"failed"`
}

type withdrawDTO struct {
	Request         requestDTO `json:"request"`
	ReleasedTickets []int64    `json:"released_ticket_ids"`
}

type releaseDTO struct {
	ReleasedTickets    []int64 `json:"released_ticket_ids"`
	WithdrawnRequestID *int64  `json:"withdrawn_request_id,omitempty"`
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userToDTO(u))
}

func (h *Handler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyRequests")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.requestService.ListForUser(ctx, u.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "list my requests failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(items, requestToDTO)))
}

func (h *Handler) CreateMyRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMyRequests")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createRequestsRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries := make([]usecase.CreateRequestInput, 0, len(req.Requests))
	for _, entry := range req.Requests {
		entries = append(entries, usecase.CreateRequestInput{
			GameKey:        entry.GamePK,
			SeatsRequested: entry.SeatsRequested,
			Notes:          entry.Notes,
		})
	}

	result, err := h.requestService.CreateRequests(ctx, u.ID, entries)
	if err != nil {
		h.logger.WarnContext(ctx, "create requests failed", "user_id", u.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := createRequestsDTO{
		Created: mapSlice(result.Created, requestToDTO),
		Failed:  make([]requestFailureDTO, 0, len(result.Failed)),
	}
	for _, failure := range result.Failed {
		out.Failed = append(out.Failed, requestFailureDTO{
			Index:  failure.Index,
			GamePK: failure.GameKey,
			Reason: mapError(ctx, failure.Err).Reason,
			Error:  failure.Err.Error(),
		})
	}

	status := http.StatusCreated
	if len(out.Created) == 0 {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, out)
}

func (h *Handler) UpdateMyRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyRequest")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req updateRequestRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	updated, err := h.requestService.UpdateRequest(ctx, u.ID, requestID, req.SeatsRequested)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, requestToDTO(updated))
}

func (h *Handler) WithdrawMyRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WithdrawMyRequest")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.requestService.WithdrawRequest(ctx, u.ID, requestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, withdrawToDTO(result))
}

func withdrawToDTO(result request.WithdrawResult) withdrawDTO {
	released := result.Released
	if released == nil {
		released = []int64{}
	}
	return withdrawDTO{Request: requestToDTO(result.Request), ReleasedTickets: released}
}

func (h *Handler) ListMyGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyGames")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	tickets, err := h.inventoryService.TicketsForUser(ctx, u.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(tickets, ticketDetailToDTO)))
}

func (h *Handler) ReleaseMyGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReleaseMyGame")
	defer span.End()

	u, err := currentUser(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	gameKey, err := pathID(r, "gamePK")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.allocationService.ReleaseForGame(ctx, u.ID, gameKey)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	released := result.Released
	if released == nil {
		released = []int64{}
	}
	writeSuccess(ctx, w, http.StatusOK, releaseDTO{ReleasedTickets: released, WithdrawnRequestID: result.WithdrawnRequestID})
}
