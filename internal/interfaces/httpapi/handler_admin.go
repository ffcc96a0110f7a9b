package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/season-tickets/internal/domain/allocation"
	"github.com/riskibarqy/season-tickets/internal/domain/request"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type syncScheduleRequest struct {
	Seasons []int `json:"seasons" validate:"required,min=1,max=5,dive,min=1900,max=2100"`
}

type allocateRequest struct {
	Assignments []assignmentRequest `json:"assignments" validate:"required,min=1,max=50,dive"`
}

type assignmentRequest struct {
	TicketID  int64  `json:"game_ticket_id" validate:"required,gt=0"`
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	RequestID *int64 `json:"request_id,omitempty" validate:"omitempty,gt=0"`
}

type seasonSyncDTO struct {
	Season           int `json:"season"`
	Games            int `json:"games"`
	Promotions       int `json:"promotions"`
	TicketsGenerated int `json:"tickets_generated"`
}

type scheduleSyncDTO struct {
	Seasons          []seasonSyncDTO `json:"seasons"`
	Games            int             `json:"games"`
	Promotions       int             `json:"promotions"`
	TicketsGenerated int             `json:"tickets_generated"`
}

type allocateDTO struct {
	Tickets  []ticketDTO   `json:"tickets"`
	Approved map[int64]int `json:"approved_by_request"`
}

type gameDetailDTO struct {
	Game     gameDTO      `json:"game"`
	Tickets  []ticketDTO  `json:"tickets"`
	Requests []requestDTO `json:"requests"`
}

type userAllocationDTO struct {
	User    userDTO     `json:"user"`
	Tickets []ticketDTO `json:"tickets"`
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	users, err := h.userService.List(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(users, userToDTO)))
}

func (h *Handler) SyncSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SyncSchedule")
	defer span.End()

	var req syncScheduleRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.scheduleService.SyncSeasons(ctx, req.Seasons)
	if err != nil {
		h.logger.WarnContext(ctx, "schedule sync failed", "seasons", req.Seasons, "error", err)
		writeError(ctx, w, err)
		return
	}

	totals := result.Totals()
	out := scheduleSyncDTO{
		Seasons:          make([]seasonSyncDTO, 0, len(result.Seasons)),
		Games:            totals.Games,
		Promotions:       totals.Promotions,
		TicketsGenerated: totals.TicketsGenerated,
	}
	for _, season := range result.Seasons {
		out.Seasons = append(out.Seasons, seasonSyncDTO{
			Season:           season.Season,
			Games:            season.Games,
			Promotions:       season.Promotions,
			TicketsGenerated: season.TicketsGenerated,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) AllocationSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllocationSummary")
	defer span.End()

	summary, err := h.allocationService.Summary(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(summary, allocationSummaryToDTO)))
}

func (h *Handler) AllocationGameDetail(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllocationGameDetail")
	defer span.End()

	gameKey, err := pathID(r, "gamePK")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	detail, err := h.allocationService.GameDetail(ctx, gameKey)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gameDetailDTO{
		Game:     gameToDTO(detail.Game, h.trackedTeamID),
		Tickets:  mapSlice(detail.Tickets, ticketDetailToDTO),
		Requests: mapSlice(detail.Requests, requestDetailToDTO),
	})
}

func (h *Handler) AllocationByUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AllocationByUser")
	defer span.End()

	userID, err := pathID(r, "userID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	u, err := h.userService.Get(ctx, userID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	tickets, err := h.inventoryService.TicketsForUser(ctx, u.ID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, userAllocationDTO{
		User:    userToDTO(u),
		Tickets: mapSlice(tickets, ticketDetailToDTO),
	})
}

func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Allocate")
	defer span.End()

	var req allocateRequest
	if err := h.decodeBody(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	assignments := make([]allocation.Assignment, 0, len(req.Assignments))
	for _, a := range req.Assignments {
		assignments = append(assignments, allocation.Assignment{
			TicketID:  a.TicketID,
			UserID:    a.UserID,
			RequestID: a.RequestID,
		})
	}

	result, err := h.allocationService.Allocate(ctx, assignments)
	if err != nil {
		h.logger.WarnContext(ctx, "allocate failed", "assignments", len(assignments), "error", err)
		writeError(ctx, w, err)
		return
	}

	approved := result.Approved
	if approved == nil {
		approved = map[int64]int{}
	}
	writeSuccess(ctx, w, http.StatusOK, allocateDTO{
		Tickets:  mapSlice(result.Tickets, ticketToDTO),
		Approved: approved,
	})
}

func (h *Handler) RevokeTicket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RevokeTicket")
	defer span.End()

	ticketID, err := pathID(r, "ticketID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	revoked, err := h.allocationService.Revoke(ctx, ticketID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, ticketToDTO(revoked))
}

// ListRequests returns every request, or only pending ones with
// ?status=pending.
func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListRequests")
	defer span.End()

	var (
		items []request.Detail
		err   error
	)
	switch status := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))); status {
	case "":
		items, err = h.requestService.ListAll(ctx)
	case string(request.StatusPending):
		items, err = h.requestService.ListPending(ctx)
	default:
		err = fmt.Errorf("%w: unsupported status filter %q", usecase.ErrInvalidInput, status)
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, newList(mapSlice(items, requestDetailToDTO)))
}

func (h *Handler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeclineRequest")
	defer span.End()

	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	declined, err := h.allocationService.Decline(ctx, requestID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, requestToDTO(declined))
}
