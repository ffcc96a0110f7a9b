package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/season-tickets/internal/domain/user"
	"github.com/riskibarqy/season-tickets/internal/platform/logging"
	"github.com/riskibarqy/season-tickets/internal/usecase"
)

type Handler struct {
	seatService       *usecase.SeatService
	inventoryService  *usecase.InventoryService
	requestService    *usecase.RequestService
	allocationService *usecase.AllocationService
	scheduleService   *usecase.ScheduleService
	userService       *usecase.UserService
	trackedTeamID     int64
	logger            *logging.Logger
	validator         *validator.Validate
}

type HandlerDeps struct {
	Seats         *usecase.SeatService
	Inventory     *usecase.InventoryService
	Requests      *usecase.RequestService
	Allocation    *usecase.AllocationService
	Schedule      *usecase.ScheduleService
	Users         *usecase.UserService
	TrackedTeamID int64
}

func NewHandler(deps HandlerDeps, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seatService:       deps.Seats,
		inventoryService:  deps.Inventory,
		requestService:    deps.Requests,
		allocationService: deps.Allocation,
		scheduleService:   deps.Schedule,
		userService:       deps.Users,
		trackedTeamID:     deps.TrackedTeamID,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeBody reads a strict JSON body into dst and validates it.
func (h *Handler) decodeBody(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return id, nil
}

func currentUser(ctx context.Context) (user.User, error) {
	u, ok := userFromContext(ctx)
	if !ok {
		return user.User{}, fmt.Errorf("%w: user is missing from request context", usecase.ErrUnauthorized)
	}
	return u, nil
}
