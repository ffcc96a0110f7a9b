package httpapi

import (
	"net/http"

	"github.com/riskibarqy/season-tickets/internal/platform/logging"
)

type routeGuard struct {
	verifier TokenVerifier
	users    UserProvisioner
	limiter  RateLimiter
	logger   *logging.Logger
}

func (g routeGuard) member(h http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, RequireUser(g.users, h))
}

// limitedMember is member plus the per user rate limit for mutations.
func (g routeGuard) limitedMember(h http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, RequireUser(g.users, RateLimit(g.limiter, g.logger, h)))
}

func (g routeGuard) admin(h http.HandlerFunc) http.Handler {
	return RequireAuth(g.verifier, RequireUser(g.users, RequireAdmin(h)))
}

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicGameRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/games", handler.ListGames)
	mux.HandleFunc("GET /v1/games/{gamePK}", handler.GetGame)
	mux.HandleFunc("GET /v1/games/{gamePK}/promotions", handler.ListPromotions)
}

func registerMemberRoutes(mux *http.ServeMux, handler *Handler, g routeGuard) {
	mux.Handle("GET /v1/users/me", g.member(handler.GetMe))
	mux.Handle("GET /v1/my/requests", g.member(handler.ListMyRequests))
	mux.Handle("POST /v1/my/requests", g.limitedMember(handler.CreateMyRequests))
	mux.Handle("PATCH /v1/my/requests/{requestID}", g.limitedMember(handler.UpdateMyRequest))
	mux.Handle("DELETE /v1/my/requests/{requestID}", g.limitedMember(handler.WithdrawMyRequest))
	mux.Handle("GET /v1/my/games", g.member(handler.ListMyGames))
	mux.Handle("POST /v1/my/games/{gamePK}/release", g.limitedMember(handler.ReleaseMyGame))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, g routeGuard) {
	mux.Handle("GET /v1/seats", g.admin(handler.ListSeats))
	mux.Handle("POST /v1/seats", g.admin(handler.CreateSeat))
	mux.Handle("POST /v1/seats/batch", g.admin(handler.CreateSeatBatch))
	mux.Handle("PATCH /v1/seats/group", g.admin(handler.UpdateSeatGroupNotes))
	mux.Handle("DELETE /v1/seats/{seatID}", g.admin(handler.DeleteSeat))

	mux.Handle("GET /v1/games/{gamePK}/tickets", g.admin(handler.ListGameTickets))
	mux.Handle("PATCH /v1/tickets/{ticketID}", g.admin(handler.UpdateTicket))
	mux.Handle("GET /v1/tickets/summary", g.admin(handler.TicketSummary))

	mux.Handle("GET /v1/users", g.admin(handler.ListUsers))
	mux.Handle("POST /v1/admin/schedule/sync", g.admin(handler.SyncSchedule))

	mux.Handle("GET /v1/admin/allocation", g.admin(handler.AllocationSummary))
	mux.Handle("GET /v1/admin/allocation/{gamePK}", g.admin(handler.AllocationGameDetail))
	mux.Handle("GET /v1/admin/allocation/by-user/{userID}", g.admin(handler.AllocationByUser))
	mux.Handle("POST /v1/admin/allocate", g.admin(handler.Allocate))
	mux.Handle("DELETE /v1/admin/allocate/{ticketID}", g.admin(handler.RevokeTicket))
	mux.Handle("GET /v1/admin/requests", g.admin(handler.ListRequests))
	mux.Handle("POST /v1/admin/requests/{requestID}/decline", g.admin(handler.DeclineRequest))
}
