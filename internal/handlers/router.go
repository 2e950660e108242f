package handlers

import (
	"net/http"

	"github.com/ukydev/tourfleet/internal/auth"
	"github.com/ukydev/tourfleet/internal/middleware"
	"github.com/ukydev/tourfleet/internal/models"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Auth    *auth.Service
	Fleet   *FleetHandler
	Users   *AuthHandler
	Metrics *middleware.Metrics

	// LoginLimit is the number of login attempts allowed per client IP
	// and minute. Zero disables the limit.
	LoginLimit int
}

// NewRouter builds the API routes and wraps them in the middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	allow := func(action string, fn http.HandlerFunc) http.Handler {
		return middleware.RequirePermission(action, fn)
	}

	var login http.Handler = http.HandlerFunc(cfg.Users.Login)
	if cfg.LoginLimit > 0 {
		login = middleware.NewRateLimitMiddleware().RateLimit(cfg.LoginLimit, 60)(login)
	}
	mux.Handle("POST /api/auth/login", login)
	mux.HandleFunc("GET /api/auth/me", cfg.Users.Me)
	mux.HandleFunc("GET /health", Health)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}

	f := cfg.Fleet
	view, edit, state, del := models.ActionView, models.ActionEdit, models.ActionChangeState, models.ActionDelete

	mux.Handle("GET /api/vehicles", allow(view, f.ListVehicles))
	mux.Handle("GET /api/vehicles/available", allow(view, f.AvailableVehicles))
	mux.Handle("POST /api/vehicles", allow(edit, f.CreateVehicle))
	mux.Handle("GET /api/vehicles/{id}", allow(view, f.GetVehicle))
	mux.Handle("PUT /api/vehicles/{id}", allow(edit, f.UpdateVehicle))
	mux.Handle("PATCH /api/vehicles/{id}/status", allow(state, f.ChangeVehicleStatus))
	mux.Handle("DELETE /api/vehicles/{id}", allow(del, f.DeleteVehicle))

	mux.Handle("GET /api/drivers", allow(view, f.ListDrivers))
	mux.Handle("GET /api/drivers/available", allow(view, f.AvailableDrivers))
	mux.Handle("POST /api/drivers", allow(edit, f.CreateDriver))
	mux.Handle("GET /api/drivers/{id}", allow(view, f.GetDriver))
	mux.Handle("PUT /api/drivers/{id}", allow(edit, f.UpdateDriver))
	mux.Handle("PATCH /api/drivers/{id}/status", allow(state, f.ChangeDriverStatus))
	mux.Handle("DELETE /api/drivers/{id}", allow(del, f.DeleteDriver))

	mux.Handle("GET /api/routes", allow(view, f.ListRoutes))
	mux.Handle("GET /api/routes/active", allow(view, f.ActiveRoutes))
	mux.Handle("POST /api/routes", allow(edit, f.CreateRoute))
	mux.Handle("GET /api/routes/{id}", allow(view, f.GetRoute))
	mux.Handle("PUT /api/routes/{id}", allow(edit, f.UpdateRoute))
	mux.Handle("PATCH /api/routes/{id}/status", allow(state, f.ChangeRouteStatus))
	mux.Handle("DELETE /api/routes/{id}", allow(del, f.DeleteRoute))

	mux.Handle("GET /api/assignments", allow(view, f.ListAssignments))
	mux.Handle("GET /api/assignments/today", allow(view, f.TodayAssignments))
	mux.Handle("POST /api/assignments", allow(edit, f.CreateAssignment))
	mux.Handle("GET /api/assignments/{id}", allow(view, f.GetAssignment))
	mux.Handle("PUT /api/assignments/{id}", allow(edit, f.UpdateAssignment))
	mux.Handle("PATCH /api/assignments/{id}/status", allow(state, f.ChangeAssignmentStatus))
	mux.Handle("DELETE /api/assignments/{id}", allow(del, f.DeleteAssignment))

	mux.Handle("GET /api/statistics", allow(view, f.Statistics))
	mux.Handle("GET /api/alerts", allow(view, f.Alerts))

	var handler http.Handler = mux
	if cfg.Metrics != nil {
		handler = cfg.Metrics.Instrument(handler)
	}
	handler = middleware.NewAuthMiddleware(cfg.Auth).Authenticate(handler)
	return middleware.Logging(handler)
}
