// ABOUTME: Route table composing authentication and authorization gates per route
// ABOUTME: Uses chi for route grouping and ordered middleware chains

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/secureapi/gateway/internal/auth"
	"github.com/secureapi/gateway/internal/middleware"
	"github.com/secureapi/gateway/internal/rbac"
)

// RouterConfig carries the knobs the router needs beyond its handlers.
type RouterConfig struct {
	LoginPerMinute int
	LoginBurst     int
}

// NewRouter builds the gateway's route table. Gate order per route is
// fixed: authentication first, then zero or more authorization gates,
// then the handler. A rejecting gate short-circuits everything after it.
func NewRouter(h *Handler, codec *auth.Codec, policy *rbac.Policy, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics)

	r.NotFound(h.handleNotFound)

	r.Get("/", h.handleRoot)
	r.Get("/health", h.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	loginLimiter := middleware.NewRateLimiter(cfg.LoginPerMinute, cfg.LoginBurst)
	r.Route("/auth", func(r chi.Router) {
		r.With(loginLimiter.Limit).Post("/login", h.handleLogin)
		r.Get("/users", h.handleListUsers)
	})

	authenticate := auth.Authenticate(codec, logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/public", h.handlePublic)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.With(rbac.Require(rbac.NewRoleGate(rbac.RoleGuest, rbac.RoleUser, rbac.RoleAdmin), logger)).
				Get("/guest", h.handleGuestArea)
			r.With(rbac.Require(rbac.NewRoleGate(rbac.RoleUser, rbac.RoleAdmin), logger)).
				Get("/user", h.handleUserArea)
			r.With(rbac.Require(rbac.NewRoleGate(rbac.RoleAdmin), logger)).
				Get("/admin", h.handleAdminArea)

			r.With(rbac.Require(rbac.NewPermissionGate(policy, rbac.PermissionManageUsers), logger)).
				Post("/admin/users", h.handleCreateUser)
			r.With(rbac.Require(rbac.NewPermissionGate(policy, rbac.PermissionDelete), logger)).
				Delete("/admin/users/{id}", h.handleDeleteUser)

			r.With(rbac.Require(rbac.NewMinRoleGate(policy, rbac.RoleUser), logger)).
				Get("/reports", h.handleReports)

			r.Get("/protected", h.handleProtected)
		})
	})

	return r
}
