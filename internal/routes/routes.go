package routes

import (
	"github.com/excellence-hub/excellence/internal/auth"
	"github.com/excellence-hub/excellence/internal/handlers"
	"github.com/excellence-hub/excellence/internal/middleware"
	"github.com/excellence-hub/excellence/internal/models"
	pkghttp "github.com/excellence-hub/excellence/pkg/http"
	"github.com/go-chi/chi/v5"
)

// Handlers groups everything RegisterRoutes mounts.
type Handlers struct {
	Auth   *handlers.AuthHandler
	Admin  *handlers.AdminHandler
	Roster *handlers.RosterHandler
	Health *handlers.HealthHandler
}

// Options configures the protected and rate-limited groups.
type Options struct {
	TokenManager           *auth.TokenManager
	Administrator          models.Identity
	AuthRateLimitPerMinute int
	ClientIPs              *pkghttp.ClientIPResolver
}

// RegisterRoutes registers all application routes
func RegisterRoutes(router chi.Router, h Handlers, opts Options) {
	router.Get("/health", h.Health.Check)
	router.Get("/roster", h.Roster.ListNames)

	// Public auth routes share one per-IP budget.
	router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitByClientIP(opts.AuthRateLimitPerMinute, opts.ClientIPs))
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/recovery-status", h.Auth.RecoveryStatus)
		r.Post("/auth/recovery-requests", h.Auth.RequestRecovery)
	})

	router.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware(opts.TokenManager))

		r.Post("/auth/password", h.Auth.ChangePassword)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdministrator(opts.Administrator))
			r.Get("/recovery-requests", h.Admin.ListRecoveryRequests)
			r.Post("/recovery-requests/{id}/unlock", h.Admin.UnlockRecoveryRequest)
			r.Post("/unlock", h.Admin.Unlock)
			r.Get("/login-attempts", h.Admin.LockedAccounts)
		})
	})
}
