package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lost-and-found/internal/config"
	"lost-and-found/internal/handler"
	"lost-and-found/internal/middleware"
	"lost-and-found/internal/storage"
)

type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Items        *handler.ItemHandler
	Uploads      *handler.UploadHandler
	Claims       *handler.ClaimHandler
	Activity     *handler.ActivityHandler
	LoginAttempt *handler.LoginAttemptHandler
	Events       *handler.EventsHandler
}

// New builds the route table. uploadRoot is the local image directory served under
// /uploads/, or empty when images live in a bucket.
func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers, uploadRoot string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.Metrics)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)

	r.Get("/health", h.Health.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	if uploadRoot != "" {
		r.Handle(storage.URLPrefix+"*", http.StripPrefix(storage.URLPrefix, http.FileServer(http.Dir(uploadRoot))))
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		requireAuth := authMiddleware.RequireAuth
		requireAdmin := authMiddleware.RequireAdmin

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/refresh", h.Auth.Refresh)
			auth.Post("/logout", h.Auth.Logout)
			auth.Get("/status", h.Auth.Status)
			auth.With(requireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/items", func(items chi.Router) {
			items.Get("/", h.Items.List)
			items.Get("/recent", h.Items.Recent)
			items.Get("/stats", h.Items.Stats)
			items.Get("/categories", h.Items.Categories)
			items.Get("/{id}", h.Items.Get)
			items.With(requireAuth).Get("/{id}/claim-status", h.Items.ClaimStatus)

			items.Group(func(admin chi.Router) {
				admin.Use(requireAuth, requireAdmin)
				admin.Post("/", h.Items.Create)
				admin.Put("/{id}", h.Items.Update)
				admin.Delete("/{id}", h.Items.Delete)
				admin.Post("/bulk/claim", h.Items.BulkClaim)
				admin.Post("/bulk/delete", h.Items.BulkDelete)
				admin.Post("/seed", h.Items.Seed)
				admin.Get("/export", h.Items.Export)
			})
		})

		api.With(requireAuth).Post("/uploads", h.Uploads.Upload)

		api.Route("/claims", func(claims chi.Router) {
			claims.Use(requireAuth)
			claims.Post("/", h.Claims.Submit)
			claims.Get("/mine", h.Claims.Mine)
			claims.Get("/mine/approved", h.Claims.MineApproved)
			claims.Delete("/{id}", h.Claims.Delete)

			claims.Group(func(admin chi.Router) {
				admin.Use(requireAdmin)
				admin.Get("/pending", h.Claims.Pending)
				admin.Get("/pending/count", h.Claims.PendingCount)
				admin.Get("/users", h.Claims.Users)
				admin.Get("/{id}", h.Claims.Get)
				admin.Post("/{id}/approve", h.Claims.Approve)
				admin.Post("/{id}/reject", h.Claims.Reject)
			})
		})

		api.Route("/activity", func(activity chi.Router) {
			activity.Use(requireAuth, requireAdmin)
			activity.Get("/", h.Activity.List)
			activity.Delete("/", h.Activity.Purge)
		})

		api.Route("/login-attempts", func(attempts chi.Router) {
			attempts.Use(requireAuth, requireAdmin)
			attempts.Get("/deactivated", h.LoginAttempt.Deactivated)
			attempts.Get("/deactivated/count", h.LoginAttempt.DeactivatedCount)
			attempts.Post("/reactivate", h.LoginAttempt.Reactivate)
		})

		api.With(requireAuth, requireAdmin).Get("/events", h.Events.Serve)
	})

	return r
}
