package routes

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mhollis/vitrine/internal/auth"
	"github.com/mhollis/vitrine/internal/handlers"
	"github.com/mhollis/vitrine/internal/middleware"
	"github.com/mhollis/vitrine/internal/models"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	Auth       *handlers.AuthHandler
	Users      *handlers.UserHandler
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	HeroImages *handlers.HeroImageHandler
	Settings   *handlers.SettingsHandler
	Contact    *handlers.ContactHandler
	Uploads    *handlers.UploadHandler
}

// RegisterRoutes registers all application routes under /api, plus the
// static /uploads file server.
func RegisterRoutes(
	router chi.Router,
	h Handlers,
	sessions auth.SessionStore,
	users auth.UserStore,
	csrfManager *auth.CSRFTokenManager,
	logger *slog.Logger,
	uploadsDir string,
) {
	router.Route("/api", func(r chi.Router) {
		// Public storefront routes
		h.Categories.RegisterPublicRoutes(r)
		h.Products.RegisterPublicRoutes(r)
		h.HeroImages.RegisterPublicRoutes(r)
		h.Settings.RegisterPublicRoutes(r)

		r.With(middleware.RateLimitByIP(middleware.DefaultContactRateLimit())).
			Post("/contact", h.Contact.Submit)

		// Auth endpoints
		r.With(middleware.RateLimitByIP(middleware.DefaultLoginRateLimit())).
			Post("/auth/login", h.Auth.Login)
		r.Post("/auth/logout", h.Auth.Logout)

		// Dashboard routes - authentication required
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(sessions, users))

			r.Get("/auth/me", h.Auth.Me)

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.CSRFProtection(csrfManager, logger))

				h.Categories.RegisterAdminRoutes(r)
				h.Products.RegisterAdminRoutes(r)
				h.HeroImages.RegisterAdminRoutes(r)
				h.Settings.RegisterAdminRoutes(r)
				h.Contact.RegisterAdminRoutes(r)
				h.Uploads.RegisterAdminRoutes(r)

				// Account management is restricted to super admins
				r.Group(func(r chi.Router) {
					r.Use(auth.RequireRole(models.RoleSuperAdmin))
					h.Users.RegisterRoutes(r)
				})
			})
		})
	})

	// Uploaded images are served directly off disk
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir)))
	router.Get("/uploads/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})
}
