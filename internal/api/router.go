package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/icare-app/icare-server/internal/api/handlers"
	"github.com/icare-app/icare-server/internal/api/middleware"
	"github.com/icare-app/icare-server/internal/service"
)

func NewRouter(services *service.Services) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(services.Auth)
	userHandler := handlers.NewUserHandler(services.Preferences, services.Stats)

	r.Route("/api/v1", func(r chi.Router) {
		// Public auth routes
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			// Protected auth routes
			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth.Codec()))
				r.Get("/me", authHandler.Me)
			})
		})

		// Protected user routes
		r.Route("/user", func(r chi.Router) {
			r.Use(middleware.Auth(services.Auth.Codec()))

			r.Get("/preferences", userHandler.GetPreferences)
			r.Put("/preferences", userHandler.UpdatePreferences)
			r.Post("/time-saved", userHandler.AddTimeSaved)
			r.Get("/stats", userHandler.GetStats)
		})
	})

	return r
}
