/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. RequestID:  Unique ID per request for tracing
  2. Logger:     Request logging
  3. Recoverer:  Panic recovery (500 instead of crash)
  4. CORS:       Cross-origin requests for the frontend

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
// allowedOrigins feeds the CORS policy; empty means no cross-origin access.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/settings", h.GetSettings)
		r.Get("/suggest", h.Suggest)

		r.Route("/years", func(r chi.Router) {
			r.Get("/", h.ListYears)
			r.Route("/{year}", func(r chi.Router) {
				r.Get("/", h.GetYear)
				r.Put("/allocation", h.SetAllocation)
				r.Post("/entries", h.AddEntry)
				r.Delete("/entries/{id}", h.RemoveEntry)
				r.Get("/months/{month}", h.GetMonth)
				r.Get("/dates/{date}", h.GetDate)
			})
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", h.GetSelection)
			r.Put("/", h.SelectYear)
			r.Post("/shift", h.ShiftYear)
		})
	})

	return r
}
