// Package httpapi exposes the relay over HTTP.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"kofi-relay/internal/domain/ports"
)

// NewRouter creates and configures the HTTP router.
func NewRouter(h *Handler, logger ports.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", h.Status)
	r.Get("/health", h.Health)
	r.Get("/config", h.Config)
	r.Get("/test-discord", h.TestDiscord)
	r.Post("/webhook", h.Webhook)

	return r
}
