package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers strategy routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/strategy", func(r chi.Router) {
		r.Post("/evaluate", h.HandleEvaluate) // stateless
		r.Get("/{code}", h.HandleGetStrategy)
	})
}
