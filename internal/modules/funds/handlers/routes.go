package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers fund account routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/funds", func(r chi.Router) {
		r.Get("/", h.HandleGetAccount)
		r.Put("/", h.HandleUpdateAccount)
		r.Get("/allocation", h.HandleGetAllocation)
	})
}
