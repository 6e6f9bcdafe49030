package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers stock routes. {key} is the stock code for
// reads and the numeric id for edits.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/stocks", func(r chi.Router) {
		r.Get("/", h.HandleListStocks)
		r.Post("/", h.HandleAddStock)
		r.Get("/{key}", h.HandleGetStock)
		r.Put("/{key}", h.HandleEditStock)
	})
}
