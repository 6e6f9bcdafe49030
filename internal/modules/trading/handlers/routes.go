package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers trade ledger routes
func (h *TradingHandlers) RegisterRoutes(r chi.Router) {
	r.Route("/trades", func(r chi.Router) {
		r.Get("/", h.HandleGetTrades)     // ?code= filters by stock
		r.Post("/", h.HandleRecordTrade) // buy or sell
	})
}
