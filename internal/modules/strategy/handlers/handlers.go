// Package handlers exposes the strategy evaluator over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/strategy"
	"github.com/aristath/zerocost/internal/modules/trading"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// HoldingReader loads one holding view with its recommendation.
type HoldingReader interface {
	Get(ctx context.Context, code string) (*holdings.View, error)
}

// TradeLister lists the trades of one holding.
type TradeLister interface {
	List(ctx context.Context, code string) ([]trading.Trade, error)
}

// Handler handles strategy HTTP requests
type Handler struct {
	holdings HoldingReader
	trades   TradeLister
	log      zerolog.Logger
}

// NewHandler creates a new strategy handler
func NewHandler(holdings HoldingReader, trades TradeLister, log zerolog.Logger) *Handler {
	return &Handler{
		holdings: holdings,
		trades:   trades,
		log:      log.With().Str("handler", "strategy").Logger(),
	}
}

// StrategyResponse is a holding with its recommendation and trades.
type StrategyResponse struct {
	Stock    holdings.View            `json:"stock"`
	Strategy *strategy.Recommendation `json:"strategy"`
	Trades   []trading.Trade          `json:"trades"`
}

// HandleGetStrategy returns the recommendation for a tracked stock
func (h *Handler) HandleGetStrategy(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	view, err := h.holdings.Get(r.Context(), code)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	trades, err := h.trades.List(r.Context(), view.Code)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	rec := view.Strategy
	view.Strategy = nil
	h.writeJSON(w, http.StatusOK, StrategyResponse{Stock: *view, Strategy: rec, Trades: trades})
}

// HandleEvaluate evaluates a posted position without touching storage.
// Invalid numbers answer 400 with the typed error.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var p strategy.Position
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := strategy.Evaluate(p)
	if err != nil {
		status := http.StatusInternalServerError
		if strategy.IsKind(err, strategy.KindInvalidInput) {
			status = http.StatusBadRequest
		} else {
			h.log.Error().Err(err).Str("code", p.Code).Msg("Strategy evaluation failed")
		}
		h.writeJSON(w, status, strategy.Degraded(p.Code, err))
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	status := domain.StatusCode(err)
	if status >= http.StatusInternalServerError {
		h.log.Error().Err(err).Msg("Strategy request failed")
	}
	h.writeError(w, status, err.Error())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
