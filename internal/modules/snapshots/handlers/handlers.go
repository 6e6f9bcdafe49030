// Package handlers provides HTTP handlers for strategy snapshot history.
package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aristath/zerocost/internal/modules/snapshots"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler handles snapshot HTTP requests
type Handler struct {
	repo *snapshots.Repository
	job  *snapshots.SnapshotJob
	log  zerolog.Logger
}

// NewHandler creates a new snapshot handler
func NewHandler(repo *snapshots.Repository, job *snapshots.SnapshotJob, log zerolog.Logger) *Handler {
	return &Handler{
		repo: repo,
		job:  job,
		log:  log.With().Str("handler", "snapshots").Logger(),
	}
}

// HandleListByCode handles GET /api/snapshots/{code}?limit=
func (h *Handler) HandleListByCode(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	history, err := h.repo.ListByCode(r.Context(), chi.URLParam(r, "code"), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list snapshots")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"snapshots": history,
		"count":     len(history),
	})
}

// HandleRunNow handles POST /api/snapshots
func (h *Handler) HandleRunNow(w http.ResponseWriter, r *http.Request) {
	result, err := h.job.RunOnce(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("Snapshot run failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
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
