package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/snapshots"
	testingpkg "github.com/aristath/zerocost/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type oneStock struct{}

func (oneStock) List(ctx context.Context) ([]holdings.Stock, error) {
	return []holdings.Stock{{Code: "AAPL", CurrentShares: 10, TargetShares: 20, AvgCost: decimal.NewFromInt(10), CurrentPrice: decimal.NewFromInt(9)}}, nil
}

func TestSnapshotRoutes(t *testing.T) {
	db, cleanup := testingpkg.NewTestDB(t, "snapshots")
	defer cleanup()

	repo := snapshots.NewRepository(db.Conn(), zerolog.Nop())
	job := snapshots.NewSnapshotJob(oneStock{}, repo, zerolog.Nop())
	router := chi.NewRouter()
	NewHandler(repo, job, zerolog.Nop()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/snapshots/", nil))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var run snapshots.RunResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &run))
	assert.Equal(t, 1, run.Stored)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/AAPL?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Snapshots []snapshots.Snapshot `json:"snapshots"`
		Count     int                  `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	assert.Equal(t, run.RunID, body.Snapshots[0].RunID)
	assert.Equal(t, "Continue building position", body.Snapshots[0].Payload.Action)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshots/AAPL?limit=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
