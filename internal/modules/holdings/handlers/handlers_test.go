package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	testingpkg "github.com/aristath/zerocost/internal/testing"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "strategy")
	t.Cleanup(cleanup)

	fundsRepo := funds.NewRepository(db.Conn(), zerolog.Nop())
	_, err := fundsRepo.EnsureAccount(context.Background(), decimal.NewFromInt(10000), decimal.RequireFromString("0.5"))
	require.NoError(t, err)

	service := holdings.NewService(db.Conn(), holdings.NewRepository(db.Conn(), zerolog.Nop()), fundsRepo, zerolog.Nop())
	router := chi.NewRouter()
	NewHandler(service, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestStockLifecycle(t *testing.T) {
	router := newTestRouter(t)

	rec := do(router, http.MethodPost, "/stocks/", `{"code":"aapl","name":"Apple","market":"US","current_price":"15","current_shares":100,"avg_cost":"10","target_shares":100}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created holdings.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "AAPL", created.Code)
	require.NotNil(t, created.Strategy)
	assert.Equal(t, int64(67), created.Strategy.ZeroCost.SharesToSell)

	rec = do(router, http.MethodGet, "/stocks/AAPL", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodPut, "/stocks/1", `{"current_price": 9, "target_shares": 120}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited holdings.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &edited))
	assert.Equal(t, "9", edited.CurrentPrice.String())
	assert.Equal(t, "-10", edited.ProfitRate.String())

	rec = do(router, http.MethodGet, "/stocks/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []holdings.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestStockErrors(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusCreated, do(router, http.MethodPost, "/stocks/", `{"code":"X","name":"X","market":"US","current_price":1}`).Code)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"duplicate", http.MethodPost, "/stocks/", `{"code":"x","name":"X","market":"US","current_price":1}`, http.StatusConflict},
		{"invalid stock", http.MethodPost, "/stocks/", `{"code":"Y","name":"","market":"US","current_price":1}`, http.StatusBadRequest},
		{"malformed body", http.MethodPost, "/stocks/", `nope`, http.StatusBadRequest},
		{"unknown code", http.MethodGet, "/stocks/NOPE", "", http.StatusNotFound},
		{"unknown id", http.MethodPut, "/stocks/99", `{"current_price":1,"target_shares":1}`, http.StatusNotFound},
		{"non numeric id", http.MethodPut, "/stocks/X", `{"current_price":1,"target_shares":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
