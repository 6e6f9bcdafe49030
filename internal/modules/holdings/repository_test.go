package holdings

import (
	"context"
	"testing"

	"github.com/aristath/zerocost/internal/domain"
	testingpkg "github.com/aristath/zerocost/internal/testing"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "strategy")
	t.Cleanup(cleanup)
	return NewRepository(db.Conn(), zerolog.Nop())
}

func sampleStock(code string) Stock {
	return Stock{
		Code:              code,
		Name:              NormalizeCode(code) + " Corp",
		Market:            "US",
		TargetShares:      100,
		CurrentShares:     40,
		AvgCost:           decimal.RequireFromString("12.5"),
		CurrentPrice:      decimal.RequireFromString("15.25"),
		InitialInvestment: decimal.NewFromInt(500),
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleStock(" aapl "))
	require.NoError(t, err)
	assert.Positive(t, id)

	byCode, err := repo.GetByCode(ctx, "Aapl")
	require.NoError(t, err)
	assert.Equal(t, id, byCode.ID)
	assert.Equal(t, "AAPL", byCode.Code)
	assert.Equal(t, "AAPL Corp", byCode.Name)
	assert.Equal(t, int64(40), byCode.CurrentShares)
	assert.Equal(t, "12.5", byCode.AvgCost.String())
	assert.Equal(t, "15.25", byCode.CurrentPrice.String())
	assert.Equal(t, "500", byCode.InitialInvestment.String())
	assert.True(t, byCode.TotalFees.IsZero())
	assert.False(t, byCode.CreatedAt.IsZero())

	byID, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, byCode, byID)
}

func TestRepository_DuplicateCode(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, sampleStock("MSFT"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, sampleStock("msft"))
	assert.ErrorIs(t, err, domain.ErrStockExists)
}

func TestRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByCode(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	_, err = repo.GetByID(ctx, 42)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	err = repo.UpdateMarket(ctx, 42, decimal.NewFromInt(1), 1)
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	err = repo.UpdatePrice(ctx, "NOPE", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}

func TestRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	for _, code := range []string{"A", "B", "C"} {
		_, err := repo.Create(ctx, sampleStock(code))
		require.NoError(t, err)
	}

	stocks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, stocks, 3)
	assert.Equal(t, "C", stocks[0].Code)
	assert.Equal(t, "A", stocks[2].Code)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_Updates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, sampleStock("NVDA"))
	require.NoError(t, err)

	require.NoError(t, repo.UpdateMarket(ctx, id, decimal.RequireFromString("20.5"), 250))
	require.NoError(t, repo.UpdatePosition(ctx, "nvda", 55, decimal.RequireFromString("13.75"), decimal.NewFromInt(3)))
	require.NoError(t, repo.UpdatePosition(ctx, "NVDA", 55, decimal.RequireFromString("13.75"), decimal.RequireFromString("1.5")))

	stock, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "20.5", stock.CurrentPrice.String())
	assert.Equal(t, int64(250), stock.TargetShares)
	assert.Equal(t, int64(55), stock.CurrentShares)
	assert.Equal(t, "13.75", stock.AvgCost.String())
	assert.Equal(t, "4.5", stock.TotalFees.String())

	require.NoError(t, repo.UpdatePrice(ctx, "NVDA", decimal.NewFromInt(30)))
	stock, err = repo.GetByCode(ctx, "NVDA")
	require.NoError(t, err)
	assert.Equal(t, "30", stock.CurrentPrice.String())
}
