package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHoldings struct {
	stocks []holdings.Stock
	err    error
}

func (s stubHoldings) List(ctx context.Context, withStrategy bool) ([]holdings.View, error) {
	views := make([]holdings.View, 0, len(s.stocks))
	for _, st := range s.stocks {
		views = append(views, holdings.NewView(st))
	}
	return views, s.err
}

type stubAccount struct{}

func (stubAccount) Get(ctx context.Context) (*funds.Account, error) {
	return &funds.Account{ID: funds.AccountID, AvailableFunds: decimal.NewFromInt(5000)}, nil
}

func stock(code string, shares int64, avg, price string) holdings.Stock {
	return holdings.Stock{Code: code, Name: code, CurrentShares: shares, AvgCost: decimal.RequireFromString(avg), CurrentPrice: decimal.RequireFromString(price)}
}

func TestGetOverview(t *testing.T) {
	svc := NewPortfolioService(stubHoldings{stocks: []holdings.Stock{
		stock("A", 10, "10", "15"), // value 150, cost 100
		stock("B", 10, "5", "5"),   // value 50, cost 50
	}}, stubAccount{}, zerolog.Nop())

	o, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, o.StockCount)
	assert.Equal(t, "200", o.TotalValue.String())
	assert.Equal(t, "150", o.TotalCost.String())
	assert.Equal(t, "50", o.TotalProfit.String())
	assert.Equal(t, "33.33", o.TotalProfitRate.String())
	assert.Equal(t, "5000", o.Account.AvailableFunds.String())

	require.Len(t, o.Weights, 2)
	assert.InDelta(t, 75.0, o.Weights[0].WeightPct, 1e-9)
	assert.InDelta(t, 25.0, o.Weights[1].WeightPct, 1e-9)
	assert.InDelta(t, 0.625, o.ConcentrationIndex, 1e-9)
}

func TestGetOverview_Empty(t *testing.T) {
	svc := NewPortfolioService(stubHoldings{}, stubAccount{}, zerolog.Nop())

	o, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, o.StockCount)
	assert.True(t, o.TotalProfitRate.IsZero())
	assert.Zero(t, o.ConcentrationIndex)
	assert.NotNil(t, o.Weights)
}

func TestGetOverview_NoMarketValue(t *testing.T) {
	svc := NewPortfolioService(stubHoldings{stocks: []holdings.Stock{stock("A", 0, "0", "10")}}, stubAccount{}, zerolog.Nop())

	o, err := svc.GetOverview(context.Background())
	require.NoError(t, err)
	require.Len(t, o.Weights, 1)
	assert.Zero(t, o.Weights[0].WeightPct)
	assert.Zero(t, o.ConcentrationIndex)
}

func TestGetOverview_ListError(t *testing.T) {
	svc := NewPortfolioService(stubHoldings{err: errors.New("boom")}, stubAccount{}, zerolog.Nop())

	_, err := svc.GetOverview(context.Background())
	assert.ErrorContains(t, err, "boom")
}
