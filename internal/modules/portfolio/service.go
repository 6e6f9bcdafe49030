// Package portfolio aggregates holdings and the fund account into a
// portfolio-wide overview.
package portfolio

import (
	"context"
	"fmt"

	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/floats"
)

// HoldingLister lists holding views without recommendations.
type HoldingLister interface {
	List(ctx context.Context, withStrategy bool) ([]holdings.View, error)
}

// AccountReader reads the fund account.
type AccountReader interface {
	Get(ctx context.Context) (*funds.Account, error)
}

// Weight is one holding's share of the portfolio market value.
type Weight struct {
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	WeightPct float64         `json:"weight_pct"`
}

// Overview is the portfolio-wide summary.
type Overview struct {
	StockCount         int             `json:"stock_count"`
	TotalValue         decimal.Decimal `json:"total_value"`
	TotalCost          decimal.Decimal `json:"total_cost"`
	TotalProfit        decimal.Decimal `json:"total_profit"`
	TotalProfitRate    decimal.Decimal `json:"total_profit_rate"`
	Account            funds.Account   `json:"account"`
	Weights            []Weight        `json:"weights"`
	ConcentrationIndex float64         `json:"concentration_index"`
}

// PortfolioService builds overviews
type PortfolioService struct {
	holdings HoldingLister
	accounts AccountReader
	log      zerolog.Logger
}

// NewPortfolioService creates a portfolio service
func NewPortfolioService(holdingLister HoldingLister, accounts AccountReader, log zerolog.Logger) *PortfolioService {
	return &PortfolioService{
		holdings: holdingLister,
		accounts: accounts,
		log:      log.With().Str("service", "portfolio").Logger(),
	}
}

// GetOverview totals value, cost and profit across holdings and reports
// each holding's weight. The concentration index is the sum of squared
// weights: 1 for a single holding, 1/n for n equal holdings.
func (s *PortfolioService) GetOverview(ctx context.Context) (*Overview, error) {
	views, err := s.holdings.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list holdings: %w", err)
	}

	account, err := s.accounts.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read fund account: %w", err)
	}

	o := &Overview{
		StockCount:      len(views),
		TotalValue:      decimal.Zero,
		TotalCost:       decimal.Zero,
		TotalProfitRate: decimal.Zero,
		Account:         *account,
		Weights:         make([]Weight, 0, len(views)),
	}
	for _, v := range views {
		o.TotalValue = o.TotalValue.Add(v.CurrentValue)
		o.TotalCost = o.TotalCost.Add(v.TotalCost)
	}
	o.TotalProfit = o.TotalValue.Sub(o.TotalCost)
	if o.TotalCost.IsPositive() {
		o.TotalProfitRate = o.TotalProfit.Div(o.TotalCost).Mul(decimal.NewFromInt(100)).Round(2)
	}

	values := make([]float64, len(views))
	for i, v := range views {
		values[i] = v.CurrentValue.InexactFloat64()
	}
	total := floats.Sum(values)
	if total <= 0 {
		for _, v := range views {
			o.Weights = append(o.Weights, Weight{Code: v.Code, Name: v.Name, Value: v.CurrentValue})
		}
		return o, nil
	}

	weights := make([]float64, len(values))
	copy(weights, values)
	floats.Scale(1/total, weights)
	o.ConcentrationIndex = floats.Dot(weights, weights)

	for i, v := range views {
		o.Weights = append(o.Weights, Weight{
			Code:      v.Code,
			Name:      v.Name,
			Value:     v.CurrentValue,
			WeightPct: weights[i] * 100,
		})
	}
	return o, nil
}
