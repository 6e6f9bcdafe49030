// Package holdings manages the stocks tracked by the strategy.
package holdings

import (
	"time"

	"github.com/aristath/zerocost/internal/modules/strategy"
	"github.com/shopspring/decimal"
)

// DefaultTargetShares is used when a stock is added without a target.
const DefaultTargetShares int64 = 100

// Stock is a tracked holding.
type Stock struct {
	ID                int64           `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Market            string          `json:"market"`
	TargetShares      int64           `json:"target_shares"`
	InitialInvestment decimal.Decimal `json:"initial_investment"`
	CurrentShares     int64           `json:"current_shares"`
	AvgCost           decimal.Decimal `json:"avg_cost"`
	TotalFees         decimal.Decimal `json:"total_fees"`
	CurrentPrice      decimal.Decimal `json:"current_price"`
	CreatedAt         time.Time       `json:"created_at"`
}

// Position is the evaluator input for this holding.
func (s Stock) Position() strategy.Position {
	return strategy.Position{
		Code:          s.Code,
		CurrentPrice:  s.CurrentPrice,
		CurrentShares: s.CurrentShares,
		AvgCost:       s.AvgCost,
		TargetShares:  s.TargetShares,
	}
}

// View is a stock with its computed value figures and, optionally,
// its strategy recommendation.
type View struct {
	Stock
	CurrentValue decimal.Decimal          `json:"current_value"`
	TotalCost    decimal.Decimal          `json:"total_cost"`
	Profit       decimal.Decimal          `json:"profit"`
	ProfitRate   decimal.Decimal          `json:"profit_rate"`
	Strategy     *strategy.Recommendation `json:"strategy,omitempty"`
}

// NewView computes the value figures for s. The profit rate is a
// percentage rounded to two places and zero when there is no cost basis.
func NewView(s Stock) View {
	shares := decimal.NewFromInt(s.CurrentShares)
	v := View{
		Stock:        s,
		CurrentValue: shares.Mul(s.CurrentPrice),
		TotalCost:    shares.Mul(s.AvgCost),
		ProfitRate:   decimal.Zero,
	}
	v.Profit = v.CurrentValue.Sub(v.TotalCost)
	if v.TotalCost.IsPositive() {
		v.ProfitRate = v.Profit.Div(v.TotalCost).Mul(decimal.NewFromInt(100)).Round(2)
	}
	return v
}

// AddStockInput is the payload for creating a stock. Pointer fields are
// optional and fall back to their documented defaults.
type AddStockInput struct {
	Code              string           `json:"code"`
	Name              string           `json:"name"`
	Market            string           `json:"market"`
	CurrentPrice      decimal.Decimal  `json:"current_price"`
	TargetShares      *int64           `json:"target_shares,omitempty"`
	CurrentShares     int64            `json:"current_shares"`
	AvgCost           *decimal.Decimal `json:"avg_cost,omitempty"`
	InitialInvestment *decimal.Decimal `json:"initial_investment,omitempty"`
}

// EditStockInput updates the mutable market fields of a stock.
type EditStockInput struct {
	CurrentPrice decimal.Decimal `json:"current_price"`
	TargetShares int64           `json:"target_shares"`
}
