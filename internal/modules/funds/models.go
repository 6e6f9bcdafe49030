// Package funds manages the single fund account and the allocation of
// its available cash across under-target holdings.
package funds

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountID addresses the one fund account row.
const AccountID int64 = 1

// Account is the portfolio-wide cash ledger.
type Account struct {
	ID                  int64           `json:"id"`
	TotalCapital        decimal.Decimal `json:"total_capital"`
	AvailableFunds      decimal.Decimal `json:"available_funds"`
	InvestedAmount      decimal.Decimal `json:"invested_amount"`
	ProfitReinvestRatio decimal.Decimal `json:"profit_reinvest_ratio"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// UpdateInput carries the user-editable account fields.
type UpdateInput struct {
	TotalCapital        decimal.Decimal `json:"total_capital"`
	AvailableFunds      decimal.Decimal `json:"available_funds"`
	ProfitReinvestRatio decimal.Decimal `json:"profit_reinvest_ratio"`
}

// Candidate is a holding considered for new cash.
type Candidate struct {
	Code          string
	Name          string
	CurrentShares int64
	TargetShares  int64
	CurrentPrice  decimal.Decimal
}

// Suggestion is one line of an allocation plan.
type Suggestion struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Shares     int64           `json:"shares"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}
