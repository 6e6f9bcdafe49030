package strategy

import "github.com/shopspring/decimal"

// Tone is the severity tag a presentation layer maps to a colour.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneDanger  Tone = "danger"
	TonePrimary Tone = "primary"
	ToneInfo    Tone = "info"
)

// Tier is a coarse risk level.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// Position is the numeric snapshot of one holding. Code is display-only.
type Position struct {
	Code          string          `json:"code"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	CurrentShares int64           `json:"current_shares"`
	AvgCost       decimal.Decimal `json:"avg_cost"`
	TargetShares  int64           `json:"target_shares"`
}

// Metrics are the derived values every rule reads from.
type Metrics struct {
	CurrentValue     decimal.Decimal `json:"current_value"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	UnrealizedProfit decimal.Decimal `json:"unrealized_profit"`
	ProfitRatePct    decimal.Decimal `json:"profit_rate"`
	SharesGap        int64           `json:"shares_gap"`
}

// ZeroCost describes whether a partial sale can recover the whole cost basis.
type ZeroCost struct {
	Possible        bool            `json:"possible"`
	SharesToSell    int64           `json:"shares_to_sell"`
	Proceeds        decimal.Decimal `json:"proceeds"`
	RemainingShares int64           `json:"remaining_shares"`
	RemainingCost   decimal.Decimal `json:"remaining_cost"`
}

// Action is the primary recommendation.
type Action struct {
	Label      string `json:"label"`
	Suggestion string `json:"suggestion"`
	Tone       Tone   `json:"tone"`
}

// Risk holds the volatility and position-size tiers.
type Risk struct {
	Volatility Tier `json:"volatility"`
	Position   Tier `json:"position"`
}

// BandAdvice is the trading-band heuristic.
type BandAdvice struct {
	Advice         string          `json:"advice"`
	Detail         string          `json:"detail"`
	ProfitEstimate decimal.Decimal `json:"profit_estimate"`
}

// Funding is the cash needed to reach the target position.
type Funding struct {
	FundsNeeded decimal.Decimal `json:"funds_needed"`
	Advice      string          `json:"advice"`
	Strategy    string          `json:"strategy"`
}

// Progress measures how close the holding is to a zero-cost position.
type Progress struct {
	Percent decimal.Decimal `json:"percent"`
	Tone    Tone            `json:"tone"`
	Advice  string          `json:"advice"`
	Detail  string          `json:"detail"`
}

// TimeEstimate is a rough horizon to zero cost. Months is nil when no
// estimate applies (already achievable or currently at a loss).
type TimeEstimate struct {
	Months *int64 `json:"months,omitempty"`
	Text   string `json:"text"`
}

// Recommendation is the full output of Evaluate.
type Recommendation struct {
	Code         string           `json:"code"`
	Metrics      Metrics          `json:"metrics"`
	ZeroCost     ZeroCost         `json:"zero_cost"`
	Action       Action           `json:"action"`
	Risk         Risk             `json:"risk"`
	Band         BandAdvice       `json:"band"`
	Funding      Funding          `json:"funding"`
	Progress     Progress         `json:"progress"`
	TimeEstimate TimeEstimate     `json:"time_estimate"`
	ActionSteps  []string         `json:"action_steps"`
	Error        *EvaluationError `json:"error,omitempty"`
}

// Degraded reports whether this is a fallback built from an evaluation error.
func (r Recommendation) Degraded() bool {
	return r.Error != nil
}
