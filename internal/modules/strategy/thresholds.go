package strategy

import "github.com/shopspring/decimal"

// Rule thresholds. Values are hand-tuned and must stay as they are;
// percentages are expressed in percent units (20 == 20%).
var (
	// Action selection
	TakeProfitRatePct  = decimal.NewFromInt(20)
	AverageDownRatePct = decimal.NewFromInt(-10)

	// Volatility tiers on |profit rate|
	HighVolatilityRatePct   = decimal.NewFromInt(15)
	MediumVolatilityRatePct = decimal.NewFromInt(5)

	// Position-size tiers relative to target shares
	HighPositionFactor   = decimal.RequireFromString("1.2")
	MediumPositionFactor = decimal.RequireFromString("0.8")

	// Banded advice
	BandHighRatePct = decimal.NewFromInt(15)
	BandLowRatePct  = decimal.NewFromInt(-10)
	BandTrimFactor  = decimal.RequireFromString("0.2") // of current shares
	BandAddFactor   = decimal.RequireFromString("0.1") // of target shares

	// Funding
	TrancheFundsPct = 20 // share of available funds per batch buy

	// Progress and timing
	ProgressCapPct    = decimal.NewFromInt(99)
	ProgressDonePct   = decimal.NewFromInt(100)
	ZeroCostHorizonMo = decimal.NewFromInt(12)
	ZeroCostPriceMult = decimal.NewFromInt(2) // doubling heuristic when at a loss

	// Alert and stop levels used by action steps
	AlertUpFactor   = decimal.RequireFromString("1.1")
	AlertDownFactor = decimal.RequireFromString("0.9")
	StopLossFactor  = decimal.RequireFromString("0.85")
	StopLossPct     = 15
)

var hundred = decimal.NewFromInt(100)
