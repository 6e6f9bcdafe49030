// Package strategy evaluates a single holding against the zero-cost
// playbook: sell just enough shares to recover the cost basis and keep
// the remainder for free.
package strategy

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Evaluate derives a full recommendation from a position snapshot.
// It is pure and safe for concurrent use. Negative inputs yield a
// KindInvalidInput error; an unexpected failure during evaluation is
// recovered and reported as KindComputation.
func Evaluate(p Position) (rec Recommendation, err error) {
	if verr := validate(p); verr != nil {
		return Recommendation{}, verr
	}

	defer func() {
		if r := recover(); r != nil {
			rec = Recommendation{}
			err = &EvaluationError{Kind: KindComputation, Message: fmt.Sprint(r)}
		}
	}()

	m := metrics(p)
	zc := zeroCost(p, m)

	rec = Recommendation{
		Code:         p.Code,
		Metrics:      m,
		ZeroCost:     zc,
		Action:       action(m, zc),
		Risk:         risk(p, m),
		Band:         band(p, m),
		Funding:      funding(p, m),
		Progress:     progress(p, m, zc),
		TimeEstimate: timeEstimate(m, zc),
		ActionSteps:  actionSteps(p, m, zc),
	}
	rec.Metrics.ProfitRatePct = m.ProfitRatePct.Round(2)
	return rec, nil
}

// EvaluateOrDegrade never fails: errors are folded into a degraded
// recommendation.
func EvaluateOrDegrade(p Position) Recommendation {
	rec, err := Evaluate(p)
	if err != nil {
		return Degraded(p.Code, err)
	}
	return rec
}

func validate(p Position) error {
	switch {
	case p.CurrentShares < 0:
		return &EvaluationError{Kind: KindInvalidInput, Message: fmt.Sprintf("current shares must not be negative, got %d", p.CurrentShares)}
	case p.TargetShares < 0:
		return &EvaluationError{Kind: KindInvalidInput, Message: fmt.Sprintf("target shares must not be negative, got %d", p.TargetShares)}
	case p.CurrentPrice.IsNegative():
		return &EvaluationError{Kind: KindInvalidInput, Message: "current price must not be negative, got " + p.CurrentPrice.String()}
	case p.AvgCost.IsNegative():
		return &EvaluationError{Kind: KindInvalidInput, Message: "average cost must not be negative, got " + p.AvgCost.String()}
	}
	return nil
}

func metrics(p Position) Metrics {
	shares := decimal.NewFromInt(p.CurrentShares)
	m := Metrics{
		CurrentValue:  shares.Mul(p.CurrentPrice),
		TotalCost:     shares.Mul(p.AvgCost),
		ProfitRatePct: decimal.Zero,
		SharesGap:     p.TargetShares - p.CurrentShares,
	}
	m.UnrealizedProfit = m.CurrentValue.Sub(m.TotalCost)
	if m.TotalCost.IsPositive() {
		m.ProfitRatePct = m.UnrealizedProfit.Div(m.TotalCost).Mul(hundred)
	}
	return m
}

func action(m Metrics, zc ZeroCost) Action {
	rate := m.ProfitRatePct
	switch {
	case zc.Possible:
		return Action{
			Label:      "Partial profit-taking lock",
			Suggestion: fmt.Sprintf("Sell %s; the remaining %s will carry zero cost", shareCount(zc.SharesToSell), shareCount(zc.RemainingShares)),
			Tone:       ToneSuccess,
		}
	case rate.GreaterThan(TakeProfitRatePct):
		return Action{
			Label:      "Consider partial profit-taking",
			Suggestion: fmt.Sprintf("Up %s%%; consider selling part of the position", rate.StringFixed(1)),
			Tone:       ToneSuccess,
		}
	case rate.LessThan(AverageDownRatePct):
		return Action{
			Label:      "Consider averaging down",
			Suggestion: fmt.Sprintf("Down %s%%; consider buying more at the lower price to reduce cost", rate.Abs().StringFixed(1)),
			Tone:       ToneDanger,
		}
	case m.SharesGap > 0:
		return Action{
			Label:      "Continue building position",
			Suggestion: fmt.Sprintf("%s short of target; buy in batches", shareCount(m.SharesGap)),
			Tone:       TonePrimary,
		}
	default:
		return Action{
			Label:      "Hold and observe",
			Suggestion: "Position size is reasonable; keep watching the market",
			Tone:       ToneInfo,
		}
	}
}

func risk(p Position, m Metrics) Risk {
	r := Risk{Volatility: TierLow, Position: TierLow}

	absRate := m.ProfitRatePct.Abs()
	switch {
	case absRate.GreaterThan(HighVolatilityRatePct):
		r.Volatility = TierHigh
	case absRate.GreaterThan(MediumVolatilityRatePct):
		r.Volatility = TierMedium
	}

	if p.TargetShares == 0 {
		return r
	}
	shares := decimal.NewFromInt(p.CurrentShares)
	target := decimal.NewFromInt(p.TargetShares)
	switch {
	case shares.GreaterThan(target.Mul(HighPositionFactor)):
		r.Position = TierHigh
	case shares.GreaterThan(target.Mul(MediumPositionFactor)):
		r.Position = TierMedium
	}
	return r
}

// bandTrimShares is the number of shares to sell at the top of the band.
func bandTrimShares(shares int64) int64 {
	return atLeastOne(decimal.NewFromInt(shares).Mul(BandTrimFactor))
}

// bandAddShares is the number of shares to buy per tranche at the bottom of the band.
func bandAddShares(target int64) int64 {
	return atLeastOne(decimal.NewFromInt(target).Mul(BandAddFactor))
}

// shareCount renders n with a singular or plural noun.
func shareCount(n int64) string {
	return pluralize(n, "share")
}

func pluralize(n int64, noun string) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func atLeastOne(d decimal.Decimal) int64 {
	n := d.Floor().IntPart()
	if n < 1 {
		return 1
	}
	return n
}

func band(p Position, m Metrics) BandAdvice {
	rate := m.ProfitRatePct
	switch {
	case rate.GreaterThan(BandHighRatePct):
		n := bandTrimShares(p.CurrentShares)
		return BandAdvice{
			Advice:         "High in the band, consider trimming",
			Detail:         fmt.Sprintf("Price is near the top of its band; consider selling %s to lock in profit", shareCount(n)),
			ProfitEstimate: decimal.NewFromInt(n).Mul(p.CurrentPrice),
		}
	case rate.LessThan(BandLowRatePct):
		n := bandAddShares(p.TargetShares)
		return BandAdvice{
			Advice:         "Low in the band, consider adding",
			Detail:         fmt.Sprintf("Price is near the bottom of its band; consider buying %s to lower cost", shareCount(n)),
			ProfitEstimate: decimal.Zero,
		}
	default:
		return BandAdvice{
			Advice:         "Mid band, hold and wait",
			Detail:         "Price is mid band; hold and wait for a better entry or exit",
			ProfitEstimate: decimal.Zero,
		}
	}
}

func funding(p Position, m Metrics) Funding {
	if m.SharesGap > 0 {
		needed := decimal.NewFromInt(m.SharesGap).Mul(p.CurrentPrice)
		return Funding{
			FundsNeeded: needed,
			Advice:      fmt.Sprintf("Prepare %s to complete the target position", needed.StringFixed(2)),
			Strategy:    fmt.Sprintf("Batch-buy using %d%% of available funds per tranche", TrancheFundsPct),
		}
	}
	return Funding{
		FundsNeeded: decimal.Zero,
		Advice:      "Target position reached; no extra funds needed",
		Strategy:    "Profits can be redeployed into other holdings",
	}
}

func progress(p Position, m Metrics, zc ZeroCost) Progress {
	switch {
	case zc.Possible:
		sold := decimal.NewFromInt(zc.SharesToSell).Mul(p.CurrentPrice)
		return Progress{
			Percent: ProgressDonePct,
			Tone:    ToneSuccess,
			Advice:  fmt.Sprintf("Zero cost is reachable now: after selling %s the rest cost nothing", shareCount(zc.SharesToSell)),
			Detail:  fmt.Sprintf("Selling %s raises %s, covering the cost of the remaining %s", shareCount(zc.SharesToSell), sold.StringFixed(2), shareCount(zc.RemainingShares)),
		}
	case m.UnrealizedProfit.IsPositive() && m.TotalCost.IsPositive():
		pct := m.UnrealizedProfit.Div(m.TotalCost).Mul(hundred)
		return Progress{
			Percent: decimal.Min(pct, ProgressCapPct).Round(2),
			Tone:    TonePrimary,
			Advice:  fmt.Sprintf("%s left to reach zero cost", m.TotalCost.Sub(m.UnrealizedProfit).StringFixed(2)),
			Detail: fmt.Sprintf("Profit %s against total cost %s, %s%% complete",
				m.UnrealizedProfit.StringFixed(2), m.TotalCost.StringFixed(2), pct.StringFixed(1)),
		}
	case m.UnrealizedProfit.IsPositive():
		return Progress{
			Percent: decimal.Zero,
			Tone:    ToneInfo,
			Advice:  "No cost basis recorded; there is no cost to recover",
			Detail:  fmt.Sprintf("All %s of value is profit; record an average cost to track zero-cost progress", m.CurrentValue.StringFixed(2)),
		}
	default:
		rise := decimal.Max(p.AvgCost.Mul(ZeroCostPriceMult).Sub(p.CurrentPrice), decimal.Zero)
		return Progress{
			Percent: decimal.Zero,
			Tone:    ToneDanger,
			Advice:  "Currently at a loss; zero cost is far away",
			Detail:  fmt.Sprintf("Price needs to rise by at least %s to make zero cost possible", rise.StringFixed(2)),
		}
	}
}

func timeEstimate(m Metrics, zc ZeroCost) TimeEstimate {
	switch {
	case zc.Possible:
		return TimeEstimate{Text: "Zero cost already achievable"}
	case m.ProfitRatePct.IsPositive():
		remaining := decimal.NewFromInt(1).Sub(m.UnrealizedProfit.Div(m.TotalCost))
		months := ZeroCostHorizonMo.Mul(remaining).Floor().IntPart()
		if months < 1 {
			months = 1
		}
		return TimeEstimate{Months: &months, Text: fmt.Sprintf("Zero cost expected in about %s", pluralize(months, "month"))}
	default:
		return TimeEstimate{Text: "Not predictable yet"}
	}
}

func actionSteps(p Position, m Metrics, zc ZeroCost) []string {
	rate := m.ProfitRatePct
	switch {
	case zc.Possible:
		return []string{
			fmt.Sprintf("1. Sell %s for %s", shareCount(zc.SharesToSell), decimal.NewFromInt(zc.SharesToSell).Mul(p.CurrentPrice).StringFixed(2)),
			fmt.Sprintf("2. Keep %s at zero cost", shareCount(zc.RemainingShares)),
			"3. Hold on and keep all the upside of the remaining shares",
		}
	case rate.GreaterThan(BandHighRatePct):
		return []string{
			fmt.Sprintf("1. Sell %s to lock in part of the profit", shareCount(bandTrimShares(p.CurrentShares))),
			fmt.Sprintf("2. Set a take-profit stop at %s to protect the rest", p.CurrentPrice.Mul(AlertDownFactor).StringFixed(2)),
			"3. Wait for a pullback before buying back",
		}
	case rate.LessThan(BandLowRatePct):
		return []string{
			fmt.Sprintf("1. Add in batches of %s", shareCount(bandAddShares(p.TargetShares))),
			fmt.Sprintf("2. Set a -%d%% stop-loss at %s to limit risk", StopLossPct, p.AvgCost.Mul(StopLossFactor).StringFixed(2)),
			"3. Be patient while the market recovers",
		}
	default:
		return []string{
			"1. Hold the current position and watch the market",
			fmt.Sprintf("2. Set a sell alert at %s", p.CurrentPrice.Mul(AlertUpFactor).StringFixed(2)),
			fmt.Sprintf("3. Set a buy alert at %s", p.CurrentPrice.Mul(AlertDownFactor).StringFixed(2)),
		}
	}
}
