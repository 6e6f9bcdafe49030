package funds

import (
	"sort"

	"github.com/shopspring/decimal"
)

// MaxAllocationShare caps any single suggestion at this fraction of the
// available funds.
var MaxAllocationShare = decimal.RequireFromString("0.3")

var hundred = decimal.NewFromInt(100)

// Allocate spreads available funds over holdings that are below target.
// Candidates are served largest funding gap first; each receives at most
// MaxAllocationShare of the available funds and only whole shares are
// suggested.
func Allocate(available decimal.Decimal, candidates []Candidate) []Suggestion {
	suggestions := []Suggestion{}
	if !available.IsPositive() {
		return suggestions
	}

	eligible := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.CurrentShares < c.TargetShares && c.CurrentPrice.IsPositive() {
			eligible = append(eligible, c)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return fundsNeeded(eligible[i]).GreaterThan(fundsNeeded(eligible[j]))
	})

	perHolding := available.Mul(MaxAllocationShare)
	remaining := available
	for _, c := range eligible {
		if !remaining.IsPositive() {
			break
		}

		budget := decimal.Min(fundsNeeded(c), remaining, perHolding)
		shares := budget.Div(c.CurrentPrice).Floor().IntPart()
		if shares <= 0 {
			continue
		}

		amount := decimal.NewFromInt(shares).Mul(c.CurrentPrice)
		suggestions = append(suggestions, Suggestion{
			Code:       c.Code,
			Name:       c.Name,
			Shares:     shares,
			Amount:     amount,
			Percentage: amount.Div(available).Mul(hundred).Round(2),
		})
		remaining = remaining.Sub(amount)
	}

	return suggestions
}

func fundsNeeded(c Candidate) decimal.Decimal {
	return decimal.NewFromInt(c.TargetShares - c.CurrentShares).Mul(c.CurrentPrice)
}
