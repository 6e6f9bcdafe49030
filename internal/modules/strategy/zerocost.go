package strategy

import "github.com/shopspring/decimal"

// sharesToRecoverCost returns the smallest whole number of shares whose
// sale at price covers totalCost, i.e. ceil(totalCost / price).
// ok is false when price is not positive.
func sharesToRecoverCost(totalCost, price decimal.Decimal) (shares int64, ok bool) {
	if !price.IsPositive() {
		return 0, false
	}

	q, r := totalCost.QuoRem(price, 0)
	if r.IsPositive() {
		q = q.Add(decimal.NewFromInt(1))
	}
	return q.IntPart(), true
}

// zeroCost computes feasibility of selling part of the position so the
// remaining shares carry no cost basis. The sale must leave at least one
// share, so valid counts are [1, shares-1].
func zeroCost(p Position, m Metrics) ZeroCost {
	out := ZeroCost{
		RemainingShares: p.CurrentShares,
		RemainingCost:   m.TotalCost,
		Proceeds:        decimal.Zero,
	}

	if !m.UnrealizedProfit.IsPositive() || p.CurrentShares <= 0 || !m.TotalCost.IsPositive() {
		return out
	}

	n, ok := sharesToRecoverCost(m.TotalCost, p.CurrentPrice)
	if !ok || n < 1 || n > p.CurrentShares-1 {
		return out
	}

	out.Possible = true
	out.SharesToSell = n
	out.Proceeds = decimal.NewFromInt(n).Mul(p.CurrentPrice).Sub(m.TotalCost)
	out.RemainingShares = p.CurrentShares - n
	out.RemainingCost = decimal.Zero
	return out
}
