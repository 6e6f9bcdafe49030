// Package snapshots keeps a history of strategy recommendations per
// holding, recorded by a scheduled job.
package snapshots

import (
	"time"

	"github.com/aristath/zerocost/internal/modules/strategy"
)

// Payload is the msgpack-encoded body of a snapshot row. Amounts are kept
// as decimal strings so history survives float rounding.
type Payload struct {
	Code             string   `msgpack:"code" json:"code"`
	CurrentPrice     string   `msgpack:"current_price" json:"current_price"`
	CurrentShares    int64    `msgpack:"current_shares" json:"current_shares"`
	AvgCost          string   `msgpack:"avg_cost" json:"avg_cost"`
	TargetShares     int64    `msgpack:"target_shares" json:"target_shares"`
	ProfitRatePct    string   `msgpack:"profit_rate" json:"profit_rate"`
	Action           string   `msgpack:"action" json:"action"`
	Tone             string   `msgpack:"tone" json:"tone"`
	ZeroCostPossible bool     `msgpack:"zero_cost_possible" json:"zero_cost_possible"`
	SharesToSell     int64    `msgpack:"shares_to_sell" json:"shares_to_sell"`
	ProgressPct      float64  `msgpack:"progress" json:"progress"`
	Volatility       string   `msgpack:"volatility" json:"volatility"`
	PositionRisk     string   `msgpack:"position_risk" json:"position_risk"`
	TimeEstimate     string   `msgpack:"time_estimate" json:"time_estimate"`
	ActionSteps      []string `msgpack:"action_steps" json:"action_steps"`
	Error            string   `msgpack:"error,omitempty" json:"error,omitempty"`
}

// NewPayload flattens a recommendation for storage.
func NewPayload(p strategy.Position, rec strategy.Recommendation) Payload {
	out := Payload{
		Code:             p.Code,
		CurrentPrice:     p.CurrentPrice.String(),
		CurrentShares:    p.CurrentShares,
		AvgCost:          p.AvgCost.String(),
		TargetShares:     p.TargetShares,
		ProfitRatePct:    rec.Metrics.ProfitRatePct.String(),
		Action:           rec.Action.Label,
		Tone:             string(rec.Action.Tone),
		ZeroCostPossible: rec.ZeroCost.Possible,
		SharesToSell:     rec.ZeroCost.SharesToSell,
		ProgressPct:      rec.Progress.Percent.InexactFloat64(),
		Volatility:       string(rec.Risk.Volatility),
		PositionRisk:     string(rec.Risk.Position),
		TimeEstimate:     rec.TimeEstimate.Text,
		ActionSteps:      rec.ActionSteps,
	}
	if rec.Error != nil {
		out.Error = rec.Error.Message
	}
	return out
}

// Snapshot is one stored evaluation.
type Snapshot struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	StockCode string    `json:"stock_code"`
	Action    string    `json:"action"`
	Progress  float64   `json:"progress"`
	Payload   Payload   `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// RunResult summarises one snapshot run.
type RunResult struct {
	RunID    string `json:"run_id"`
	Stored   int    `json:"stored"`
	Degraded int    `json:"degraded"`
}
