package snapshots

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/strategy"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// StockLister lists the holdings to evaluate.
type StockLister interface {
	List(ctx context.Context) ([]holdings.Stock, error)
}

// SnapshotJob evaluates every holding and stores the results under one run id
type SnapshotJob struct {
	stocks  StockLister
	repo    *Repository
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewSnapshotJob creates the snapshot job
func NewSnapshotJob(stocks StockLister, repo *Repository, log zerolog.Logger) *SnapshotJob {
	return &SnapshotJob{
		stocks:  stocks,
		repo:    repo,
		timeout: 2 * time.Minute,
		now:     time.Now,
		log:     log.With().Str("job", "strategy_snapshot").Logger(),
	}
}

// Name returns the job name
func (j *SnapshotJob) Name() string {
	return "strategy_snapshot"
}

// Run executes one scheduled run
func (j *SnapshotJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.RunOnce(ctx)
	return err
}

// RunOnce evaluates all holdings and stores one snapshot per holding.
// Degraded evaluations are stored too, carrying their error text.
func (j *SnapshotJob) RunOnce(ctx context.Context) (*RunResult, error) {
	stocks, err := j.stocks.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	result := &RunResult{RunID: uuid.NewString()}
	payloads := make([]Payload, 0, len(stocks))
	for _, stock := range stocks {
		pos := stock.Position()
		rec := strategy.EvaluateOrDegrade(pos)
		if rec.Degraded() {
			result.Degraded++
			j.log.Warn().Str("code", stock.Code).Str("error", rec.Error.Message).Msg("Degraded evaluation")
		}
		payloads = append(payloads, NewPayload(pos, rec))
	}

	if len(payloads) > 0 {
		if err := j.repo.InsertRun(ctx, result.RunID, j.now(), payloads); err != nil {
			return nil, err
		}
	}
	result.Stored = len(payloads)

	j.log.Info().
		Str("run_id", result.RunID).
		Int("stored", result.Stored).
		Int("degraded", result.Degraded).
		Msg("Strategy snapshot stored")

	return result, nil
}
