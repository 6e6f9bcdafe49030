// Package prices refreshes holding prices from a market data provider.
package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// HoldingStore is what the job reads and writes.
type HoldingStore interface {
	List(ctx context.Context) ([]holdings.Stock, error)
	UpdatePrice(ctx context.Context, code string, price decimal.Decimal) error
}

// SyncResult summarises one sync run
type SyncResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// PriceSyncJob updates current_price of every holding
type PriceSyncJob struct {
	store    HoldingStore
	provider domain.PriceProvider
	timeout  time.Duration
	log      zerolog.Logger
}

// NewPriceSyncJob creates the price sync job
func NewPriceSyncJob(store HoldingStore, provider domain.PriceProvider, log zerolog.Logger) *PriceSyncJob {
	return &PriceSyncJob{
		store:    store,
		provider: provider,
		timeout:  time.Minute,
		log:      log.With().Str("job", "price_sync").Logger(),
	}
}

// Name returns the job name
func (j *PriceSyncJob) Name() string {
	return "price_sync"
}

// Run executes one scheduled sync
func (j *PriceSyncJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.Sync(ctx)
	return err
}

// Sync fetches a price per holding. A provider failure skips that holding only.
func (j *PriceSyncJob) Sync(ctx context.Context) (*SyncResult, error) {
	stocks, err := j.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}

	result := &SyncResult{}
	for _, stock := range stocks {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		price, err := j.provider.LatestPrice(ctx, stock.Code)
		if err != nil {
			j.log.Warn().Err(err).Str("code", stock.Code).Msg("Price fetch failed, skipping")
			result.Failed++
			continue
		}
		if !price.IsPositive() || price.Equal(stock.CurrentPrice) {
			result.Skipped++
			continue
		}

		if err := j.store.UpdatePrice(ctx, stock.Code, price); err != nil {
			return result, fmt.Errorf("failed to update price for %s: %w", stock.Code, err)
		}
		result.Updated++
	}

	j.log.Info().
		Int("updated", result.Updated).
		Int("skipped", result.Skipped).
		Int("failed", result.Failed).
		Msg("Price sync completed")

	return result, nil
}
