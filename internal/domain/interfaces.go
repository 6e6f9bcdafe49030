package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceProvider returns the latest traded price for a symbol.
// Implemented by the Alpaca market data client; tests use fakes.
type PriceProvider interface {
	LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// ObjectUploader stores a local file under key in remote object storage.
type ObjectUploader interface {
	Upload(ctx context.Context, key, path string) error
}
