package alpaca

import (
	"context"
	"errors"
	"testing"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	trades map[string]*marketdata.Trade
	asked  []string
}

func (f *fakeFetcher) GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error) {
	f.asked = append(f.asked, symbol)
	trade, ok := f.trades[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return trade, nil
}

func TestLatestPrice(t *testing.T) {
	fetcher := &fakeFetcher{trades: map[string]*marketdata.Trade{
		"AAPL": {Price: 187.25},
		"ZERO": {Price: 0},
	}}
	c := &Client{md: fetcher, log: zerolog.Nop()}
	ctx := context.Background()

	price, err := c.LatestPrice(ctx, " aapl ")
	require.NoError(t, err)
	assert.Equal(t, "187.25", price.String())
	assert.Equal(t, []string{"AAPL"}, fetcher.asked)

	_, err = c.LatestPrice(ctx, "ZERO")
	assert.ErrorContains(t, err, "no trade price")

	_, err = c.LatestPrice(ctx, "MSFT")
	assert.ErrorContains(t, err, "symbol not found")
}

func TestLatestPrice_CancelledContext(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := &Client{md: fetcher, log: zerolog.Nop()}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.LatestPrice(ctx, "AAPL")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, fetcher.asked)
}
