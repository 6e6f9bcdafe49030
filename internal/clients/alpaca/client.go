// Package alpaca provides a latest-price client backed by Alpaca market data.
package alpaca

import (
	"context"
	"fmt"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// tradeFetcher is the part of the marketdata client used here.
type tradeFetcher interface {
	GetLatestTrade(symbol string, req marketdata.GetLatestTradeRequest) (*marketdata.Trade, error)
}

// Client returns latest trade prices
type Client struct {
	md  tradeFetcher
	log zerolog.Logger
}

var _ domain.PriceProvider = (*Client)(nil)

// NewClient creates a market data client. An empty baseURL keeps the SDK default.
func NewClient(apiKey, apiSecret, baseURL string, log zerolog.Logger) *Client {
	return &Client{
		md: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
		log: log.With().Str("client", "alpaca").Logger(),
	}
}

// LatestPrice returns the price of the most recent trade for symbol.
func (c *Client) LatestPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, err
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	trade, err := c.md.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get latest trade for %s: %w", symbol, err)
	}
	if trade == nil || trade.Price <= 0 {
		return decimal.Zero, fmt.Errorf("no trade price for %s", symbol)
	}

	c.log.Debug().Str("symbol", symbol).Float64("price", trade.Price).Msg("Fetched latest trade")
	return decimal.NewFromFloat(trade.Price), nil
}
