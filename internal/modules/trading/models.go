// Package trading records buys and sells against tracked stocks and keeps
// positions and the fund account in step with them.
package trading

import (
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/shopspring/decimal"
)

// TradeDateLayout is the accepted trade date format.
const TradeDateLayout = "2006-01-02"

// TradeType is buy or sell.
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// Trade is one ledger entry.
type Trade struct {
	ID        int64           `json:"id"`
	StockCode string          `json:"stock_code"`
	StockName string          `json:"stock_name,omitempty"`
	Type      TradeType       `json:"trade_type"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Fees      decimal.Decimal `json:"fees"`
	TradeDate string          `json:"trade_date"`
	Notes     string          `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate checks the trade fields before insertion.
func (t Trade) Validate() error {
	if t.StockCode == "" {
		return fmt.Errorf("%w: stock code is required", domain.ErrInvalidTrade)
	}
	if t.Type != TradeTypeBuy && t.Type != TradeTypeSell {
		return fmt.Errorf("%w: trade type must be buy or sell, got %q", domain.ErrInvalidTrade, t.Type)
	}
	if t.Shares <= 0 {
		return fmt.Errorf("%w: shares must be positive", domain.ErrInvalidTrade)
	}
	if !t.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", domain.ErrInvalidTrade)
	}
	if t.Fees.IsNegative() {
		return fmt.Errorf("%w: fees must not be negative", domain.ErrInvalidTrade)
	}
	if _, err := time.Parse(TradeDateLayout, t.TradeDate); err != nil {
		return fmt.Errorf("%w: trade date must be YYYY-MM-DD", domain.ErrInvalidTrade)
	}
	return nil
}

// Gross is shares times price.
func (t Trade) Gross() decimal.Decimal {
	return decimal.NewFromInt(t.Shares).Mul(t.Price)
}

// RecordTradeInput is the payload for recording a trade. An empty trade
// date means today.
type RecordTradeInput struct {
	StockCode string          `json:"stock_code"`
	Type      TradeType       `json:"trade_type"`
	Shares    int64           `json:"shares"`
	Price     decimal.Decimal `json:"price"`
	Fees      decimal.Decimal `json:"fees"`
	TradeDate string          `json:"trade_date"`
	Notes     string          `json:"notes"`
}
