package trading

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TradingService records trades and applies them to positions and funds
type TradingService struct {
	db       *sql.DB
	trades   *TradeRepository
	holdings *holdings.Repository
	funds    *funds.Repository
	now      func() time.Time
	log      zerolog.Logger
}

// NewTradingService creates a trading service. db is the strategy.db
// connection; every trade is applied in one transaction on it.
func NewTradingService(
	db *sql.DB,
	trades *TradeRepository,
	holdingsRepo *holdings.Repository,
	fundsRepo *funds.Repository,
	log zerolog.Logger,
) *TradingService {
	return &TradingService{
		db:       db,
		trades:   trades,
		holdings: holdingsRepo,
		funds:    fundsRepo,
		now:      time.Now,
		log:      log.With().Str("service", "trading").Logger(),
	}
}

// RecordTrade stores the trade, updates the stock position and moves money
// on the fund account.
//
// A buy adds shares and folds price and fees into the average cost; the
// full outlay moves from available to invested. A sell removes shares at
// the current average cost; the net proceeds return to available.
func (s *TradingService) RecordTrade(ctx context.Context, in RecordTradeInput) (*Trade, error) {
	trade := Trade{
		StockCode: holdings.NormalizeCode(in.StockCode),
		Type:      TradeType(strings.ToLower(strings.TrimSpace(string(in.Type)))),
		Shares:    in.Shares,
		Price:     in.Price,
		Fees:      in.Fees,
		TradeDate: strings.TrimSpace(in.TradeDate),
		Notes:     in.Notes,
	}
	if trade.TradeDate == "" {
		trade.TradeDate = s.now().Format(TradeDateLayout)
	}
	if err := trade.Validate(); err != nil {
		return nil, err
	}

	var id int64
	err := database.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		stock, err := s.holdings.WithTx(tx).GetByCode(ctx, trade.StockCode)
		if err != nil {
			return err
		}

		shares, avgCost, invested, available, err := applyTrade(*stock, trade)
		if err != nil {
			return err
		}

		id, err = s.trades.WithTx(tx).Create(ctx, trade)
		if err != nil {
			return err
		}
		if err := s.holdings.WithTx(tx).UpdatePosition(ctx, trade.StockCode, shares, avgCost, trade.Fees); err != nil {
			return err
		}
		return s.funds.WithTx(tx).Move(ctx, invested, available)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record %s of %s: %w", trade.Type, trade.StockCode, err)
	}

	s.log.Info().
		Str("code", trade.StockCode).
		Str("type", string(trade.Type)).
		Int64("shares", trade.Shares).
		Str("price", trade.Price.String()).
		Msg("Trade recorded")

	return s.trades.GetByID(ctx, id)
}

// applyTrade returns the stock's new share count and average cost plus the
// invested and available deltas for the fund account.
func applyTrade(stock holdings.Stock, trade Trade) (shares int64, avgCost, invested, available decimal.Decimal, err error) {
	switch trade.Type {
	case TradeTypeBuy:
		shares = stock.CurrentShares + trade.Shares
		outlay := trade.Gross().Add(trade.Fees)
		basis := decimal.NewFromInt(stock.CurrentShares).Mul(stock.AvgCost).Add(outlay)
		avgCost = basis.Div(decimal.NewFromInt(shares))
		return shares, avgCost, outlay, outlay.Neg(), nil

	case TradeTypeSell:
		if trade.Shares > stock.CurrentShares {
			return 0, decimal.Zero, decimal.Zero, decimal.Zero,
				fmt.Errorf("%w: selling %d of %d shares", domain.ErrInsufficientShares, trade.Shares, stock.CurrentShares)
		}
		shares = stock.CurrentShares - trade.Shares
		released := decimal.NewFromInt(trade.Shares).Mul(stock.AvgCost)
		proceeds := trade.Gross().Sub(trade.Fees)
		return shares, stock.AvgCost, released.Neg(), proceeds, nil
	}

	return 0, decimal.Zero, decimal.Zero, decimal.Zero, fmt.Errorf("%w: unknown trade type %q", domain.ErrInvalidTrade, trade.Type)
}

// List returns all trades, or only those of code when it is not empty.
func (s *TradingService) List(ctx context.Context, code string) ([]Trade, error) {
	if strings.TrimSpace(code) != "" {
		return s.trades.ListByCode(ctx, code)
	}
	return s.trades.List(ctx)
}
