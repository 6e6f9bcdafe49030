package trading

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
)

// tradesColumns must match scanTrade; s.name comes from the stocks join
const tradesColumns = `t.id, t.stock_code, s.name, t.trade_type, t.shares, t.price, t.fees, t.trade_date, t.notes, t.created_at`

// TradeRepository handles trade ledger persistence in strategy.db
type TradeRepository struct {
	db  database.Querier
	log zerolog.Logger
}

// NewTradeRepository creates a trade repository. db may be a *sql.DB or a *sql.Tx.
func NewTradeRepository(db database.Querier, log zerolog.Logger) *TradeRepository {
	return &TradeRepository{
		db:  db,
		log: log.With().Str("repo", "trade").Logger(),
	}
}

// WithTx returns a copy of the repository bound to tx.
func (r *TradeRepository) WithTx(tx *sql.Tx) *TradeRepository {
	return &TradeRepository{db: tx, log: r.log}
}

// Create validates and inserts a trade, returning its id.
func (r *TradeRepository) Create(ctx context.Context, trade Trade) (int64, error) {
	if err := trade.Validate(); err != nil {
		return 0, fmt.Errorf("failed to create trade: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO trades
		(stock_code, trade_type, shares, price, fees, trade_date, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		strings.ToUpper(strings.TrimSpace(trade.StockCode)),
		string(trade.Type),
		trade.Shares,
		domain.MoneyValue(trade.Price),
		domain.MoneyValue(trade.Fees),
		trade.TradeDate,
		trade.Notes,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create trade: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read trade id: %w", err)
	}

	r.log.Info().
		Str("code", trade.StockCode).
		Str("type", string(trade.Type)).
		Int64("shares", trade.Shares).
		Msg("Trade created")

	return id, nil
}

// GetByID returns one trade.
func (r *TradeRepository) GetByID(ctx context.Context, id int64) (*Trade, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+tradesColumns+" FROM trades t JOIN stocks s ON t.stock_code = s.code WHERE t.id = ?", id)
	trade, err := scanTrade(row)
	if err != nil {
		return nil, fmt.Errorf("failed to get trade %d: %w", id, err)
	}
	return &trade, nil
}

// List returns all trades, latest trade date first.
func (r *TradeRepository) List(ctx context.Context) ([]Trade, error) {
	return r.query(ctx, "SELECT "+tradesColumns+`
		FROM trades t
		JOIN stocks s ON t.stock_code = s.code
		ORDER BY t.trade_date DESC, t.created_at DESC, t.id DESC`)
}

// ListByCode returns the trades of one stock, latest trade date first.
func (r *TradeRepository) ListByCode(ctx context.Context, code string) ([]Trade, error) {
	return r.query(ctx, "SELECT "+tradesColumns+`
		FROM trades t
		JOIN stocks s ON t.stock_code = s.code
		WHERE t.stock_code = ?
		ORDER BY t.trade_date DESC, t.created_at DESC, t.id DESC`,
		strings.ToUpper(strings.TrimSpace(code)))
}

// Count returns the number of recorded trades.
func (r *TradeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM trades").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}
	return n, nil
}

func (r *TradeRepository) query(ctx context.Context, query string, args ...interface{}) ([]Trade, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	trades := []Trade{}
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, trade)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trades: %w", err)
	}
	return trades, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTrade(row scanner) (Trade, error) {
	var t Trade
	var tradeType string
	var createdAt int64
	err := row.Scan(
		&t.ID,
		&t.StockCode,
		&t.StockName,
		&tradeType,
		&t.Shares,
		domain.ScanMoney(&t.Price),
		domain.ScanMoney(&t.Fees),
		&t.TradeDate,
		&t.Notes,
		&createdAt,
	)
	if err != nil {
		return t, err
	}
	t.Type = TradeType(tradeType)
	t.CreatedAt = time.Unix(createdAt, 0).UTC()
	return t, nil
}
