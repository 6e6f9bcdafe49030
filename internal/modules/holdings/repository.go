package holdings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// stockColumns must match scanStock
const stockColumns = `id, code, name, market, target_shares, initial_investment, current_shares, avg_cost, total_fees, current_price, created_at`

// Repository handles stock persistence in strategy.db
type Repository struct {
	db  database.Querier
	log zerolog.Logger
}

// NewRepository creates a stock repository. db may be a *sql.DB or a *sql.Tx.
func NewRepository(db database.Querier, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "stocks").Logger(),
	}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx, log: r.log}
}

// NormalizeCode upper-cases and trims a stock code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Create inserts a stock and returns its id.
// A duplicate code yields domain.ErrStockExists.
func (r *Repository) Create(ctx context.Context, s Stock) (int64, error) {
	exists, err := r.Exists(ctx, s.Code)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", domain.ErrStockExists, s.Code)
	}

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO stocks
		(code, name, market, target_shares, initial_investment, current_shares, avg_cost, total_fees, current_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		NormalizeCode(s.Code),
		s.Name,
		s.Market,
		s.TargetShares,
		domain.MoneyValue(s.InitialInvestment),
		s.CurrentShares,
		domain.MoneyValue(s.AvgCost),
		domain.MoneyValue(s.TotalFees),
		domain.MoneyValue(s.CurrentPrice),
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create stock: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read stock id: %w", err)
	}
	return id, nil
}

// Exists reports whether a stock with code is tracked.
func (r *Repository) Exists(ctx context.Context, code string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, "SELECT 1 FROM stocks WHERE code = ? LIMIT 1", NormalizeCode(code)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check stock existence: %w", err)
	}
	return true, nil
}

// GetByCode returns the stock with code or domain.ErrStockNotFound.
func (r *Repository) GetByCode(ctx context.Context, code string) (*Stock, error) {
	code = NormalizeCode(code)
	row := r.db.QueryRowContext(ctx, "SELECT "+stockColumns+" FROM stocks WHERE code = ?", code)
	s, err := scanStock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrStockNotFound, code)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %s: %w", code, err)
	}
	return &s, nil
}

// GetByID returns the stock with id or domain.ErrStockNotFound.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Stock, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+stockColumns+" FROM stocks WHERE id = ?", id)
	s, err := scanStock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", domain.ErrStockNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stock %d: %w", id, err)
	}
	return &s, nil
}

// List returns all stocks, newest first.
func (r *Repository) List(ctx context.Context) ([]Stock, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+stockColumns+" FROM stocks ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	defer rows.Close()

	stocks := []Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}
	return stocks, nil
}

// Count returns the number of tracked stocks.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM stocks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count stocks: %w", err)
	}
	return n, nil
}

// UpdateMarket sets the current price and target of a stock.
func (r *Repository) UpdateMarket(ctx context.Context, id int64, price decimal.Decimal, target int64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE stocks SET current_price = ?, target_shares = ? WHERE id = ?",
		domain.MoneyValue(price), target, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update stock %d: %w", id, err)
	}
	return requireRow(res, fmt.Sprintf("id %d", id))
}

// UpdatePrice sets the current price of the stock with code.
func (r *Repository) UpdatePrice(ctx context.Context, code string, price decimal.Decimal) error {
	code = NormalizeCode(code)
	res, err := r.db.ExecContext(ctx, "UPDATE stocks SET current_price = ? WHERE code = ?", domain.MoneyValue(price), code)
	if err != nil {
		return fmt.Errorf("failed to update price of %s: %w", code, err)
	}
	return requireRow(res, code)
}

// UpdatePosition stores the result of a trade: shares, average cost and
// the fee total increment.
func (r *Repository) UpdatePosition(ctx context.Context, code string, shares int64, avgCost, addFees decimal.Decimal) error {
	code = NormalizeCode(code)
	res, err := r.db.ExecContext(ctx, `
		UPDATE stocks
		SET current_shares = ?, avg_cost = ?, total_fees = total_fees + ?
		WHERE code = ?
	`, shares, domain.MoneyValue(avgCost), domain.MoneyValue(addFees), code)
	if err != nil {
		return fmt.Errorf("failed to update position of %s: %w", code, err)
	}
	return requireRow(res, code)
}

func requireRow(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", domain.ErrStockNotFound, key)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanStock(row scanner) (Stock, error) {
	var s Stock
	var createdAt int64
	err := row.Scan(
		&s.ID,
		&s.Code,
		&s.Name,
		&s.Market,
		&s.TargetShares,
		domain.ScanMoney(&s.InitialInvestment),
		&s.CurrentShares,
		domain.ScanMoney(&s.AvgCost),
		domain.ScanMoney(&s.TotalFees),
		domain.ScanMoney(&s.CurrentPrice),
		&createdAt,
	)
	if err != nil {
		return s, err
	}
	s.CreatedAt = time.Unix(createdAt, 0).UTC()
	return s, nil
}
