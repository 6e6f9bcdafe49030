package funds

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrAccountMissing is returned when the fund account row was never seeded.
var ErrAccountMissing = errors.New("fund account not initialised")

// Repository persists the fund account in strategy.db.
type Repository struct {
	db  database.Querier
	log zerolog.Logger
}

// NewRepository creates a fund account repository.
// db may be a *sql.DB or a *sql.Tx.
func NewRepository(db database.Querier, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "fund_account").Logger(),
	}
}

// WithTx returns a copy of the repository bound to tx.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{db: tx, log: r.log}
}

// EnsureAccount inserts the account row with the seed values unless it
// already exists. Reports whether a row was created.
func (r *Repository) EnsureAccount(ctx context.Context, totalCapital, reinvestRatio decimal.Decimal) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO fund_account
		(id, total_capital, available_funds, invested_amount, profit_reinvest_ratio, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)
	`, AccountID, domain.MoneyValue(totalCapital), domain.MoneyValue(totalCapital), domain.MoneyValue(reinvestRatio), time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to seed fund account: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to seed fund account: %w", err)
	}
	if n > 0 {
		r.log.Info().Str("total_capital", totalCapital.String()).Msg("Fund account created")
	}
	return n > 0, nil
}

// Get returns the fund account.
func (r *Repository) Get(ctx context.Context) (*Account, error) {
	var a Account
	var updatedAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, total_capital, available_funds, invested_amount, profit_reinvest_ratio, updated_at
		FROM fund_account WHERE id = ?
	`, AccountID).Scan(
		&a.ID,
		domain.ScanMoney(&a.TotalCapital),
		domain.ScanMoney(&a.AvailableFunds),
		domain.ScanMoney(&a.InvestedAmount),
		domain.ScanMoney(&a.ProfitReinvestRatio),
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountMissing
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fund account: %w", err)
	}

	a.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &a, nil
}

// Update overwrites the user-editable fields. The invested amount is
// only ever changed through Move.
func (r *Repository) Update(ctx context.Context, in UpdateInput) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fund_account
		SET total_capital = ?, available_funds = ?, profit_reinvest_ratio = ?, updated_at = ?
		WHERE id = ?
	`, domain.MoneyValue(in.TotalCapital), domain.MoneyValue(in.AvailableFunds), domain.MoneyValue(in.ProfitReinvestRatio), time.Now().Unix(), AccountID)
	if err != nil {
		return fmt.Errorf("failed to update fund account: %w", err)
	}
	return requireRow(res)
}

// Move shifts money between invested and available. Positive invested
// with negative available is a purchase; the reverse is a sale.
func (r *Repository) Move(ctx context.Context, investedDelta, availableDelta decimal.Decimal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fund_account
		SET invested_amount = invested_amount + ?,
		    available_funds = available_funds + ?,
		    updated_at = ?
		WHERE id = ?
	`, domain.MoneyValue(investedDelta), domain.MoneyValue(availableDelta), time.Now().Unix(), AccountID)
	if err != nil {
		return fmt.Errorf("failed to move funds: %w", err)
	}
	if err := requireRow(res); err != nil {
		return err
	}

	r.log.Debug().
		Str("invested_delta", investedDelta.String()).
		Str("available_delta", availableDelta.String()).
		Msg("Funds moved")
	return nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrAccountMissing
	}
	return nil
}
