// Package domain holds the types and interfaces shared across modules.
package domain

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
)

type moneyScanner struct {
	dst *decimal.Decimal
}

// ScanMoney adapts a decimal destination for REAL columns. SQLite returns
// REAL values as float64 (or int64 for integral aggregates), which
// decimal.Decimal cannot scan on its own.
func ScanMoney(dst *decimal.Decimal) sql.Scanner {
	return moneyScanner{dst: dst}
}

func (m moneyScanner) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*m.dst = decimal.Zero
	case float64:
		*m.dst = decimal.NewFromFloat(v)
	case int64:
		*m.dst = decimal.NewFromInt(v)
	case []byte:
		return m.parse(string(v))
	case string:
		return m.parse(v)
	default:
		return fmt.Errorf("failed to scan money: unsupported type %T", value)
	}
	return nil
}

func (m moneyScanner) parse(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("failed to scan money %q: %w", s, err)
	}
	*m.dst = d
	return nil
}

// MoneyValue converts a decimal to the float64 stored in REAL columns.
func MoneyValue(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
