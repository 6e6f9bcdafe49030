package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanMoney(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"float", 12.34, "12.34"},
		{"integer aggregate", int64(7), "7"},
		{"null", nil, "0"},
		{"text", "0.1", "0.1"},
		{"blob", []byte("99.5"), "99.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d decimal.Decimal
			require.NoError(t, ScanMoney(&d).Scan(tt.value))
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestScanMoney_Rejects(t *testing.T) {
	var d decimal.Decimal
	assert.Error(t, ScanMoney(&d).Scan("abc"))
	assert.Error(t, ScanMoney(&d).Scan(true))
}
