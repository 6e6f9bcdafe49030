package holdings

import (
	"context"
	"testing"

	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/funds"
	testingpkg "github.com/aristath/zerocost/internal/testing"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	service *Service
	repo    *Repository
	funds   *funds.Repository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "strategy")
	t.Cleanup(cleanup)

	repo := NewRepository(db.Conn(), zerolog.Nop())
	fundsRepo := funds.NewRepository(db.Conn(), zerolog.Nop())
	_, err := fundsRepo.EnsureAccount(context.Background(), decimal.NewFromInt(10000), decimal.RequireFromString("0.5"))
	require.NoError(t, err)

	return fixture{
		service: NewService(db.Conn(), repo, fundsRepo, zerolog.Nop()),
		repo:    repo,
		funds:   fundsRepo,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestService_AddStockDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.AddStock(ctx, AddStockInput{
		Code:          "tsla",
		Name:          "Tesla",
		Market:        "US",
		CurrentPrice:  decimal.NewFromInt(20),
		CurrentShares: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "TSLA", view.Code)
	assert.Equal(t, DefaultTargetShares, view.TargetShares)
	assert.Equal(t, "20", view.AvgCost.String())
	assert.Equal(t, "200", view.InitialInvestment.String())
	assert.Equal(t, "200", view.CurrentValue.String())
	assert.True(t, view.ProfitRate.IsZero())
	require.NotNil(t, view.Strategy)
	assert.Equal(t, "Continue building position", view.Strategy.Action.Label)

	account, err := f.funds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "200", account.InvestedAmount.String())
	assert.Equal(t, "9800", account.AvailableFunds.String())
}

func TestService_AddStockExplicitValues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	view, err := f.service.AddStock(ctx, AddStockInput{
		Code:              "AMD",
		Name:              "AMD",
		Market:            "US",
		CurrentPrice:      decimal.NewFromInt(15),
		CurrentShares:     100,
		TargetShares:      int64Ptr(100),
		AvgCost:           decPtr("10"),
		InitialInvestment: decPtr("950"),
	})
	require.NoError(t, err)

	assert.Equal(t, "950", view.InitialInvestment.String())
	assert.Equal(t, "1500", view.CurrentValue.String())
	assert.Equal(t, "1000", view.TotalCost.String())
	assert.Equal(t, "500", view.Profit.String())
	assert.Equal(t, "50", view.ProfitRate.String())
	assert.True(t, view.Strategy.ZeroCost.Possible)
	assert.Equal(t, int64(67), view.Strategy.ZeroCost.SharesToSell)
}

func TestService_AddStockWithoutSharesLeavesFunds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.AddStock(ctx, AddStockInput{Code: "X", Name: "X", Market: "US", CurrentPrice: decimal.NewFromInt(5)})
	require.NoError(t, err)

	account, err := f.funds.Get(ctx)
	require.NoError(t, err)
	assert.True(t, account.InvestedAmount.IsZero())
	assert.Equal(t, "10000", account.AvailableFunds.String())
}

func TestService_AddStockValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	valid := AddStockInput{Code: "OK", Name: "Ok", Market: "US", CurrentPrice: decimal.NewFromInt(1)}

	tests := []struct {
		name   string
		mutate func(in *AddStockInput)
	}{
		{"blank code", func(in *AddStockInput) { in.Code = "  " }},
		{"missing name", func(in *AddStockInput) { in.Name = "" }},
		{"missing market", func(in *AddStockInput) { in.Market = "" }},
		{"zero price", func(in *AddStockInput) { in.CurrentPrice = decimal.Zero }},
		{"negative shares", func(in *AddStockInput) { in.CurrentShares = -1 }},
		{"negative target", func(in *AddStockInput) { in.TargetShares = int64Ptr(-1) }},
		{"negative avg cost", func(in *AddStockInput) { in.AvgCost = decPtr("-1") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := f.service.AddStock(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidStock)
		})
	}
}

func TestService_AddStockDuplicateRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := AddStockInput{Code: "DUP", Name: "Dup", Market: "US", CurrentPrice: decimal.NewFromInt(10), CurrentShares: 5}

	_, err := f.service.AddStock(ctx, in)
	require.NoError(t, err)

	_, err = f.service.AddStock(ctx, in)
	assert.ErrorIs(t, err, domain.ErrStockExists)

	account, err := f.funds.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "50", account.InvestedAmount.String(), "failed add must not move funds")
}

func TestService_EditStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.service.AddStock(ctx, AddStockInput{Code: "E", Name: "E", Market: "US", CurrentPrice: decimal.NewFromInt(10), CurrentShares: 10})
	require.NoError(t, err)

	view, err := f.service.EditStock(ctx, created.ID, EditStockInput{CurrentPrice: decimal.NewFromInt(12), TargetShares: 10})
	require.NoError(t, err)
	assert.Equal(t, "12", view.CurrentPrice.String())
	assert.Equal(t, int64(10), view.TargetShares)
	assert.Equal(t, int64(10), view.CurrentShares, "edit must not touch shares")
	assert.Equal(t, "20", view.ProfitRate.String())

	_, err = f.service.EditStock(ctx, 999, EditStockInput{CurrentPrice: decimal.NewFromInt(12), TargetShares: 10})
	assert.ErrorIs(t, err, domain.ErrStockNotFound)

	_, err = f.service.EditStock(ctx, created.ID, EditStockInput{CurrentPrice: decimal.Zero, TargetShares: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidStock)
}

func TestService_ListAndCandidates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, code := range []string{"A", "B"} {
		_, err := f.service.AddStock(ctx, AddStockInput{Code: code, Name: code, Market: "US", CurrentPrice: decimal.NewFromInt(10)})
		require.NoError(t, err)
	}

	plain, err := f.service.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, plain, 2)
	assert.Nil(t, plain[0].Strategy)

	enriched, err := f.service.List(ctx, true)
	require.NoError(t, err)
	assert.NotNil(t, enriched[0].Strategy)

	candidates, err := f.service.AllocationCandidates(ctx)
	require.NoError(t, err)
	assert.Len(t, candidates, 2)
	assert.Equal(t, DefaultTargetShares, candidates[0].TargetShares)

	_, err = f.service.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrStockNotFound)
}
