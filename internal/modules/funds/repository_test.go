package funds

import (
	"context"
	"testing"

	testingpkg "github.com/aristath/zerocost/internal/testing"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, cleanup := testingpkg.NewTestDB(t, "strategy")
	t.Cleanup(cleanup)
	return NewRepository(db.Conn(), zerolog.Nop())
}

func TestRepository_EnsureAccount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrAccountMissing)

	created, err := repo.EnsureAccount(ctx, decimal.NewFromInt(10000), decimal.RequireFromString("0.5"))
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.EnsureAccount(ctx, decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	assert.False(t, created, "second seed must not overwrite")

	account, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, AccountID, account.ID)
	assert.Equal(t, "10000", account.TotalCapital.String())
	assert.Equal(t, "10000", account.AvailableFunds.String())
	assert.True(t, account.InvestedAmount.IsZero())
	assert.Equal(t, "0.5", account.ProfitReinvestRatio.String())
}

func TestRepository_Move(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	_, err := repo.EnsureAccount(ctx, decimal.NewFromInt(10000), decimal.RequireFromString("0.5"))
	require.NoError(t, err)

	require.NoError(t, repo.Move(ctx, decimal.RequireFromString("1500.5"), decimal.RequireFromString("-1500.5")))
	require.NoError(t, repo.Move(ctx, decimal.NewFromInt(-500), decimal.NewFromInt(700)))

	account, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1000.5", account.InvestedAmount.String())
	assert.Equal(t, "9199.5", account.AvailableFunds.String())
	assert.Equal(t, "10000", account.TotalCapital.String())
}

func TestRepository_UpdateRequiresAccount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, UpdateInput{TotalCapital: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, ErrAccountMissing)

	err = repo.Move(ctx, decimal.NewFromInt(1), decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, ErrAccountMissing)
}
