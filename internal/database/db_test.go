package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMigratedDB(t *testing.T, name string, profile DatabaseProfile) *DB {
	t.Helper()

	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), name+".db"),
		Profile: profile,
		Name:    name,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Migrate())
	return db
}

func TestNew_CreatesDirectoryAndDefaultsProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "strategy.db")

	db, err := New(Config{Path: path, Name: "strategy"})
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, ProfileStandard, db.Profile())
	assert.Equal(t, "strategy", db.Name())
	assert.Equal(t, path, db.Path())

	_, err = os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestMigrate_IsIdempotent(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileLedger)

	require.NoError(t, db.Migrate(), "second migration must not fail")

	for _, table := range []string{"stocks", "trades", "fund_account"} {
		count, err := db.TableCount(context.Background(), table)
		require.NoError(t, err)
		assert.Zero(t, count, table)
	}
}

func TestMigrate_SnapshotsSchema(t *testing.T) {
	db := newMigratedDB(t, "snapshots", ProfileCache)

	count, err := db.TableCount(context.Background(), "strategy_snapshots")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSchema_UnknownName(t *testing.T) {
	_, err := Schema("universe")
	assert.Error(t, err)
}

func TestWithTransaction_CommitsOnSuccess(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileStandard)
	ctx := context.Background()

	err := WithTransaction(ctx, db.Conn(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO fund_account (id, total_capital, available_funds, invested_amount, profit_reinvest_ratio, updated_at)
			VALUES (1, 100, 100, 0, 0.5, 0)`)
		return err
	})
	require.NoError(t, err)

	count, err := db.TableCount(ctx, "fund_account")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestWithTransaction_RollsBackOnError(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileStandard)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTransaction(ctx, db.Conn(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO fund_account (id, updated_at) VALUES (1, 0)`); err != nil {
			return err
		}
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	count, err := db.TableCount(ctx, "fund_account")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithTransaction_RecoversPanic(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileStandard)
	ctx := context.Background()

	err := WithTransaction(ctx, db.Conn(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO fund_account (id, updated_at) VALUES (1, 0)`); err != nil {
			return err
		}
		panic("unexpected")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic in transaction")

	count, err := db.TableCount(ctx, "fund_account")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestWithTransaction_NilDB(t *testing.T) {
	err := WithTransaction(context.Background(), nil, func(tx *sql.Tx) error { return nil })
	assert.Error(t, err)
}

func TestHealthCheckAndCheckpoint(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileLedger)
	ctx := context.Background()

	assert.NoError(t, db.QuickCheck(ctx))
	assert.NoError(t, db.HealthCheck(ctx))
	assert.NoError(t, db.WALCheckpoint(""))
	assert.NoError(t, db.WALCheckpoint("PASSIVE"))
}

func TestVacuumInto(t *testing.T) {
	db := newMigratedDB(t, "strategy", ProfileLedger)
	dest := filepath.Join(t.TempDir(), "copy.db")

	require.NoError(t, db.VacuumInto(context.Background(), dest))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Error(t, db.VacuumInto(context.Background(), dest), "existing destination must be rejected")
}

func TestBuildConnectionString_Profiles(t *testing.T) {
	ledger := buildConnectionString("/tmp/a.db", ProfileLedger)
	assert.Contains(t, ledger, "?_pragma=journal_mode(WAL)")
	assert.Contains(t, ledger, "synchronous(FULL)")
	assert.Contains(t, ledger, "foreign_keys(1)")

	cache := buildConnectionString("/tmp/a.db", ProfileCache)
	assert.Contains(t, cache, "synchronous(OFF)")

	memory := buildConnectionString("file:test?mode=memory", ProfileStandard)
	assert.Contains(t, memory, "file:test?mode=memory&_pragma=journal_mode(WAL)")
	assert.Contains(t, memory, "synchronous(NORMAL)")
}
