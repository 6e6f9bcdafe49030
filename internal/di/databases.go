package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/config"
	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InitializeDatabases opens and migrates both databases, then seeds the fund account
func InitializeDatabases(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	// 1. strategy.db - money-bearing tables
	strategyDB, err := database.New(database.Config{
		Path:    cfg.StrategyDBPath(),
		Profile: database.ProfileLedger,
		Name:    "strategy",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize strategy database: %w", err)
	}
	container.StrategyDB = strategyDB

	// 2. snapshots.db - regenerable history
	snapshotsDB, err := database.New(database.Config{
		Path:    cfg.SnapshotsDBPath(),
		Profile: database.ProfileCache,
		Name:    "snapshots",
	})
	if err != nil {
		strategyDB.Close()
		return nil, fmt.Errorf("failed to initialize snapshots database: %w", err)
	}
	container.SnapshotsDB = snapshotsDB

	for _, db := range []*database.DB{strategyDB, snapshotsDB} {
		if err := db.Migrate(); err != nil {
			container.Close()
			return nil, fmt.Errorf("failed to migrate %s database: %w", db.Name(), err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	created, err := funds.NewRepository(strategyDB.Conn(), log).EnsureAccount(ctx,
		decimal.NewFromFloat(cfg.InitialCapital),
		decimal.NewFromFloat(cfg.ProfitReinvestRatio),
	)
	if err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to seed fund account: %w", err)
	}
	if created {
		log.Info().Float64("initial_capital", cfg.InitialCapital).Msg("Fund account created")
	}

	log.Info().
		Str("strategy_db", strategyDB.Path()).
		Str("snapshots_db", snapshotsDB.Path()).
		Msg("Databases initialized")

	return container, nil
}
