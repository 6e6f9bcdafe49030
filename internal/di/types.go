// Package di provides dependency injection type definitions.
//
// Container holds every long-lived instance of the application. It is built
// by Wire and handed to the HTTP server and the process lifecycle in cmd/server.
package di

import (
	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/portfolio"
	"github.com/aristath/zerocost/internal/modules/prices"
	"github.com/aristath/zerocost/internal/modules/snapshots"
	"github.com/aristath/zerocost/internal/modules/trading"
	"github.com/aristath/zerocost/internal/reliability"
	"github.com/aristath/zerocost/internal/scheduler"
)

// Container holds all dependencies for the application
type Container struct {
	// Databases
	StrategyDB  *database.DB // holdings, trades, fund account (ledger profile)
	SnapshotsDB *database.DB // strategy history (cache profile)

	// Clients, nil when not configured
	PriceProvider  domain.PriceProvider
	BackupUploader domain.ObjectUploader

	// Repositories
	HoldingsRepo *holdings.Repository
	TradeRepo    *trading.TradeRepository
	FundsRepo    *funds.Repository
	SnapshotRepo *snapshots.Repository

	// Services
	HoldingsService  *holdings.Service
	TradingService   *trading.TradingService
	FundsService     *funds.Service
	PortfolioService *portfolio.PortfolioService

	// Jobs, PriceSyncJob and BackupJob are nil when not configured
	SnapshotJob    *snapshots.SnapshotJob
	MaintenanceJob *reliability.MaintenanceJob
	PriceSyncJob   *prices.PriceSyncJob
	BackupJob      *reliability.BackupJob

	Scheduler *scheduler.Scheduler
}

// Close closes both databases
func (c *Container) Close() error {
	var firstErr error
	for _, db := range []*database.DB{c.SnapshotsDB, c.StrategyDB} {
		if db == nil {
			continue
		}
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
