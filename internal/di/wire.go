package di

import (
	"fmt"

	"github.com/aristath/zerocost/internal/config"
	fundshandlers "github.com/aristath/zerocost/internal/modules/funds/handlers"
	holdingshandlers "github.com/aristath/zerocost/internal/modules/holdings/handlers"
	portfoliohandlers "github.com/aristath/zerocost/internal/modules/portfolio/handlers"
	snapshotshandlers "github.com/aristath/zerocost/internal/modules/snapshots/handlers"
	strategyhandlers "github.com/aristath/zerocost/internal/modules/strategy/handlers"
	tradinghandlers "github.com/aristath/zerocost/internal/modules/trading/handlers"
	"github.com/aristath/zerocost/internal/server"
	"github.com/rs/zerolog"
)

// Wire initializes all dependencies and returns a fully configured container
// Order of operations:
// 1. Initialize databases (migrate, seed fund account)
// 2. Initialize repositories
// 3. Initialize services and optional clients
// 4. Register jobs
func Wire(cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container, err := InitializeDatabases(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	InitializeRepositories(container, log)

	if err := InitializeServices(container, cfg, log); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := RegisterJobs(container, cfg, log); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")

	return container, nil
}

// APIRoutes returns every module handler mounted under /api
func (c *Container) APIRoutes(log zerolog.Logger) []server.RouteRegistrar {
	return []server.RouteRegistrar{
		holdingshandlers.NewHandler(c.HoldingsService, log),
		strategyhandlers.NewHandler(c.HoldingsService, c.TradingService, log),
		tradinghandlers.NewTradingHandlers(c.TradingService, log),
		fundshandlers.NewHandler(c.FundsService, log),
		portfoliohandlers.NewHandler(c.PortfolioService, log),
		snapshotshandlers.NewHandler(c.SnapshotRepo, c.SnapshotJob, log),
	}
}

// ServerConfig builds the HTTP server configuration from the container
func (c *Container) ServerConfig(cfg *config.Config, log zerolog.Logger) server.Config {
	return server.Config{
		Log:         log,
		StrategyDB:  c.StrategyDB,
		SnapshotsDB: c.SnapshotsDB,
		Config:      cfg,
		Port:        cfg.Port,
		DevMode:     cfg.DevMode,
		APIRoutes:   c.APIRoutes(log),
		Holdings:    c.HoldingsService,
		Accounts:    c.FundsService,
		Trades:      c.TradingService,
	}
}
