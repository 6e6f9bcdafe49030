package di

import (
	"context"
	"fmt"
	"time"

	"github.com/aristath/zerocost/internal/clients/alpaca"
	"github.com/aristath/zerocost/internal/config"
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/portfolio"
	"github.com/aristath/zerocost/internal/modules/trading"
	"github.com/aristath/zerocost/internal/reliability"
	"github.com/rs/zerolog"
)

// InitializeServices creates clients and services. Optional clients stay nil
// when their credentials are absent.
func InitializeServices(container *Container, cfg *config.Config, log zerolog.Logger) error {
	strategyConn := container.StrategyDB.Conn()

	container.HoldingsService = holdings.NewService(strategyConn, container.HoldingsRepo, container.FundsRepo, log)
	container.TradingService = trading.NewTradingService(
		strategyConn,
		container.TradeRepo,
		container.HoldingsRepo,
		container.FundsRepo,
		log,
	)
	container.FundsService = funds.NewService(container.FundsRepo, container.HoldingsService, log)
	container.PortfolioService = portfolio.NewPortfolioService(container.HoldingsService, container.FundsService, log)

	if cfg.Alpaca.Enabled() {
		container.PriceProvider = alpaca.NewClient(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, log)
		log.Info().Msg("Alpaca market data configured")
	}

	if cfg.Backup.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		uploader, err := reliability.NewS3Uploader(ctx, cfg.Backup, log)
		if err != nil {
			return fmt.Errorf("failed to create backup uploader: %w", err)
		}
		container.BackupUploader = uploader
		log.Info().Str("bucket", cfg.Backup.Bucket).Msg("Backup storage configured")
	}

	return nil
}
