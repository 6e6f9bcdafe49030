package di

import (
	"github.com/aristath/zerocost/internal/modules/funds"
	"github.com/aristath/zerocost/internal/modules/holdings"
	"github.com/aristath/zerocost/internal/modules/snapshots"
	"github.com/aristath/zerocost/internal/modules/trading"
	"github.com/rs/zerolog"
)

// InitializeRepositories creates all repositories
func InitializeRepositories(container *Container, log zerolog.Logger) {
	strategyConn := container.StrategyDB.Conn()

	container.HoldingsRepo = holdings.NewRepository(strategyConn, log)
	container.TradeRepo = trading.NewTradeRepository(strategyConn, log)
	container.FundsRepo = funds.NewRepository(strategyConn, log)
	container.SnapshotRepo = snapshots.NewRepository(container.SnapshotsDB.Conn(), log)
}
