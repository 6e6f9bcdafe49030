package di

import (
	"fmt"

	"github.com/aristath/zerocost/internal/config"
	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/modules/prices"
	"github.com/aristath/zerocost/internal/modules/snapshots"
	"github.com/aristath/zerocost/internal/reliability"
	"github.com/aristath/zerocost/internal/scheduler"
	"github.com/rs/zerolog"
)

// RegisterJobs creates the jobs and adds them to a new scheduler.
// The scheduler is not started.
func RegisterJobs(container *Container, cfg *config.Config, log zerolog.Logger) error {
	sched := scheduler.New(log)
	container.Scheduler = sched

	container.SnapshotJob = snapshots.NewSnapshotJob(container.HoldingsRepo, container.SnapshotRepo, log)
	if err := sched.AddJob(cfg.SnapshotSchedule, container.SnapshotJob); err != nil {
		return fmt.Errorf("failed to register snapshot job: %w", err)
	}

	container.MaintenanceJob = reliability.NewMaintenanceJob(
		[]*database.DB{container.StrategyDB, container.SnapshotsDB},
		cfg.DataDir,
		log,
	)
	if err := sched.AddJob(cfg.MaintenanceSchedule, container.MaintenanceJob); err != nil {
		return fmt.Errorf("failed to register maintenance job: %w", err)
	}

	if container.PriceProvider != nil {
		container.PriceSyncJob = prices.NewPriceSyncJob(container.HoldingsRepo, container.PriceProvider, log)
		if err := sched.AddJob(cfg.PriceSyncSchedule, container.PriceSyncJob); err != nil {
			return fmt.Errorf("failed to register price sync job: %w", err)
		}
	}

	if container.BackupUploader != nil {
		container.BackupJob = reliability.NewBackupJob(
			container.StrategyDB,
			container.BackupUploader,
			cfg.Backup.Prefix,
			cfg.DataDir,
			log,
		)
		if err := sched.AddJob(cfg.Backup.Schedule, container.BackupJob); err != nil {
			return fmt.Errorf("failed to register backup job: %w", err)
		}
	}

	log.Info().
		Bool("price_sync", container.PriceSyncJob != nil).
		Bool("backup", container.BackupJob != nil).
		Msg("Jobs registered")

	return nil
}
