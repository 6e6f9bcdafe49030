// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir  string // Base directory for all databases (always absolute)
	LogLevel string
	Port     int
	DevMode  bool

	// Seed values for the fund account row, applied only when the row is created.
	InitialCapital      float64
	ProfitReinvestRatio float64

	// Cron schedules (robfig/cron with seconds field)
	SnapshotSchedule    string
	MaintenanceSchedule string
	PriceSyncSchedule   string

	Alpaca *AlpacaConfig
	Backup *BackupConfig
}

// AlpacaConfig holds market data credentials for the optional price sync job
type AlpacaConfig struct {
	APIKey    string
	APISecret string
	DataURL   string // Empty = SDK default
}

// Enabled reports whether both credentials are present.
func (c *AlpacaConfig) Enabled() bool {
	return c != nil && c.APIKey != "" && c.APISecret != ""
}

// BackupConfig holds S3-compatible object storage settings for database backups
type BackupConfig struct {
	Schedule        string
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // Custom endpoint for S3-compatible providers (R2, MinIO)
	AccessKeyID     string
	SecretAccessKey string
}

// Enabled reports whether a backup bucket is configured.
func (c *BackupConfig) Enabled() bool {
	return c != nil && c.Bucket != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Data directory resolution order:
	// 1. STRATEGY_DATA_DIR
	// 2. RENDER_EXTERNAL_VOLUME (mounted disk on Render)
	// 3. ./data
	dataDir := getEnv("STRATEGY_DATA_DIR", getEnv("RENDER_EXTERNAL_VOLUME", "data"))

	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:             absDataDir,
		Port:                getEnvAsInt("PORT", 5000),
		DevMode:             getEnvAsBool("DEV_MODE", false),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		InitialCapital:      getEnvAsFloat("INITIAL_CAPITAL", 10000),
		ProfitReinvestRatio: getEnvAsFloat("PROFIT_REINVEST_RATIO", 0.5),
		SnapshotSchedule:    getEnv("SNAPSHOT_SCHEDULE", "0 0 18 * * *"),
		MaintenanceSchedule: getEnv("MAINTENANCE_SCHEDULE", "0 0 3 * * *"),
		PriceSyncSchedule:   getEnv("PRICE_SYNC_SCHEDULE", "0 */15 * * * *"),
		Alpaca: &AlpacaConfig{
			APIKey:    getEnv("APCA_API_KEY_ID", ""),
			APISecret: getEnv("APCA_API_SECRET_KEY", ""),
			DataURL:   getEnv("APCA_DATA_URL", ""),
		},
		Backup: &BackupConfig{
			Schedule:        getEnv("BACKUP_SCHEDULE", "0 30 3 * * *"),
			Bucket:          getEnv("BACKUP_S3_BUCKET", ""),
			Prefix:          getEnv("BACKUP_S3_PREFIX", ""),
			Region:          getEnv("BACKUP_S3_REGION", "auto"),
			Endpoint:        getEnv("BACKUP_S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("BACKUP_S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("BACKUP_S3_SECRET_ACCESS_KEY", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// StrategyDBPath is the holdings/trades/fund database file.
func (c *Config) StrategyDBPath() string {
	return filepath.Join(c.DataDir, "strategy.db")
}

// SnapshotsDBPath is the regenerable strategy snapshot database file.
func (c *Config) SnapshotsDBPath() string {
	return filepath.Join(c.DataDir, "snapshots.db")
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.InitialCapital < 0 {
		return fmt.Errorf("INITIAL_CAPITAL must not be negative, got %v", c.InitialCapital)
	}
	if c.ProfitReinvestRatio < 0 || c.ProfitReinvestRatio > 1 {
		return fmt.Errorf("PROFIT_REINVEST_RATIO must be within [0, 1], got %v", c.ProfitReinvestRatio)
	}
	if c.Alpaca != nil && (c.Alpaca.APIKey == "") != (c.Alpaca.APISecret == "") {
		return fmt.Errorf("APCA_API_KEY_ID and APCA_API_SECRET_KEY must be set together")
	}
	if c.Backup != nil && (c.Backup.AccessKeyID == "") != (c.Backup.SecretAccessKey == "") {
		return fmt.Errorf("BACKUP_S3_ACCESS_KEY_ID and BACKUP_S3_SECRET_ACCESS_KEY must be set together")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
