package server

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

// countedTables are reported by /health from strategy.db
var countedTables = []string{"stocks", "trades", "fund_account"}

// handleHealth reports database reachability, row counts and host resources
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	databases := map[string]string{}
	for _, db := range []*database.DB{s.strategyDB, s.snapshotsDB} {
		if db == nil {
			continue
		}
		if err := db.QuickCheck(ctx); err != nil {
			s.log.Error().Err(err).Str("database", db.Name()).Msg("Health check failed")
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		databases[db.Name()] = "connected"
	}

	tables := map[string]int64{}
	for _, table := range countedTables {
		n, err := s.strategyDB.TableCount(ctx, table)
		if err != nil {
			s.writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status": "error",
				"error":  err.Error(),
			})
			return
		}
		tables[table] = n
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"databases": databases,
		"tables":    tables,
		"features": map[string]bool{
			"price_sync": s.cfg.Alpaca.Enabled(),
			"backup":     s.cfg.Backup.Enabled(),
		},
		"environment": map[string]string{
			"db_path":    s.strategyDB.Path(),
			"data_dir":   s.cfg.DataDir,
			"go_version": runtime.Version(),
		},
		"host": s.hostStats(ctx),
	})
}

// hostStats is best effort; missing values are omitted
func (s *Server) hostStats(ctx context.Context) map[string]float64 {
	stats := map[string]float64{}

	if memStat, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		stats["memory_used_percent"] = memStat.UsedPercent
		stats["memory_available_mb"] = float64(memStat.Available) / 1024 / 1024
	} else {
		s.log.Warn().Err(err).Msg("Failed to get memory statistics")
	}

	if usage, err := disk.UsageWithContext(ctx, s.cfg.DataDir); err == nil {
		stats["disk_used_percent"] = usage.UsedPercent
		stats["disk_free_gb"] = float64(usage.Free) / 1e9
	} else {
		s.log.Warn().Err(err).Msg("Failed to get disk statistics")
	}

	return stats
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}
