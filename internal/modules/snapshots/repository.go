package snapshots

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultListLimit bounds history reads when the caller gives no limit.
const DefaultListLimit = 30

// Repository stores snapshots in snapshots.db
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// InsertRun stores all payloads of one run atomically.
func (r *Repository) InsertRun(ctx context.Context, runID string, createdAt time.Time, payloads []Payload) error {
	return database.WithTransaction(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO strategy_snapshots (run_id, stock_code, action, progress, payload, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare snapshot insert: %w", err)
		}
		defer stmt.Close()

		for _, p := range payloads {
			body, err := msgpack.Marshal(&p)
			if err != nil {
				return fmt.Errorf("failed to encode snapshot for %s: %w", p.Code, err)
			}
			if _, err := stmt.ExecContext(ctx, runID, p.Code, p.Action, p.ProgressPct, body, createdAt.Unix()); err != nil {
				return fmt.Errorf("failed to insert snapshot for %s: %w", p.Code, err)
			}
		}
		return nil
	})
}

// ListByCode returns the latest snapshots of one stock, newest first.
func (r *Repository) ListByCode(ctx context.Context, code string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, run_id, stock_code, action, progress, payload, created_at
		FROM strategy_snapshots
		WHERE stock_code = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, strings.ToUpper(strings.TrimSpace(code)), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	out := []Snapshot{}
	for rows.Next() {
		var s Snapshot
		var body []byte
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.RunID, &s.StockCode, &s.Action, &s.Progress, &body, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		if err := msgpack.Unmarshal(body, &s.Payload); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot %d: %w", s.ID, err)
		}
		s.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return out, nil
}

// CountRun returns how many rows a run stored.
func (r *Repository) CountRun(ctx context.Context, runID string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM strategy_snapshots WHERE run_id = ?", runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count run %s: %w", runID, err)
	}
	return n, nil
}
