// Package reliability holds database maintenance and off-site backup jobs.
package reliability

import (
	"compress/gzip"
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aristath/zerocost/internal/database"
	"github.com/aristath/zerocost/internal/domain"
	"github.com/rs/zerolog"
)

// BackupTimestampLayout is the timestamp embedded in backup keys
const BackupTimestampLayout = "2006-01-02-150405"

// BackupResult describes one uploaded backup
type BackupResult struct {
	Key       string `json:"key"`
	SizeBytes int64  `json:"size_bytes"`
	Checksum  string `json:"checksum"`
}

// BackupJob copies the strategy database off-site.
// snapshots.db is regenerable and is not backed up.
type BackupJob struct {
	db       *database.DB
	uploader domain.ObjectUploader
	prefix   string
	dataDir  string
	timeout  time.Duration
	now      func() time.Time
	log      zerolog.Logger
}

// NewBackupJob creates a backup job
func NewBackupJob(db *database.DB, uploader domain.ObjectUploader, prefix, dataDir string, log zerolog.Logger) *BackupJob {
	return &BackupJob{
		db:       db,
		uploader: uploader,
		prefix:   prefix,
		dataDir:  dataDir,
		timeout:  10 * time.Minute,
		now:      time.Now,
		log:      log.With().Str("job", "database_backup").Logger(),
	}
}

// Name returns the job name for scheduler
func (j *BackupJob) Name() string {
	return "database_backup"
}

// Run executes one scheduled backup
func (j *BackupJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	_, err := j.Backup(ctx)
	return err
}

// Key returns the object key for a backup taken at t
func (j *BackupJob) Key(t time.Time) string {
	return fmt.Sprintf("%szerocost-backup-%s.db.gz", j.prefix, t.UTC().Format(BackupTimestampLayout))
}

// Backup writes a consistent copy with VACUUM INTO, gzips it and uploads it.
func (j *BackupJob) Backup(ctx context.Context) (*BackupResult, error) {
	j.log.Info().Msg("Starting database backup")
	startTime := time.Now()

	stagingDir, err := os.MkdirTemp(j.dataDir, "backup-staging-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(stagingDir)

	rawPath := filepath.Join(stagingDir, j.db.Name()+".db")
	if err := j.db.VacuumInto(ctx, rawPath); err != nil {
		return nil, err
	}

	key := j.Key(j.now())
	archivePath := filepath.Join(stagingDir, filepath.Base(key))
	checksum, err := gzipFile(rawPath, archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to compress backup: %w", err)
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat archive: %w", err)
	}

	if err := j.uploader.Upload(ctx, key, archivePath); err != nil {
		return nil, err
	}

	j.log.Info().
		Dur("duration_ms", time.Since(startTime)).
		Str("key", key).
		Int64("size_bytes", info.Size()).
		Str("checksum", checksum).
		Msg("Database backup uploaded")

	return &BackupResult{Key: key, SizeBytes: info.Size(), Checksum: checksum}, nil
}

// gzipFile compresses src into dst and returns the sha256 of the uncompressed input
func gzipFile(src, dst string) (string, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	hash := sha256.New()
	if _, err := io.Copy(io.MultiWriter(gz, hash), in); err != nil {
		return "", err
	}
	if err := gz.Close(); err != nil {
		return "", err
	}
	if err := out.Sync(); err != nil {
		return "", err
	}

	return fmt.Sprintf("sha256:%x", hash.Sum(nil)), nil
}
