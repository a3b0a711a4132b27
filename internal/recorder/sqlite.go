package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"BalanceSentinel/internal/model"
)

// SQLiteRecorder persists snapshots and run summaries to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while a run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			date             TEXT PRIMARY KEY,
			remaining_amount REAL,
			used_amount      REAL,
			fetched_at       INTEGER,
			updated_at       INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id           TEXT NOT NULL UNIQUE,
			timestamp        INTEGER NOT NULL,
			status           TEXT NOT NULL,
			fetch_error      TEXT,
			records          INTEGER,
			valid_days       INTEGER,
			period_usage     REAL,
			avg_daily_usage  REAL,
			remaining        REAL,
			days_remaining   REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func nullAmount(v decimal.NullDecimal) sql.NullFloat64 {
	if !v.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v.Decimal.InexactFloat64(), Valid: true}
}

// RecordSnapshot upserts the snapshot of one date.
func (r *SQLiteRecorder) RecordSnapshot(date string, snap model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fetchedAt sql.NullInt64
	if !snap.FetchedAt.IsZero() {
		fetchedAt = sql.NullInt64{Int64: snap.FetchedAt.Unix(), Valid: true}
	}
	_, err := r.db.Exec(`INSERT INTO snapshots
		(date, remaining_amount, used_amount, fetched_at, updated_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			remaining_amount = excluded.remaining_amount,
			used_amount      = excluded.used_amount,
			fetched_at       = excluded.fetched_at,
			updated_at       = excluded.updated_at`,
		date, nullAmount(snap.RemainingAmount), nullAmount(snap.UsedAmount), fetchedAt, time.Now().Unix(),
	)
	return err
}

// RecordRun appends a run summary.
func (r *SQLiteRecorder) RecordRun(run *RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := run.Stats
	_, err := r.db.Exec(`INSERT INTO runs
		(run_id, timestamp, status, fetch_error, records, valid_days,
		 period_usage, avg_daily_usage, remaining, days_remaining)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.Status, run.FetchError, run.Records, st.ValidDays,
		st.TotalConsumption.InexactFloat64(), st.AverageDailyConsumption.InexactFloat64(),
		st.LatestRemaining.InexactFloat64(), st.EstimatedDaysRemaining.InexactFloat64(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
