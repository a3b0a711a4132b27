package recorder

import (
	"time"

	"BalanceSentinel/internal/model"
)

// Run outcomes.
const (
	StatusOK          = "ok"
	StatusFetchFailed = "fetch_failed"
	StatusFailed      = "failed"
)

// RunSummary holds the outcome of one tracker run.
type RunSummary struct {
	RunID      string
	StartedAt  time.Time
	Status     string
	FetchError string
	Records    int
	Stats      model.Stats
}

// Recorder mirrors snapshots and run summaries for later analysis (e.g. Grafana).
type Recorder interface {
	RecordSnapshot(date string, snap model.Snapshot) error
	RecordRun(run *RunSummary) error
	Close() error
}
