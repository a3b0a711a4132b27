package tracker

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"BalanceSentinel/internal/collector"
	"BalanceSentinel/internal/ledger"
	"BalanceSentinel/internal/metrics"
	"BalanceSentinel/internal/model"
	"BalanceSentinel/internal/notifier"
	"BalanceSentinel/internal/recorder"
	"BalanceSentinel/internal/report"
	"BalanceSentinel/internal/store"
)

// Notifier delivers run summaries.
type Notifier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Options holds the artifact paths and report labels of a run.
type Options struct {
	HistoryFile     string
	ReportFile      string
	ChartFile       string
	MetricsTextfile string
	Title           string
	Currency        string
}

// Result describes a completed run.
type Result struct {
	RunID    string
	Date     string // snapshot date written this run, empty when the fetch failed
	FetchErr error
	Report   report.Report
	Records  int
}

// Tracker executes one fetch → store → ledger → report run.
// Recorder, Metrics and Notifier are optional.
type Tracker struct {
	Collector *collector.Collector
	Renderer  *report.Renderer
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Notifier  Notifier
	Opts      Options
	Logger    *zap.Logger
	Now       func() time.Time

	mu   sync.Mutex
	last *model.Stats
}

// New creates a Tracker with a noop recorder.
func New(col *collector.Collector, r *report.Renderer, opts Options, logger *zap.Logger) *Tracker {
	return &Tracker{
		Collector: col,
		Renderer:  r,
		Recorder:  recorder.NewNoopRecorder(),
		Opts:      opts,
		Logger:    logger,
		Now:       time.Now,
	}
}

// Run fetches today's balance, updates the history and rewrites the report.
// A failed fetch is reported but does not fail the run: the report is rebuilt from the stored
// history. A malformed history or a failed write aborts the run before the report is replaced.
func (t *Tracker) Run(ctx context.Context) (*Result, error) {
	startedAt := t.Now()
	res := &Result{RunID: uuid.NewString()}
	log := t.Logger.With(zap.String("run_id", res.RunID))
	log.Info("run started")

	history, err := store.Load(t.Opts.HistoryFile)
	if err != nil {
		return nil, t.fail(res, startedAt, fmt.Errorf("load history: %w", err))
	}

	date, snap, fetchErr := t.Collector.Collect(ctx, startedAt)
	if fetchErr != nil {
		res.FetchErr = fetchErr
		log.Error("balance fetch failed, rebuilding report from stored history", zap.Error(fetchErr))
		t.notify(ctx, notifier.FormatFetchFailure(fetchErr))
	} else {
		res.Date = date
		history.Upsert(date, snap)
		log.Info("balance fetched",
			zap.String("date", date),
			zap.String("remaining_amount", snap.RemainingAmount.Decimal.StringFixed(2)),
			zap.String("used_amount", snap.UsedAmount.Decimal.StringFixed(2)))
	}

	records, err := ledger.Build(history)
	if err != nil {
		return nil, t.fail(res, startedAt, err)
	}
	for _, r := range records {
		if len(r.Missing) > 0 {
			log.Warn("snapshot fields defaulted",
				zap.String("date", r.Date.Format(model.DateLayout)),
				zap.String("fields", strings.Join(r.Missing, ",")))
		}
	}
	res.Records = len(records)

	rep := t.Renderer.Render(records, startedAt)
	res.Report = rep

	if fetchErr == nil {
		if err := store.Save(t.Opts.HistoryFile, history); err != nil {
			return nil, t.fail(res, startedAt, fmt.Errorf("save history: %w", err))
		}
	}
	if err := store.WriteFile(t.Opts.ReportFile, []byte(rep.Markdown)); err != nil {
		return nil, t.fail(res, startedAt, fmt.Errorf("write report: %w", err))
	}
	if rep.Chart != nil {
		if err := store.WriteFile(t.Opts.ChartFile, rep.Chart); err != nil {
			log.Error("write chart", zap.String("path", t.Opts.ChartFile), zap.Error(err))
		}
	}

	status := recorder.StatusOK
	if fetchErr != nil {
		status = recorder.StatusFetchFailed
	} else if err := t.Recorder.RecordSnapshot(date, snap); err != nil {
		log.Error("record snapshot", zap.Error(err))
	}
	t.finish(res, startedAt, status, rep.Stats)

	t.mu.Lock()
	st := rep.Stats
	t.last = &st
	t.mu.Unlock()

	if len(records) > 0 {
		t.notify(ctx, notifier.FormatSummary(t.Opts.Title, rep.Stats, t.Opts.Currency))
	}
	log.Info("run finished",
		zap.Int("records", len(records)),
		zap.Int("valid_days", rep.Stats.ValidDays),
		zap.String("period_usage", rep.Stats.TotalConsumption.StringFixed(2)),
		zap.String("average_daily_usage", rep.Stats.AverageDailyConsumption.StringFixed(2)),
		zap.String("estimated_days_remaining", rep.Stats.EstimatedDaysRemaining.StringFixed(1)))
	return res, nil
}

// LastStats returns the statistics of the last successful run.
func (t *Tracker) LastStats() (model.Stats, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return model.Stats{}, false
	}
	return *t.last, true
}

func (t *Tracker) fail(res *Result, startedAt time.Time, err error) error {
	t.Logger.Error("run failed", zap.String("run_id", res.RunID), zap.Error(err))
	t.finish(res, startedAt, recorder.StatusFailed, model.Stats{})
	return err
}

func (t *Tracker) finish(res *Result, startedAt time.Time, status string, st model.Stats) {
	summary := &recorder.RunSummary{
		RunID:     res.RunID,
		StartedAt: startedAt,
		Status:    status,
		Records:   res.Records,
		Stats:     st,
	}
	if res.FetchErr != nil {
		summary.FetchError = res.FetchErr.Error()
	}
	if err := t.Recorder.RecordRun(summary); err != nil {
		t.Logger.Error("record run", zap.String("run_id", res.RunID), zap.Error(err))
	}

	if t.Metrics == nil {
		return
	}
	if status != recorder.StatusFailed {
		t.Metrics.Observe(st, float64(startedAt.Unix()))
	}
	t.Metrics.RunFinished(status)
	if t.Opts.MetricsTextfile != "" {
		if err := t.Metrics.WriteTextfile(t.Opts.MetricsTextfile); err != nil {
			t.Logger.Error("write metrics", zap.Error(err))
		}
	}
}

func (t *Tracker) notify(ctx context.Context, text string) {
	if t.Notifier == nil {
		return
	}
	if err := t.Notifier.SendWithRetry(ctx, text, 3); err != nil {
		t.Logger.Error("send notification", zap.Error(err))
	}
}
