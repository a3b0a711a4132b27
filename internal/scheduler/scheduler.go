package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"BalanceSentinel/internal/notifier"
	"BalanceSentinel/internal/tracker"
)

// Scheduler triggers tracker runs on a cron schedule and answers chat commands.
type Scheduler struct {
	Cron     *cron.Cron
	Tracker  *tracker.Tracker
	Notifier *notifier.TelegramNotifier // nil when Telegram is not configured
	Logger   *zap.Logger
	Ctx      context.Context

	running sync.Mutex
}

// NewScheduler creates a Scheduler evaluating cron expressions in loc.
// A run still in progress makes the next trigger skip.
func NewScheduler(ctx context.Context, tr *tracker.Tracker, tn *notifier.TelegramNotifier, loc *time.Location, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		Tracker:  tr,
		Notifier: tn,
		Logger:   logger,
		Ctx:      ctx,
	}
}

// Register adds the balance task with a standard 5-field cron expression.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, func() { s.runTask() }); err != nil {
		return fmt.Errorf("register balance task: %w", err)
	}
	s.Logger.Info("balance task registered", zap.String("cron", spec))
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.Info("scheduler started")
}

// Stop stops the cron scheduler and waits for a running task to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.Logger.Info("scheduler stopped")
}

// RunNow executes the balance task immediately (RUN_ON_START / manual refresh).
// It reports false when another run was already in progress.
func (s *Scheduler) RunNow() bool {
	return s.runTask()
}

// runTask runs the tracker unless a run from cron, RunNow or /refresh is still active.
func (s *Scheduler) runTask() bool {
	if !s.running.TryLock() {
		s.Logger.Warn("balance task already running, skipped")
		return false
	}
	defer s.running.Unlock()

	s.Logger.Info("running balance task")
	if _, err := s.Tracker.Run(s.Ctx); err != nil {
		s.trySend(fmt.Sprintf("❌ Balance run failed: %v", err))
	}
	return true
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/balance":
		st, ok := s.Tracker.LastStats()
		if !ok {
			return "No run has completed yet. Send /refresh to fetch now."
		}
		return notifier.FormatSummary(s.Tracker.Opts.Title, st, s.Tracker.Opts.Currency)
	case "/refresh":
		if !s.runTask() {
			return "A balance run is already in progress."
		}
		return ""
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		s.Logger.Error("send notification", zap.Error(err))
	}
}
