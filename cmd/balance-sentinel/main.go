package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"BalanceSentinel/internal/collector"
	"BalanceSentinel/internal/config"
	"BalanceSentinel/internal/logger"
	"BalanceSentinel/internal/metrics"
	"BalanceSentinel/internal/notifier"
	"BalanceSentinel/internal/recorder"
	"BalanceSentinel/internal/report"
	"BalanceSentinel/internal/scheduler"
	"BalanceSentinel/internal/tracker"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "balance-sentinel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; the process environment is used when absent
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()
	log.Info("BalanceSentinel starting", zap.String("config", cfgPath))

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	fetcher := collector.NewAceDataFetcher(cfg.DataSource.BaseURL, cfg.DataSource.AppID, cfg.DataSource.Authorization, cfg.Proxy)
	log.Info("data source", zap.String("fetcher", fetcher.Name()), zap.String("base_url", cfg.DataSource.BaseURL))
	col := collector.NewCollector(fetcher, loc, log)

	vis, err := report.NewVisualizer(cfg.Report.Trend, cfg.Storage.ChartFile)
	if err != nil {
		return err
	}
	renderer := report.NewRenderer(report.Options{
		Title:    cfg.Report.Title,
		Currency: cfg.Report.Currency,
		Column:   report.TableColumn(cfg.Report.TableColumn),
	}, vis, log)

	tr := tracker.New(col, renderer, tracker.Options{
		HistoryFile:     cfg.Storage.HistoryFile,
		ReportFile:      cfg.Storage.ReportFile,
		ChartFile:       cfg.Storage.ChartFile,
		MetricsTextfile: cfg.Metrics.Textfile,
		Title:           cfg.Report.Title,
		Currency:        cfg.Report.Currency,
	}, log)
	tr.Metrics = metrics.New()

	if cfg.Storage.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Storage.SQLitePath, log)
		if err != nil {
			log.Warn("init sqlite recorder failed, using noop", zap.Error(err))
		} else {
			tr.Recorder = sr
			defer sr.Close()
		}
	}

	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy, log)
		tr.Notifier = tn
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Schedule.Cron == "" {
		_, err := tr.Run(ctx)
		return err
	}

	sched := scheduler.NewScheduler(ctx, tr, tn, loc, log)
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Info("telegram polling started")
	}

	if cfg.Schedule.RunOnStart {
		log.Info("run_on_start enabled, executing balance task now")
		go sched.RunNow()
	}

	log.Info("BalanceSentinel is running, press Ctrl+C to stop")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutdown signal received, stopping")
	cancel()
	return nil
}
