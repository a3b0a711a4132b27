package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"BalanceSentinel/internal/model"
)

// Metrics holds the balance gauges of the last run. Each instance owns its registry so the
// textfile only carries these series.
type Metrics struct {
	Registry *prometheus.Registry

	RemainingBalance       prometheus.Gauge
	AverageDailyUsage      prometheus.Gauge
	PeriodUsage            prometheus.Gauge
	EstimatedDaysRemaining prometheus.Gauge
	LastRunTimestamp       prometheus.Gauge
	RunsTotal              *prometheus.CounterVec
}

// New creates and registers the balance metrics.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RemainingBalance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balance_sentinel",
			Name:      "remaining_balance",
			Help:      "Remaining account balance at the latest snapshot",
		}),
		AverageDailyUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balance_sentinel",
			Name:      "average_daily_usage",
			Help:      "Average daily consumption over the current spending period",
		}),
		PeriodUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balance_sentinel",
			Name:      "period_usage",
			Help:      "Total consumption since the last recharge",
		}),
		EstimatedDaysRemaining: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balance_sentinel",
			Name:      "estimated_days_remaining",
			Help:      "Estimated days until the balance runs out (0 when unknown)",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "balance_sentinel",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run",
		}),
		RunsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "balance_sentinel",
			Name:      "runs_total",
			Help:      "Runs by outcome",
		}, []string{"status"}), // "ok" / "fetch_failed" / "failed"
	}
	m.Registry.MustRegister(
		m.RemainingBalance,
		m.AverageDailyUsage,
		m.PeriodUsage,
		m.EstimatedDaysRemaining,
		m.LastRunTimestamp,
		m.RunsTotal,
	)
	return m
}

// Observe sets the gauges from the run statistics.
func (m *Metrics) Observe(st model.Stats, runAt float64) {
	m.RemainingBalance.Set(st.LatestRemaining.InexactFloat64())
	m.AverageDailyUsage.Set(st.AverageDailyConsumption.InexactFloat64())
	m.PeriodUsage.Set(st.TotalConsumption.InexactFloat64())
	m.EstimatedDaysRemaining.Set(st.EstimatedDaysRemaining.InexactFloat64())
	m.LastRunTimestamp.Set(runAt)
}

// RunFinished counts a run outcome.
func (m *Metrics) RunFinished(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

// WriteTextfile writes all series in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
