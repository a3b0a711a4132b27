package report

import (
	"errors"
	"math"
	"time"

	"BalanceSentinel/internal/ledger"
	"BalanceSentinel/internal/model"
)

// TrendWindow is the number of most recent records shown in the trend.
const TrendWindow = 14

// ErrRenderFailure wraps any error raised while drawing the trend.
var ErrRenderFailure = errors.New("render failure")

var errNoPoints = errors.New("no points to plot")

// TrendPoint is one plotted value. X is the rank position in [0, 1]; actual date spacing is ignored.
type TrendPoint struct {
	Date  time.Time
	Value float64
	X     float64
}

// AxisLabel is a horizontal axis label anchored at position X in [0, 1].
type AxisLabel struct {
	X    float64
	Text string
}

// Trend is the backend-independent geometry of the usage chart.
type Trend struct {
	Points []TrendPoint
	Min    float64
	Max    float64
	Labels []AxisLabel
}

// Visual is a rendered trend: a Markdown fragment and an optional side artifact.
type Visual struct {
	Markdown string
	Artifact []byte
}

// TrendVisualizer draws a Trend.
type TrendVisualizer interface {
	Name() string
	Visualize(t Trend) (Visual, error)
}

// BuildTrend lays out the daily consumption of the most recent TrendWindow records.
func BuildTrend(records []model.DayRecord) Trend {
	window := ledger.Window(records, TrendWindow)
	n := len(window)
	if n == 0 {
		return Trend{}
	}

	t := Trend{Points: make([]TrendPoint, n)}
	lo, hi := math.Inf(1), math.Inf(-1)
	for i, r := range window {
		v := r.DailyConsumption.InexactFloat64()
		x := 0.5
		if n > 1 {
			x = float64(i) / float64(n-1)
		}
		t.Points[i] = TrendPoint{Date: r.Date, Value: v, X: x}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if n == 1 || hi == lo {
		// zero-height axis: synthesize a band around the value
		pad := math.Abs(lo) * 0.2
		if pad == 0 {
			pad = 1
		}
		t.Min, t.Max = lo-pad, hi+pad
	} else {
		pad := (hi - lo) * 0.1
		t.Min, t.Max = lo-pad, hi+pad
	}

	if n == 1 {
		t.Labels = []AxisLabel{{X: 0.5, Text: monthDay(window[0].Date)}}
	} else {
		t.Labels = []AxisLabel{
			{X: 0, Text: monthDay(window[0].Date)},
			{X: 1, Text: monthDay(window[n-1].Date)},
		}
	}
	return t
}

func monthDay(d time.Time) string { return d.Format("01-02") }
