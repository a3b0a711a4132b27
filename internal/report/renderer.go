package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"BalanceSentinel/internal/model"
)

// maxProjectedDays bounds the depletion date projection.
var maxProjectedDays = decimal.NewFromInt(3650)

// Options configures the report layout.
type Options struct {
	Title    string
	Currency string
	Column   TableColumn
}

// Report is the rendered output of one run.
type Report struct {
	Markdown string
	Stats    model.Stats
	Chart    []byte // side artifact of the trend backend, nil when it produced none
	TrendErr error  // non-nil when the trend degraded to a placeholder
}

// Renderer combines statistics, the trend and the history table into one Markdown report.
type Renderer struct {
	opts       Options
	visualizer TrendVisualizer
	logger     *zap.Logger
}

// NewRenderer creates a Renderer. A nil visualizer disables the trend section.
func NewRenderer(opts Options, vis TrendVisualizer, logger *zap.Logger) *Renderer {
	if vis == nil {
		vis = NoneVisualizer{}
	}
	if opts.Column == "" {
		opts.Column = ColumnCumulative
	}
	return &Renderer{opts: opts, visualizer: vis, logger: logger}
}

// Render builds the report for the given ledger. A failing trend backend never aborts the report;
// its section is replaced by a placeholder and the error is returned in Report.TrendErr.
func (r *Renderer) Render(records []model.DayRecord, generatedAt time.Time) Report {
	rep := Report{Stats: Summarize(records)}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("# %s\n\n", r.opts.Title))

	if len(records) == 0 {
		b.WriteString("No balance snapshots recorded yet.\n")
		b.WriteString(fmt.Sprintf("\n_Generated at %s_\n", generatedAt.Format(fetchedLayout)))
		rep.Markdown = b.String()
		return rep
	}

	r.writeStats(&b, rep.Stats)

	if _, off := r.visualizer.(NoneVisualizer); !off {
		trend := BuildTrend(records)
		b.WriteString(fmt.Sprintf("## Usage trend (last %d days)\n\n", len(trend.Points)))
		visual, err := r.visualizer.Visualize(trend)
		if err != nil {
			rep.TrendErr = fmt.Errorf("%w: %s: %v", ErrRenderFailure, r.visualizer.Name(), err)
			r.logger.Warn("trend rendering failed, using placeholder",
				zap.String("backend", r.visualizer.Name()), zap.Error(err))
			b.WriteString("_Trend chart unavailable._\n\n")
		} else {
			b.WriteString(visual.Markdown)
			b.WriteString("\n")
			rep.Chart = visual.Artifact
		}
	}

	b.WriteString("## History\n\n")
	writeTable(&b, records, r.opts.Column)
	b.WriteString(fmt.Sprintf("\n_Generated at %s_\n", generatedAt.Format(fetchedLayout)))

	rep.Markdown = b.String()
	return rep
}

func (r *Renderer) writeStats(b *strings.Builder, st model.Stats) {
	b.WriteString("## Statistics\n\n")
	b.WriteString(fmt.Sprintf("- Current period: since %s (%d days)\n", st.PeriodStart.Format(model.DateLayout), st.ValidDays))
	b.WriteString(fmt.Sprintf("- Total usage: %s\n", r.money(st.TotalConsumption.StringFixed(2))))
	b.WriteString(fmt.Sprintf("- Average daily usage: %s\n", r.money(st.AverageDailyConsumption.StringFixed(2))))
	b.WriteString(fmt.Sprintf("- Remaining balance: %s (%s)\n", r.money(st.LatestRemaining.StringFixed(2)), st.LatestDate.Format(model.DateLayout)))
	days := st.EstimatedDaysRemaining
	if days.IsZero() || days.GreaterThan(maxProjectedDays) {
		b.WriteString(fmt.Sprintf("- Estimated days remaining: %s\n\n", days.StringFixed(1)))
		return
	}
	depletion := st.LatestDate.AddDate(0, 0, int(days.IntPart()))
	b.WriteString(fmt.Sprintf("- Estimated days remaining: %s (around %s)\n\n", days.StringFixed(1), depletion.Format(model.DateLayout)))
}

func (r *Renderer) money(v string) string {
	if r.opts.Currency == "" {
		return v
	}
	return v + " " + r.opts.Currency
}
