package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
)

// SVGVisualizer renders the trend as an SVG line chart. The chart bytes are returned as the
// Visual artifact; Link is the path the report uses to embed it.
type SVGVisualizer struct {
	Link   string
	Width  int
	Height int
}

// NewSVGVisualizer creates an SVG visualizer embedding the chart from link.
func NewSVGVisualizer(link string) *SVGVisualizer {
	return &SVGVisualizer{Link: link, Width: 800, Height: 320}
}

func (v *SVGVisualizer) Name() string { return "svg" }

func (v *SVGVisualizer) Visualize(t Trend) (Visual, error) {
	if len(t.Points) == 0 {
		return Visual{}, errNoPoints
	}

	xs := make([]float64, len(t.Points))
	ys := make([]float64, len(t.Points))
	for i, p := range t.Points {
		xs[i] = p.X
		ys[i] = p.Value
	}
	ticks := xTicks(t.Labels)

	graph := chart.Chart{
		Width:  v.Width,
		Height: v.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 40, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: t.Min, Max: t.Max},
			ValueFormatter: func(val interface{}) string {
				if f, ok := val.(float64); ok {
					return fmt.Sprintf("%.2f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "daily usage",
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    3,
				},
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.SVG, &buf); err != nil {
		return Visual{}, fmt.Errorf("render svg chart: %w", err)
	}
	return Visual{
		Markdown: fmt.Sprintf("![Daily usage trend](%s)\n", v.Link),
		Artifact: buf.Bytes(),
	}, nil
}

// xTicks turns the axis labels into ticks. go-chart derives the x range from custom ticks,
// so unlabelled ticks pin both ends of [0,1] when a label does not already sit there.
func xTicks(labels []AxisLabel) []chart.Tick {
	ticks := make([]chart.Tick, 0, len(labels)+2)
	if len(labels) == 0 || labels[0].X > 0 {
		ticks = append(ticks, chart.Tick{Value: 0})
	}
	for _, l := range labels {
		ticks = append(ticks, chart.Tick{Value: l.X, Label: l.Text})
	}
	if len(labels) == 0 || labels[len(labels)-1].X < 1 {
		ticks = append(ticks, chart.Tick{Value: 1})
	}
	return ticks
}
