package report

import (
	"fmt"
	"math"
	"strings"
)

const (
	asciiWidth  = 60
	asciiHeight = 8
	asciiDot    = '●'
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// ASCIIVisualizer renders the trend as a fixed-size text plot followed by a sparkline.
type ASCIIVisualizer struct{}

func (ASCIIVisualizer) Name() string { return "ascii" }

func (ASCIIVisualizer) Visualize(t Trend) (Visual, error) {
	if len(t.Points) == 0 {
		return Visual{}, errNoPoints
	}
	span := t.Max - t.Min
	if span <= 0 {
		return Visual{}, fmt.Errorf("empty value axis [%g, %g]", t.Min, t.Max)
	}

	grid := make([][]rune, asciiHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", asciiWidth))
	}
	for _, p := range t.Points {
		col := int(math.Round(p.X * float64(asciiWidth-1)))
		row := int(math.Round((t.Max - p.Value) / span * float64(asciiHeight-1)))
		grid[clamp(row, 0, asciiHeight-1)][clamp(col, 0, asciiWidth-1)] = asciiDot
	}

	top := fmt.Sprintf("%.2f", t.Max)
	bottom := fmt.Sprintf("%.2f", t.Min)
	lw := max(len(top), len(bottom))

	var b strings.Builder
	b.WriteString("```text\n")
	for i, row := range grid {
		label, axis := strings.Repeat(" ", lw), " │"
		switch i {
		case 0:
			label, axis = fmt.Sprintf("%*s", lw, top), " ┤"
		case asciiHeight - 1:
			label, axis = fmt.Sprintf("%*s", lw, bottom), " ┤"
		}
		b.WriteString(strings.TrimRight(label+axis+string(row), " "))
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", lw) + " └" + strings.Repeat("─", asciiWidth) + "\n")
	b.WriteString(axisLabels(t.Labels, lw+2) + "\n")
	b.WriteString("```\n")
	b.WriteString("\nSparkline: `" + sparkline(t) + "`\n")
	return Visual{Markdown: b.String()}, nil
}

// axisLabels positions the horizontal labels under the plot. The last of several labels is
// right-aligned to its point so it stays inside the plot width.
func axisLabels(labels []AxisLabel, offset int) string {
	line := []rune(strings.Repeat(" ", offset+asciiWidth+8))
	for i, l := range labels {
		text := []rune(l.Text)
		start := offset + int(math.Round(l.X*float64(asciiWidth-1)))
		switch {
		case len(labels) == 1:
			start -= len(text) / 2
		case i == len(labels)-1:
			start -= len(text) - 1
		}
		start = clamp(start, 0, len(line)-len(text))
		copy(line[start:], text)
	}
	return strings.TrimRight(string(line), " ")
}

func sparkline(t Trend) string {
	span := t.Max - t.Min
	out := make([]rune, len(t.Points))
	for i, p := range t.Points {
		level := int(math.Round((p.Value - t.Min) / span * float64(len(sparkLevels)-1)))
		out[i] = sparkLevels[clamp(level, 0, len(sparkLevels)-1)]
	}
	return string(out)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
