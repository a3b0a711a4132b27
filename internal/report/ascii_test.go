package report

import (
	"strings"
	"testing"
)

func TestASCIIVisualizer_Plot(t *testing.T) {
	trend := BuildTrend(dailyLedger(t, "1000", "990", "970"))
	visual, err := ASCIIVisualizer{}.Visualize(trend)
	if err != nil {
		t.Fatalf("Visualize: %v", err)
	}
	out := visual.Markdown

	if got := strings.Count(out, string(asciiDot)); got != 3 {
		t.Errorf("expected 3 plotted points, got %d\n%s", got, out)
	}
	for _, want := range []string{"22.00 ┤", "-2.00 ┤", "05-01", "05-03", "Sparkline: `▂▅▇`"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n%s", want, out)
		}
	}
	if visual.Artifact != nil {
		t.Error("ascii backend must not produce an artifact")
	}

	lines := strings.Split(out, "\n")
	// fence + 8 rows: the highest value sits on the second plot row
	if !strings.HasSuffix(lines[2], string(asciiDot)) {
		t.Errorf("expected the last point near the top, got %q", lines[2])
	}
}

func TestASCIIVisualizer_SinglePoint(t *testing.T) {
	trend := BuildTrend(dailyLedger(t, "10"))
	visual, err := ASCIIVisualizer{}.Visualize(trend)
	if err != nil {
		t.Fatalf("Visualize: %v", err)
	}
	if got := strings.Count(visual.Markdown, string(asciiDot)); got != 1 {
		t.Errorf("expected 1 plotted point, got %d", got)
	}
	if !strings.Contains(visual.Markdown, "05-01") {
		t.Errorf("expected the single date label\n%s", visual.Markdown)
	}
}

func TestASCIIVisualizer_NoPoints(t *testing.T) {
	if _, err := (ASCIIVisualizer{}).Visualize(Trend{}); err == nil {
		t.Error("expected error for empty trend")
	}
}

func TestAxisLabels_StayInsidePlot(t *testing.T) {
	line := axisLabels([]AxisLabel{{X: 0, Text: "01-01"}, {X: 1, Text: "01-14"}}, 2)
	if !strings.HasPrefix(line, "  01-01") {
		t.Errorf("expected first label at the plot origin, got %q", line)
	}
	if len([]rune(line)) != 2+asciiWidth {
		t.Errorf("expected last label to end at the plot edge, got width %d", len([]rune(line)))
	}
}
