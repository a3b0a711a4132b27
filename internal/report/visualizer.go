package report

import "fmt"

// Trend modes accepted by NewVisualizer.
const (
	TrendNone  = "none"
	TrendASCII = "ascii"
	TrendSVG   = "svg"
)

// NoneVisualizer disables the trend section.
type NoneVisualizer struct{}

func (NoneVisualizer) Name() string                      { return TrendNone }
func (NoneVisualizer) Visualize(_ Trend) (Visual, error) { return Visual{}, nil }

// NewVisualizer selects the trend backend by mode. chartLink is only used by the svg backend.
func NewVisualizer(mode, chartLink string) (TrendVisualizer, error) {
	switch mode {
	case TrendNone:
		return NoneVisualizer{}, nil
	case TrendASCII:
		return ASCIIVisualizer{}, nil
	case TrendSVG:
		return NewSVGVisualizer(chartLink), nil
	default:
		return nil, fmt.Errorf("unknown trend mode %q", mode)
	}
}
