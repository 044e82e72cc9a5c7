package layout

import (
	fsutil "github.com/kk-code-lab/peek/internal/fs"
	"github.com/kk-code-lab/peek/internal/textutil"
)

// Metric is an entry measured for display.
type Metric struct {
	Text       string // printable rendition of the name
	Width      int    // cells taken by Text
	Decoration fsutil.Decoration
}

// MeasureOptions selects how names are rendered and decorated.
type MeasureOptions struct {
	Hex      bool
	Decorate fsutil.DecorateOptions
}

// Decorated is the width of the name plus its indicator.
func (m Metric) Decorated() int {
	return m.Width + m.Decoration.Width()
}

// Measure computes the display metrics of every entry in a snapshot.
func Measure(entries []fsutil.Entry, opts MeasureOptions) []Metric {
	metrics := make([]Metric, len(entries))
	for i, e := range entries {
		text := textutil.RenderName(e.Label, opts.Hex)
		metrics[i] = Metric{
			Text:       text,
			Width:      textutil.StringWidth(text),
			Decoration: fsutil.Classify(e, opts.Decorate),
		}
	}
	return metrics
}

// DecoratedWidths extracts the decorated widths the solver works on.
func DecoratedWidths(metrics []Metric) []int {
	widths := make([]int, len(metrics))
	for i, m := range metrics {
		widths[i] = m.Decorated()
	}
	return widths
}
