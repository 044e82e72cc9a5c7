package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/term"
)

// Print writes the whole listing once, without highlight or truncation, for
// non-interactive use. Unformatted listings keep the gap after every entry.
func Print(out io.Writer, metrics []layout.Metric, l layout.Layout) error {
	w := bufio.NewWriter(out)
	for i, m := range metrics {
		sgr := term.SGR(m.Decoration.Style)
		if sgr != "" {
			_, _ = w.WriteString(sgr)
			_, _ = w.WriteString(m.Text)
			_, _ = w.WriteString(term.Reset)
		} else {
			_, _ = w.WriteString(m.Text)
		}
		if m.Decoration.Indicator != 0 {
			_ = w.WriteByte(m.Decoration.Indicator)
		}

		if !l.Formatted {
			_, _ = w.WriteString(layout.Delim)
			continue
		}
		col := l.Column(i)
		if col == l.Columns-1 || i == len(metrics)-1 {
			_ = w.WriteByte('\n')
			continue
		}
		_, _ = w.WriteString(strings.Repeat(" ", max(l.Widths[col]-m.Decorated(), 0)))
		_, _ = w.WriteString(layout.Delim)
	}
	if !l.Formatted && len(metrics) > 0 {
		_ = w.WriteByte('\n')
	}
	return w.Flush()
}
