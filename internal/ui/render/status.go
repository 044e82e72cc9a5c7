package render

import (
	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/term"
	"github.com/kk-code-lab/peek/internal/textutil"
)

// Status is the one-line region below the grid. Error and Message are shown
// once; the caller clears them after the render that displayed them.
type Status struct {
	Error     string
	Message   string
	Prompting bool
	Input     string
}

type statusPart struct {
	sgr  string
	text string
}

// statusLine writes the selected name followed by the error, message or
// command prompt, cut to fit in front of the last terminal column.
func (r *Renderer) statusLine(v View) {
	var parts []statusPart
	if v.ScanErr == nil && v.Selection.Valid() && v.Selection.Selected < len(v.Metrics) {
		parts = append(parts, statusPart{term.SGR(r.theme.Name), v.Metrics[v.Selection.Selected].Text})
	}

	s := v.Status
	switch {
	case s.Prompting:
		parts = append(parts, statusPart{term.SGR(r.theme.Prompt), ":" + textutil.SanitizeLine(s.Input)})
	case s.Error != "":
		parts = append(parts, statusPart{term.SGR(r.theme.Error), textutil.SanitizeLine(s.Error)})
	case s.Message != "":
		parts = append(parts, statusPart{"", textutil.SanitizeLine(s.Message)})
	}

	budget := max(v.Cols-1, 0)
	for k, part := range parts {
		if k > 0 {
			if budget <= layout.DelimWidth {
				return
			}
			r.buf.WriteString(layout.Delim)
			budget -= layout.DelimWidth
		}
		text := textutil.Truncate(part.text, budget, layout.TruncateMarker)
		if text == "" {
			return
		}
		r.styled(part.sgr, text)
		budget -= textutil.StringWidth(text)
	}
}
