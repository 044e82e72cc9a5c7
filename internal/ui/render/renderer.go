package render

import (
	"bytes"
	"io"
	"strings"

	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/nav"
	"github.com/kk-code-lab/peek/internal/term"
	"github.com/kk-code-lab/peek/internal/textutil"
)

// Markers drawn in place of the grid.
const (
	MarkerEmpty    = "empty"
	MarkerCantScan = "could not scan"
)

// Frame is what the terminal looked like at the last full repaint.
type Frame struct {
	Rows  int
	Cols  int
	Dirty bool
}

// View is everything one render needs. The renderer never mutates it.
type View struct {
	Rows, Cols int

	Dir     string
	ShowDir bool

	Metrics   []layout.Metric
	Layout    layout.Layout
	Window    layout.Window
	Selection nav.Selection
	ScanErr   error

	Status Status
}

// placement is where an entry was drawn, relative to the anchor.
type placement struct {
	rowsDown  int
	cellsOver int
}

// Renderer draws the listing below an anchor line, which is the line the
// cursor sits on whenever Render returns. It moves the cursor only
// relatively, so it keeps working after the terminal scrolls.
type Renderer struct {
	out   io.Writer
	theme Theme
	buf   bytes.Buffer

	frame       Frame
	window      layout.Window
	placements  []placement // indexed by entry - window.Offset
	highlighted int
	statusRow   int
}

// NewRenderer returns a renderer whose first Render is a full repaint.
func NewRenderer(out io.Writer, theme Theme) *Renderer {
	return &Renderer{
		out:         out,
		theme:       theme,
		frame:       Frame{Dirty: true},
		highlighted: nav.None,
	}
}

// Invalidate forces the next Render to repaint everything.
func (r *Renderer) Invalidate() {
	r.frame.Dirty = true
}

// Frame returns the state of the last repaint.
func (r *Renderer) Frame() Frame {
	return r.frame
}

// GridRows is how many terminal rows the grid may use once the header and
// status line are accounted for.
func GridRows(termRows int, showDir bool) int {
	rows := termRows - 1
	if showDir {
		rows--
	}
	return max(rows, 1)
}

// Render repaints the listing, fully when the frame is dirty, the terminal
// was resized or the window moved, and otherwise only the two entries whose
// highlight changed. The status line is rewritten either way.
func (r *Renderer) Render(v View) error {
	r.buf.Reset()
	if r.needsFull(v) {
		r.full(v)
	} else {
		r.incremental(v)
	}
	r.status(v)
	_, err := r.out.Write(r.buf.Bytes())
	return err
}

func (r *Renderer) needsFull(v View) bool {
	return r.frame.Dirty ||
		r.frame.Rows != v.Rows ||
		r.frame.Cols != v.Cols ||
		r.window != v.Window
}

func (r *Renderer) full(v View) {
	b := &r.buf
	b.WriteString("\r")
	b.WriteString(term.EraseBelow)

	rowsDown := 0
	if v.ShowDir {
		r.header(v)
		b.WriteString(term.CRLF)
		rowsDown++
	}

	r.placements = r.placements[:0]
	r.highlighted = nav.None

	switch {
	case v.ScanErr != nil:
		r.marker(MarkerCantScan)
		rowsDown++
	case len(v.Metrics) == 0:
		r.marker(MarkerEmpty)
		rowsDown++
	default:
		rowsDown += r.grid(v, rowsDown)
	}

	r.statusRow = rowsDown
	r.window = v.Window
	r.frame = Frame{Rows: v.Rows, Cols: v.Cols}

	term.Move(b, -rowsDown, 0)
}

func (r *Renderer) header(v View) {
	dir := textutil.RenderName(v.Dir, false)
	if dir != "/" {
		dir += "/"
	}
	dir = textutil.Truncate(dir, max(v.Cols-1, 1), layout.TruncateMarker)
	r.styled(term.SGR(r.theme.Header), dir)
}

func (r *Renderer) marker(text string) {
	r.styled(term.SGR(r.theme.Marker), text)
	r.buf.WriteString(term.CRLF)
}

// grid draws the window row by row and returns the rows it used, including
// the line break after the last one.
func (r *Renderer) grid(v View, top int) int {
	b := &r.buf
	l := v.Layout
	w := v.Window
	rows := 0
	cells := 0

	for i := w.Offset; i <= w.Limit; i++ {
		col := l.Column(i)
		if l.Formatted && col == 0 && i > w.Offset {
			b.WriteString(term.CRLF)
			rows++
		}

		p := placement{rowsDown: top + rows}
		if l.Formatted {
			p.cellsOver = l.CellsOver(col)
		} else {
			p.cellsOver = cells
		}
		r.placements = append(r.placements, p)

		selected := i == v.Selection.Selected
		drawn := r.entry(v, i, selected)
		if selected {
			r.highlighted = i
		}

		// The last entry of a row gets no trailing gap so a full row never
		// touches the final terminal column.
		last := i == w.Limit || (l.Formatted && col == l.Columns-1)
		if last {
			continue
		}
		if l.Formatted {
			b.WriteString(strings.Repeat(" ", max(l.Widths[col]-drawn, 0)))
			b.WriteString(layout.Delim)
		} else {
			b.WriteString(layout.Delim)
			cells += drawn + layout.DelimWidth
		}
	}

	b.WriteString(term.CRLF)
	return rows + 1
}

// entry draws entry i at the cursor and returns the cells it took.
func (r *Renderer) entry(v View, i int, selected bool) int {
	m := v.Metrics[i]
	text := m.Text
	if limit := v.Layout.Cap; limit > 0 && m.Decorated() > limit {
		text = textutil.Truncate(text, limit-m.Decoration.Width(), layout.TruncateMarker)
	}

	sgr := term.SGR(m.Decoration.Style)
	if selected {
		sgr += term.SGR(r.theme.Selection)
	}
	r.styled(sgr, text)

	width := textutil.StringWidth(text)
	if m.Decoration.Indicator != 0 {
		r.buf.WriteByte(m.Decoration.Indicator)
		width++
	}
	return width
}

func (r *Renderer) styled(sgr, text string) {
	if sgr == "" {
		r.buf.WriteString(text)
		return
	}
	r.buf.WriteString(sgr)
	r.buf.WriteString(text)
	r.buf.WriteString(term.Reset)
}

func (r *Renderer) incremental(v View) {
	sel := v.Selection.Selected
	for _, i := range []int{v.Selection.Previous, r.highlighted} {
		if i != sel {
			r.redraw(v, i, false)
		}
	}
	r.redraw(v, sel, true)
	if v.Window.Contains(sel) {
		r.highlighted = sel
	}
}

func (r *Renderer) redraw(v View, i int, selected bool) {
	if !v.Window.Contains(i) || i-v.Window.Offset >= len(r.placements) || i >= len(v.Metrics) {
		return
	}
	p := r.placements[i-v.Window.Offset]
	term.Move(&r.buf, p.rowsDown, p.cellsOver)
	r.entry(v, i, selected)
	r.buf.WriteString("\r")
	term.Move(&r.buf, -p.rowsDown, 0)
}

func (r *Renderer) status(v View) {
	b := &r.buf
	term.Move(b, r.statusRow, 0)
	b.WriteString(term.EraseLine)
	r.statusLine(v)
	b.WriteString("\r")
	term.Move(b, -r.statusRow, 0)
}

// Leave moves the cursor onto a fresh line below the listing, where an
// external program or the shell can write.
func (r *Renderer) Leave() error {
	r.buf.Reset()
	term.Move(&r.buf, r.statusRow, 0)
	r.buf.WriteString(term.CRLF)
	r.frame.Dirty = true
	_, err := r.out.Write(r.buf.Bytes())
	return err
}

// Clear erases the listing and leaves the cursor on the anchor line.
func (r *Renderer) Clear() error {
	r.buf.Reset()
	r.buf.WriteString("\r")
	r.buf.WriteString(term.EraseBelow)
	r.frame.Dirty = true
	_, err := r.out.Write(r.buf.Bytes())
	return err
}
