// Package termtest provides an in-memory terminal for tests: a Fake that
// satisfies term.Terminal and an Emulator that interprets the escape
// sequences the renderer writes.
package termtest

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/kk-code-lab/peek/internal/textutil"
)

// Cell is one screen position.
type Cell struct {
	Rune    rune // 0 marks the right half of a wide rune
	Inverse bool
	Bold    bool
}

var blank = Cell{Rune: ' '}

// Emulator is a minimal VT100 screen. It understands relative cursor moves,
// CR, LF with scrolling, erase in display/line and SGR bold/inverse.
// Absolute positioning is counted in Absolute so tests can assert it never
// happens.
type Emulator struct {
	rows, cols int
	screen     [][]Cell
	row, col   int
	wrapNext   bool
	attr       Cell
	pending    []byte

	// Scrolled counts lines pushed off the top.
	Scrolled int
	// Absolute counts CUP/HVP sequences seen.
	Absolute int
	// CursorHidden tracks ?25l / ?25h.
	CursorHidden bool
}

// NewEmulator returns a blank screen with the cursor at the top left.
func NewEmulator(rows, cols int) *Emulator {
	e := &Emulator{rows: rows, cols: cols}
	e.screen = make([][]Cell, rows)
	for r := range e.screen {
		e.screen[r] = blankLine(cols)
	}
	return e
}

func blankLine(cols int) []Cell {
	line := make([]Cell, cols)
	for i := range line {
		line[i] = blank
	}
	return line
}

// Resize changes the screen size, keeping what still fits.
func (e *Emulator) Resize(rows, cols int) {
	screen := make([][]Cell, rows)
	for r := range screen {
		screen[r] = blankLine(cols)
		if r < len(e.screen) {
			copy(screen[r], e.screen[r])
		}
	}
	e.screen = screen
	e.rows, e.cols = rows, cols
	e.row = min(e.row, rows-1)
	e.col = min(e.col, cols-1)
	e.wrapNext = false
}

// SetCursor places the cursor, for tests that start mid-screen.
func (e *Emulator) SetCursor(row, col int) {
	e.row, e.col = row, col
	e.wrapNext = false
}

// Cursor returns the zero-based cursor position.
func (e *Emulator) Cursor() (row, col int) {
	return e.row, e.col
}

// Line returns row r with trailing blanks trimmed.
func (e *Emulator) Line(r int) string {
	var b strings.Builder
	for _, c := range e.screen[r] {
		if c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Lines returns every row of the screen.
func (e *Emulator) Lines() []string {
	out := make([]string, e.rows)
	for r := range out {
		out[r] = e.Line(r)
	}
	return out
}

// At returns the cell at row r, column c.
func (e *Emulator) At(r, c int) Cell {
	return e.screen[r][c]
}

// InverseText collects the inverted cells of row r.
func (e *Emulator) InverseText(r int) string {
	var b strings.Builder
	for _, c := range e.screen[r] {
		if c.Inverse && c.Rune != 0 {
			b.WriteRune(c.Rune)
		}
	}
	return b.String()
}

// Snapshot copies the screen so two renders can be compared.
func (e *Emulator) Snapshot() [][]Cell {
	out := make([][]Cell, len(e.screen))
	for r, line := range e.screen {
		out[r] = append([]Cell(nil), line...)
	}
	return out
}

func (e *Emulator) Write(p []byte) (int, error) {
	e.pending = append(e.pending, p...)
	i := 0
	for i < len(e.pending) {
		n := e.step(e.pending[i:])
		if n == 0 {
			break
		}
		i += n
	}
	e.pending = append(e.pending[:0], e.pending[i:]...)
	return len(p), nil
}

// step consumes one control, sequence or rune and returns the bytes used,
// or 0 when buf ends in the middle of one.
func (e *Emulator) step(buf []byte) int {
	switch b := buf[0]; {
	case b == 0x1b:
		return e.escape(buf)
	case b == '\r':
		e.col = 0
		e.wrapNext = false
		return 1
	case b == '\n':
		e.lineFeed()
		return 1
	case b == '\b':
		e.col = max(e.col-1, 0)
		e.wrapNext = false
		return 1
	case b < 0x20 || b == 0x7f:
		return 1
	}

	if !utf8.FullRune(buf) {
		return 0
	}
	r, size := utf8.DecodeRune(buf)
	e.put(r)
	return size
}

func (e *Emulator) lineFeed() {
	e.wrapNext = false
	if e.row < e.rows-1 {
		e.row++
		return
	}
	copy(e.screen, e.screen[1:])
	e.screen[e.rows-1] = blankLine(e.cols)
	e.Scrolled++
}

func (e *Emulator) put(r rune) {
	w := textutil.RuneWidth(r)
	if w == 0 {
		return
	}
	if e.wrapNext || e.col+w > e.cols {
		e.col = 0
		e.lineFeed()
	}
	cell := e.attr
	cell.Rune = r
	e.screen[e.row][e.col] = cell
	if w == 2 {
		cont := e.attr
		cont.Rune = 0
		e.screen[e.row][e.col+1] = cont
	}
	e.col += w
	if e.col >= e.cols {
		e.col = e.cols - 1
		e.wrapNext = true
	}
}

func (e *Emulator) escape(buf []byte) int {
	if len(buf) < 2 {
		return 0
	}
	if buf[1] != '[' {
		return 2
	}
	i := 2
	for i < len(buf) && (buf[i] < 0x40 || buf[i] > 0x7e) {
		i++
	}
	if i == len(buf) {
		return 0
	}
	params := string(buf[2:i])
	e.csi(params, buf[i])
	return i + 1
}

func (e *Emulator) csi(params string, final byte) {
	if strings.HasPrefix(params, "?") {
		switch params + string(final) {
		case "?25l":
			e.CursorHidden = true
		case "?25h":
			e.CursorHidden = false
		}
		return
	}

	n := 1
	if v, err := strconv.Atoi(params); err == nil && v > 0 {
		n = v
	}

	switch final {
	case 'A':
		e.row = max(e.row-n, 0)
	case 'B':
		e.row = min(e.row+n, e.rows-1)
	case 'C':
		e.col = min(e.col+n, e.cols-1)
	case 'D':
		e.col = max(e.col-n, 0)
	case 'H', 'f':
		e.Absolute++
	case 'J':
		if params == "" || params == "0" {
			e.eraseLine(e.row, e.col)
			for r := e.row + 1; r < e.rows; r++ {
				e.screen[r] = blankLine(e.cols)
			}
		}
	case 'K':
		switch params {
		case "", "0":
			e.eraseLine(e.row, e.col)
		case "2":
			e.eraseLine(e.row, 0)
		}
	case 'm':
		e.sgr(params)
	default:
		return
	}
	e.wrapNext = false
}

func (e *Emulator) eraseLine(row, from int) {
	for c := from; c < e.cols; c++ {
		e.screen[row][c] = blank
	}
}

func (e *Emulator) sgr(params string) {
	if params == "" {
		e.attr = Cell{}
		return
	}
	parts := strings.Split(params, ";")
	for i := 0; i < len(parts); i++ {
		switch p := parts[i]; p {
		case "38", "48":
			// Extended colors carry their own arguments.
			if i+1 < len(parts) && parts[i+1] == "2" {
				i += 4
			} else {
				i += 2
			}
		case "0":
			e.attr = Cell{}
		case "1":
			e.attr.Bold = true
		case "22":
			e.attr.Bold = false
		case "7":
			e.attr.Inverse = true
		case "27":
			e.attr.Inverse = false
		}
	}
}
