package term

import (
	"io"
	"strconv"

	"github.com/gdamore/tcell/v2"
)

// Escape sequences written by the renderer.
const (
	HideCursor   = "\x1b[?25l"
	ShowCursor   = "\x1b[?25h"
	EraseBelow   = "\x1b[0J"
	EraseLine    = "\x1b[2K"
	EraseToEOL   = "\x1b[0K"
	Reset        = "\x1b[m"
	Bold         = "\x1b[1m"
	Invert       = "\x1b[7m"
	Red          = "\x1b[31m"
	CursorReport = "\x1b[6n"
	CRLF         = "\r\n"
)

// Move writes a relative cursor move: rows > 0 is down, cells > 0 is right.
// Nothing is written for a zero distance.
func Move(w io.Writer, rows, cells int) {
	switch {
	case rows < 0:
		writeCSI(w, -rows, 'A')
	case rows > 0:
		writeCSI(w, rows, 'B')
	}
	switch {
	case cells > 0:
		writeCSI(w, cells, 'C')
	case cells < 0:
		writeCSI(w, -cells, 'D')
	}
}

func writeCSI(w io.Writer, n int, final byte) {
	buf := make([]byte, 0, 8)
	buf = append(buf, '\x1b', '[')
	buf = strconv.AppendInt(buf, int64(n), 10)
	buf = append(buf, final)
	_, _ = w.Write(buf)
}

// SGR returns the select-graphic-rendition sequence for a decoration style,
// or "" for the default style.
func SGR(style tcell.Style) string {
	fg, _, attrs := style.Decompose()

	params := make([]byte, 0, 16)
	add := func(p string) {
		if len(params) > 0 {
			params = append(params, ';')
		}
		params = append(params, p...)
	}

	switch {
	case fg == tcell.ColorDefault || !fg.Valid():
	case fg.IsRGB():
		r, g, b := fg.RGB()
		add("38;2;" + strconv.Itoa(int(r)) + ";" + strconv.Itoa(int(g)) + ";" + strconv.Itoa(int(b)))
	default:
		idx := int(fg - tcell.ColorValid)
		switch {
		case idx < 8:
			add(strconv.Itoa(30 + idx))
		case idx < 16:
			add(strconv.Itoa(90 + idx - 8))
		default:
			add("38;5;" + strconv.Itoa(idx))
		}
	}
	if attrs&tcell.AttrBold != 0 {
		add("1")
	}
	if attrs&tcell.AttrReverse != 0 {
		add("7")
	}

	if len(params) == 0 {
		return ""
	}
	return "\x1b[" + string(params) + "m"
}
