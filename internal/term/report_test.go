package term

import (
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func byteFeed(s string) func() (byte, error) {
	r := strings.NewReader(s)
	return r.ReadByte
}

func TestScanCursorReport(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		row, col int
	}{
		{"plain", "\x1b[12;40R", 12, 40},
		{"after typed keys", "jk\x1b[3;1R", 3, 1},
		{"restarts after diverging", "\x1b[5x\x1b[7;9R", 7, 9},
		{"escape inside report", "\x1b[4;\x1b[2;3R", 2, 3},
		{"arrow key before report", "\x1b[A\x1b[1;1R", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, err := ScanCursorReport(byteFeed(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.row, row)
			assert.Equal(t, tt.col, col)
		})
	}
}

func TestScanCursorReportGivesUp(t *testing.T) {
	_, _, err := ScanCursorReport(byteFeed(strings.Repeat("x", maxReportScan+10)))
	assert.True(t, errors.Is(err, ErrNoCursorReport))

	_, _, err = ScanCursorReport(byteFeed("\x1b[3;"))
	assert.Equal(t, io.EOF, err)
}

func TestMove(t *testing.T) {
	var b strings.Builder
	Move(&b, -3, 4)
	Move(&b, 2, -1)
	Move(&b, 0, 0)
	assert.Equal(t, "\x1b[3A\x1b[4C\x1b[2B\x1b[1D", b.String())
}

func TestSGR(t *testing.T) {
	tests := []struct {
		name  string
		style tcell.Style
		want  string
	}{
		{"default", tcell.StyleDefault, ""},
		{"bold navy", tcell.StyleDefault.Foreground(tcell.ColorNavy).Bold(true), "\x1b[34;1m"},
		{"olive", tcell.StyleDefault.Foreground(tcell.ColorOlive), "\x1b[33m"},
		{"bright red", tcell.StyleDefault.Foreground(tcell.ColorRed), "\x1b[91m"},
		{"palette", tcell.StyleDefault.Foreground(tcell.PaletteColor(202)), "\x1b[38;5;202m"},
		{"rgb", tcell.StyleDefault.Foreground(tcell.NewRGBColor(1, 2, 3)), "\x1b[38;2;1;2;3m"},
		{"reverse", tcell.StyleDefault.Reverse(true), "\x1b[7m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SGR(tt.style))
		})
	}
}
