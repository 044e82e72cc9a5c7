package fs

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
)

// Decoration is the color and ls -F style indicator drawn for an entry.
type Decoration struct {
	Style     tcell.Style
	Indicator byte // 0 when nothing is appended
}

// DecorateOptions toggles the two halves of a decoration.
type DecorateOptions struct {
	Color    bool
	Indicate bool
}

var (
	styleFIFO   = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleDevice = tcell.StyleDefault.Foreground(tcell.ColorOlive).Bold(true)
	styleDir    = tcell.StyleDefault.Foreground(tcell.ColorNavy).Bold(true)
	styleLink   = tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true)
	styleSocket = tcell.StyleDefault.Foreground(tcell.ColorPurple).Bold(true)
	styleExec   = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
)

// executableProbe is overridable in tests.
var executableProbe = func(path string) bool {
	return unix.Access(path, unix.X_OK) == nil
}

// Classify derives an entry's decoration from its type. Regular files and
// entries of unknown type fall back to an executability check.
func Classify(e Entry, opts DecorateOptions) Decoration {
	var d Decoration
	switch e.Kind {
	case KindDir:
		d = Decoration{Style: styleDir, Indicator: '/'}
	case KindSymlink:
		d = Decoration{Style: styleLink, Indicator: '@'}
	case KindFIFO:
		d = Decoration{Style: styleFIFO, Indicator: '|'}
	case KindSocket:
		d = Decoration{Style: styleSocket, Indicator: '='}
	case KindCharDevice, KindBlockDevice:
		d = Decoration{Style: styleDevice}
	default:
		if executableProbe(e.FullPath) {
			d = Decoration{Style: styleExec, Indicator: '*'}
		} else {
			d = Decoration{Style: tcell.StyleDefault}
		}
	}

	if !opts.Color {
		d.Style = tcell.StyleDefault
	}
	if !opts.Indicate {
		d.Indicator = 0
	}
	return d
}

// Width is the number of cells the indicator adds.
func (d Decoration) Width() int {
	if d.Indicator == 0 {
		return 0
	}
	return 1
}
