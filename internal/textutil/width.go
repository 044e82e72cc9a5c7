package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// hexCellWidth is the width of a byte rendered as \XX.
const hexCellWidth = 3

var widthCond = runewidth.NewCondition()

// RuneWidth reports how many terminal cells r occupies: 0, 1 or 2.
// Control, format and unassigned runes take no cells.
func RuneWidth(r rune) int {
	if !unicode.IsGraphic(r) {
		return 0
	}
	return widthCond.RuneWidth(r)
}

// DisplayWidth reports the printable width of an entry name. Bytes that do
// not decode as UTF-8 are zero-width filler and decoding picks up again at the
// next byte. With hex set, control and undecodable bytes count as \XX.
func DisplayWidth(name string, hex bool) int {
	width := 0
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		switch {
		case unprintable(r, size):
			if hex {
				width += hexCellWidth * size
			}
		default:
			width += RuneWidth(r)
		}
		i += size
	}
	return width
}

// RenderName returns the text to write for name. Its width always matches
// DisplayWidth(name, hex), so the result is safe to pad and align.
func RenderName(name string, hex bool) string {
	clean := true
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		if unprintable(r, size) || (RuneWidth(r) == 0 && !unicode.Is(unicode.Mn, r)) {
			clean = false
			break
		}
		i += size
	}
	if clean {
		return name
	}

	var b strings.Builder
	for i := 0; i < len(name); {
		r, size := utf8.DecodeRuneInString(name[i:])
		switch {
		case unprintable(r, size):
			if hex {
				for _, c := range []byte(name[i : i+size]) {
					writeHexByte(&b, c)
				}
			}
		case RuneWidth(r) == 0 && !unicode.Is(unicode.Mn, r):
			// Format runes (bidi overrides, zero-width joiners) are dropped
			// so they cannot reorder the rest of the row.
		default:
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

// Truncate shortens printable text so it fits in width cells, replacing the
// tail with marker when something had to be cut.
func Truncate(text string, width int, marker string) string {
	if width <= 0 {
		return ""
	}
	if StringWidth(text) <= width {
		return text
	}
	markerWidth := StringWidth(marker)
	if width <= markerWidth {
		return marker
	}

	target := width - markerWidth
	var b strings.Builder
	current := 0
	for _, r := range text {
		w := RuneWidth(r)
		if current+w > target {
			break
		}
		b.WriteRune(r)
		current += w
	}
	b.WriteString(marker)
	return b.String()
}

// StringWidth sums RuneWidth over already printable text.
func StringWidth(text string) int {
	width := 0
	for _, r := range text {
		width += RuneWidth(r)
	}
	return width
}

// unprintable reports whether a decoded rune is a C0 control, DEL, or a byte
// that failed to decode.
func unprintable(r rune, size int) bool {
	if r == utf8.RuneError && size <= 1 {
		return true
	}
	return r < 0x20 || r == 0x7f
}

func writeHexByte(b *strings.Builder, c byte) {
	const digits = "0123456789ABCDEF"
	b.WriteByte('\\')
	b.WriteByte(digits[c>>4])
	b.WriteByte(digits[c&0x0f])
}
