package textutil

import "strings"

// SanitizeLine flattens free-form text (error strings, typed commands) onto a
// single status row: line breaks and tabs become spaces, other control runes
// become '?', and zero-width format runes are removed so nothing written to
// the status row can move the cursor or inject escape sequences.
func SanitizeLine(text string) string {
	for _, r := range text {
		if needsSanitizing(r) {
			return sanitizeLine(text)
		}
	}
	return text
}

func needsSanitizing(r rune) bool {
	return r < 0x20 || r == 0x7f || isFormattingRune(r)
}

func sanitizeLine(text string) string {
	var b strings.Builder
	for _, r := range text {
		switch {
		case r == '\t', r == '\n', r == '\r':
			b.WriteByte(' ')
		case r < 0x20 || r == 0x7f:
			b.WriteByte('?')
		case isFormattingRune(r):
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isFormattingRune matches the bidi controls and zero-width characters that
// can visually reorder or hide surrounding text.
func isFormattingRune(r rune) bool {
	switch {
	case r == 0x061C, r == 0x00AD, r == 0x180E, r == 0xFEFF:
		return true
	case r >= 0x200B && r <= 0x200F:
		return true
	case r >= 0x202A && r <= 0x202E:
		return true
	case r >= 0x2028 && r <= 0x2029:
		return true
	case r >= 0x2060 && r <= 0x206F:
		return true
	}
	return false
}
