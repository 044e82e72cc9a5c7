package term

import (
	"io"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyUnknown is returned for input that maps to no key; the caller ignores
// it and reads again.
const KeyUnknown = tcell.Key(-1)

// maxEscapeArgs bounds how many parameter bytes an escape sequence may carry
// before it is abandoned.
const maxEscapeArgs = 16

// Key is one decoded key press.
type Key struct {
	Code tcell.Key
	Rune rune // set when Code is tcell.KeyRune
}

// RuneKey builds the key for a printable character.
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// IsRune reports whether k is the character r in either case.
func (k Key) IsRune(r rune) bool {
	if k.Code != tcell.KeyRune {
		return false
	}
	if k.Rune == r {
		return true
	}
	if r >= 'a' && r <= 'z' {
		return k.Rune == r-'a'+'A'
	}
	return false
}

// String names the key for logs.
func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}
	return "Unknown"
}

// ByteSource is what the decoder reads from; *bufio.Reader satisfies it.
// Buffered tells a lone Escape apart from the start of a sequence.
type ByteSource interface {
	io.ByteReader
	Buffered() int
}

type decodeState uint8

const (
	stateIdle decodeState = iota
	stateEscape
	stateEscapeArg
	stateDispatch
)

// DecodeKey reads exactly one key from src.
func DecodeKey(src ByteSource) (Key, error) {
	state := stateIdle
	var args []byte
	var intro, final byte

	for {
		switch state {
		case stateIdle:
			b, err := src.ReadByte()
			if err != nil {
				return Key{}, err
			}
			if b == 0x1b {
				state = stateEscape
				continue
			}
			return decodePlain(src, b), nil

		case stateEscape:
			if src.Buffered() == 0 {
				return Key{Code: tcell.KeyEscape}, nil
			}
			b, err := src.ReadByte()
			if err != nil {
				return Key{Code: tcell.KeyEscape}, nil
			}
			if b != '[' && b != 'O' {
				// Alt+key and friends are not bound to anything.
				return Key{Code: KeyUnknown}, nil
			}
			intro = b
			state = stateEscapeArg

		case stateEscapeArg:
			if src.Buffered() == 0 {
				// The sequence stopped arriving; drop what was read so a
				// truncated sequence cannot stall input.
				return Key{Code: KeyUnknown}, nil
			}
			b, err := src.ReadByte()
			if err != nil {
				return Key{Code: KeyUnknown}, nil
			}
			if b >= 0x40 && b <= 0x7e {
				final = b
				state = stateDispatch
				continue
			}
			if len(args) >= maxEscapeArgs {
				return Key{Code: KeyUnknown}, nil
			}
			args = append(args, b)

		case stateDispatch:
			return Key{Code: dispatchSequence(intro, string(args), final)}, nil
		}
	}
}

func decodePlain(src ByteSource, b byte) Key {
	switch {
	case b == '\r' || b == '\n':
		return Key{Code: tcell.KeyEnter}
	case b == 0x7f:
		return Key{Code: tcell.KeyBackspace2}
	case b < 0x20:
		// Control keys share their byte value in tcell's numbering.
		return Key{Code: tcell.Key(b)}
	case b < utf8.RuneSelf:
		return RuneKey(rune(b))
	}

	buf := []byte{b}
	for !utf8.FullRune(buf) && len(buf) < utf8.UTFMax {
		next, err := src.ReadByte()
		if err != nil {
			break
		}
		buf = append(buf, next)
	}
	r, _ := utf8.DecodeRune(buf)
	if r == utf8.RuneError {
		return Key{Code: KeyUnknown}
	}
	return RuneKey(r)
}

var tildeKeys = map[string]tcell.Key{
	"1":  tcell.KeyHome,
	"2":  tcell.KeyInsert,
	"3":  tcell.KeyDelete,
	"4":  tcell.KeyEnd,
	"5":  tcell.KeyPgUp,
	"6":  tcell.KeyPgDn,
	"7":  tcell.KeyHome,
	"8":  tcell.KeyEnd,
	"15": tcell.KeyF5,
	"17": tcell.KeyF6,
	"18": tcell.KeyF7,
	"19": tcell.KeyF8,
	"20": tcell.KeyF9,
	"21": tcell.KeyF10,
	"23": tcell.KeyF11,
	"24": tcell.KeyF12,
}

func dispatchSequence(intro byte, args string, final byte) tcell.Key {
	switch final {
	case 'A':
		return tcell.KeyUp
	case 'B':
		return tcell.KeyDown
	case 'C':
		return tcell.KeyRight
	case 'D':
		return tcell.KeyLeft
	case 'H':
		return tcell.KeyHome
	case 'F':
		return tcell.KeyEnd
	}
	if intro == 'O' {
		switch final {
		case 'P':
			return tcell.KeyF1
		case 'Q':
			return tcell.KeyF2
		case 'R':
			return tcell.KeyF3
		case 'S':
			return tcell.KeyF4
		}
		return KeyUnknown
	}
	if final == '~' {
		if k, ok := tildeKeys[args]; ok {
			return k
		}
	}
	return KeyUnknown
}
