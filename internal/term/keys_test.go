package term

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func decodeAll(t *testing.T, input string) []Key {
	t.Helper()
	src := bufio.NewReader(strings.NewReader(input))
	var keys []Key
	for {
		k, err := DecodeKey(src)
		if err == io.EOF {
			return keys
		}
		if err != nil {
			t.Fatalf("DecodeKey(%q): %v", input, err)
		}
		keys = append(keys, k)
	}
}

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Key
	}{
		{"letter", "j", RuneKey('j')},
		{"carriage return", "\r", Key{Code: tcell.KeyEnter}},
		{"line feed", "\n", Key{Code: tcell.KeyEnter}},
		{"delete byte", "\x7f", Key{Code: tcell.KeyBackspace2}},
		{"ctrl-h", "\x08", Key{Code: tcell.KeyBackspace}},
		{"ctrl-c", "\x03", Key{Code: tcell.KeyCtrlC}},
		{"csi up", "\x1b[A", Key{Code: tcell.KeyUp}},
		{"csi down", "\x1b[B", Key{Code: tcell.KeyDown}},
		{"csi right", "\x1b[C", Key{Code: tcell.KeyRight}},
		{"csi left", "\x1b[D", Key{Code: tcell.KeyLeft}},
		{"ss3 up", "\x1bOA", Key{Code: tcell.KeyUp}},
		{"ss3 f1", "\x1bOP", Key{Code: tcell.KeyF1}},
		{"f10", "\x1b[21~", Key{Code: tcell.KeyF10}},
		{"delete key", "\x1b[3~", Key{Code: tcell.KeyDelete}},
		{"modified arrow", "\x1b[1;5A", Key{Code: tcell.KeyUp}},
		{"unknown tilde", "\x1b[99~", Key{Code: KeyUnknown}},
		{"lone escape", "\x1b", Key{Code: tcell.KeyEscape}},
		{"alt key", "\x1bx", Key{Code: KeyUnknown}},
		{"truncated sequence", "\x1b[", Key{Code: KeyUnknown}},
		{"two byte rune", "é", RuneKey('é')},
		{"three byte rune", "日", RuneKey('日')},
		{"invalid utf8", "\xff", Key{Code: KeyUnknown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := decodeAll(t, tt.input)
			if len(keys) != 1 {
				t.Fatalf("expected one key, got %v", keys)
			}
			if keys[0] != tt.want {
				t.Fatalf("got %+v want %+v", keys[0], tt.want)
			}
		})
	}
}

func TestDecodeKeySequenceStream(t *testing.T) {
	keys := decodeAll(t, "j\x1b[Bk\x1b[21~q")
	want := []Key{
		RuneKey('j'),
		{Code: tcell.KeyDown},
		RuneKey('k'),
		{Code: tcell.KeyF10},
		RuneKey('q'),
	}
	if len(keys) != len(want) {
		t.Fatalf("got %v want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("key %d: got %+v want %+v", i, keys[i], want[i])
		}
	}
}

func TestDecodeKeyAbandonsOverlongSequence(t *testing.T) {
	keys := decodeAll(t, "\x1b["+strings.Repeat("1", maxEscapeArgs+1)+"~j")
	last := keys[len(keys)-1]
	if last != RuneKey('j') {
		t.Fatalf("decoder must recover after an overlong sequence, got %v", keys)
	}
	if keys[0].Code != KeyUnknown {
		t.Fatalf("overlong sequence should decode as unknown, got %v", keys[0])
	}
}

func TestKeyIsRune(t *testing.T) {
	if !RuneKey('Q').IsRune('q') {
		t.Fatalf("uppercase should match lowercase binding")
	}
	if RuneKey('q').IsRune('Q') {
		t.Fatalf("lowercase must not match an uppercase binding")
	}
	if (Key{Code: tcell.KeyEnter}).IsRune('\r') {
		t.Fatalf("non-rune keys never match")
	}
}

func TestKeyString(t *testing.T) {
	if got := RuneKey('x').String(); got != "x" {
		t.Fatalf("got %q", got)
	}
	if got := (Key{Code: tcell.KeyF10}).String(); got != "F10" {
		t.Fatalf("got %q", got)
	}
	if got := (Key{Code: KeyUnknown}).String(); got != "Unknown" {
		t.Fatalf("got %q", got)
	}
}
