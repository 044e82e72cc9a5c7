package termtest

import (
	"bytes"
	"io"

	"github.com/kk-code-lab/peek/internal/term"
)

// Fake is a scripted term.Terminal. Keys are handed out in order and io.EOF
// is returned once they run out.
type Fake struct {
	*Emulator

	Keys []term.Key
	// Raw holds every byte written since the last Reset of the buffer.
	Raw bytes.Buffer

	ReportRow, ReportCol int
	ReportErr            error
	SizeErr              error

	Flushes  int
	Suspends int
	Resumes  int
	Closed   bool

	// SuspendedAt is the cursor row at the most recent Suspend.
	SuspendedAt int
	// OnSuspend runs while the terminal is handed off.
	OnSuspend func()
	// BeforeKey runs before each key is handed out, with the index of the
	// key about to be read.
	BeforeKey func(i int)

	read int
}

var _ term.Terminal = (*Fake)(nil)

// NewFake returns a fake terminal of the given size with the cursor at the
// top left.
func NewFake(rows, cols int) *Fake {
	return &Fake{Emulator: NewEmulator(rows, cols), ReportRow: 1, ReportCol: 1}
}

// Type queues keys; runes become rune keys.
func (f *Fake) Type(keys ...any) *Fake {
	for _, k := range keys {
		switch v := k.(type) {
		case term.Key:
			f.Keys = append(f.Keys, v)
		case rune:
			f.Keys = append(f.Keys, term.RuneKey(v))
		case string:
			for _, r := range v {
				f.Keys = append(f.Keys, term.RuneKey(r))
			}
		}
	}
	return f
}

func (f *Fake) Write(p []byte) (int, error) {
	f.Raw.Write(p)
	return f.Emulator.Write(p)
}

func (f *Fake) Flush() error {
	f.Flushes++
	return nil
}

func (f *Fake) ReadKey() (term.Key, error) {
	if f.read >= len(f.Keys) {
		return term.Key{}, io.EOF
	}
	if f.BeforeKey != nil {
		f.BeforeKey(f.read)
	}
	k := f.Keys[f.read]
	f.read++
	return k, nil
}

func (f *Fake) QueryCursor() (int, int, error) {
	if f.ReportErr != nil {
		return 0, 0, f.ReportErr
	}
	return f.ReportRow, f.ReportCol, nil
}

func (f *Fake) Size() (int, int, error) {
	if f.SizeErr != nil {
		return 0, 0, f.SizeErr
	}
	return f.rows, f.cols, nil
}

func (f *Fake) Suspend() error {
	f.Suspends++
	f.SuspendedAt = f.row
	if f.OnSuspend != nil {
		f.OnSuspend()
	}
	return nil
}

func (f *Fake) Resume() error {
	f.Resumes++
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}
