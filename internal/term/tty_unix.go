//go:build unix

package term

import (
	"bufio"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	xterm "golang.org/x/term"
)

// DefaultReportTimeout is how long QueryCursor waits for each byte of the
// reply.
const DefaultReportTimeout = 200 * time.Millisecond

// TTY is the real terminal, opened on /dev/tty so stdin/stdout may be
// redirected.
type TTY struct {
	in      *os.File
	out     *os.File
	owned   bool
	reader  *bufio.Reader
	writer  *bufio.Writer
	saved   *xterm.State
	timeout time.Duration
}

var _ Terminal = (*TTY)(nil)

// Open puts the controlling terminal into raw mode.
func Open() (*TTY, error) {
	t := &TTY{timeout: DefaultReportTimeout}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err == nil {
		t.in, t.out, t.owned = tty, tty, true
	} else {
		t.in, t.out = os.Stdin, os.Stdout
	}
	if !xterm.IsTerminal(int(t.in.Fd())) {
		t.closeFile()
		return nil, errors.New("not a terminal")
	}

	t.reader = bufio.NewReader(t.in)
	t.writer = bufio.NewWriter(t.out)

	saved, err := xterm.GetState(int(t.in.Fd()))
	if err != nil {
		t.closeFile()
		return nil, errors.Wrap(err, "cannot read terminal state")
	}
	t.saved = saved

	if err := t.Resume(); err != nil {
		t.closeFile()
		return nil, err
	}
	return t, nil
}

func (t *TTY) Write(p []byte) (int, error) {
	return t.writer.Write(p)
}

func (t *TTY) Flush() error {
	return t.writer.Flush()
}

func (t *TTY) ReadKey() (Key, error) {
	if err := t.Flush(); err != nil {
		return Key{}, err
	}
	return DecodeKey(t.reader)
}

// QueryCursor drops pending input, requests a cursor position report and
// scans for it. Every byte is awaited for at most the report timeout, so a
// terminal that never replies cannot hang the browser.
func (t *TTY) QueryCursor() (int, int, error) {
	t.discardPending()
	if _, err := t.writer.WriteString(CursorReport); err != nil {
		return 0, 0, err
	}
	if err := t.Flush(); err != nil {
		return 0, 0, err
	}
	return ScanCursorReport(t.readByteWithin)
}

func (t *TTY) readByteWithin() (byte, error) {
	if t.reader.Buffered() == 0 {
		ready, err := t.waitReadable(t.timeout)
		if err != nil {
			return 0, err
		}
		if !ready {
			return 0, ErrNoCursorReport
		}
	}
	return t.reader.ReadByte()
}

func (t *TTY) waitReadable(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	deadline := time.Now().Add(timeout)
	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false, nil
		}
		n, err := unix.Poll(fds, int(remaining.Milliseconds())+1)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return false, err
		}
		return n > 0, nil
	}
}

func (t *TTY) discardPending() {
	if n := t.reader.Buffered(); n > 0 {
		_, _ = t.reader.Discard(n)
	}
	for {
		ready, err := t.waitReadable(0)
		if err != nil || !ready {
			return
		}
		if _, err := t.reader.ReadByte(); err != nil {
			return
		}
		_, _ = t.reader.Discard(t.reader.Buffered())
	}
}

func (t *TTY) Size() (int, int, error) {
	cols, rows, err := xterm.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, errors.Wrap(err, "cannot read terminal size")
	}
	return rows, cols, nil
}

func (t *TTY) Suspend() error {
	_, _ = t.writer.WriteString(ShowCursor)
	if err := t.Flush(); err != nil {
		return err
	}
	if t.saved == nil {
		return nil
	}
	return xterm.Restore(int(t.in.Fd()), t.saved)
}

func (t *TTY) Resume() error {
	if _, err := xterm.MakeRaw(int(t.in.Fd())); err != nil {
		return errors.Wrap(err, "cannot enter raw mode")
	}
	_, _ = t.writer.WriteString(HideCursor)
	return t.Flush()
}

func (t *TTY) Close() error {
	err := t.Suspend()
	t.closeFile()
	return err
}

func (t *TTY) closeFile() {
	if t.owned && t.in != nil {
		_ = t.in.Close()
		t.owned = false
	}
}
