// Package term owns the raw terminal: key decoding, escape sequences and the
// cooked/raw handoff around external programs.
package term

import "io"

// Terminal is the capability the browser renders through. Rendering code
// only ever writes relative cursor movement to it.
type Terminal interface {
	io.Writer
	// Flush pushes buffered output to the terminal.
	Flush() error
	// ReadKey blocks until one key has been decoded.
	ReadKey() (Key, error)
	// QueryCursor asks the terminal where the cursor is (1-based). It gives
	// up with ErrNoCursorReport instead of waiting forever.
	QueryCursor() (row, col int, err error)
	// Size returns the visible rows and columns.
	Size() (rows, cols int, err error)
	// Suspend hands the terminal back in cooked mode with the cursor shown.
	Suspend() error
	// Resume re-enters raw mode and hides the cursor.
	Resume() error
	// Close restores the terminal for good.
	Close() error
}
