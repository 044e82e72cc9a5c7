// Package nav moves the selection cursor across the entry grid.
package nav

import "github.com/kk-code-lab/peek/internal/layout"

// None marks "nothing selected" (empty or unreadable directory) and "no
// previous selection to erase".
const None = -1

// Direction is a cursor move command.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Selection tracks the selected entry and the one selected before the last
// move, which is the only other cell an incremental repaint has to touch.
type Selection struct {
	Selected int
	Previous int
}

// NewSelection starts at the first entry, or None for an empty snapshot.
func NewSelection(count int) Selection {
	s := Selection{}
	s.Reset(count)
	return s
}

// Reset is applied after every change of the entry set.
func (s *Selection) Reset(count int) {
	s.Previous = None
	if count <= 0 {
		s.Selected = None
		return
	}
	s.Selected = 0
}

// Clamp keeps both indices inside [0, count).
func (s *Selection) Clamp(count int) {
	switch {
	case count <= 0:
		s.Selected = None
	case s.Selected < 0:
		s.Selected = 0
	case s.Selected > count-1:
		s.Selected = count - 1
	}
	if s.Previous > count-1 {
		s.Previous = None
	}
}

// Valid reports whether an entry is selected.
func (s Selection) Valid() bool {
	return s.Selected >= 0
}

// Move applies one cursor command to the grid l. It reports whether the new
// selection fell outside w, in which case the caller must repaint fully so a
// new window is chosen.
func (s *Selection) Move(l layout.Layout, w layout.Window, d Direction) bool {
	if l.Count <= 0 || !s.Valid() {
		return false
	}
	s.Previous = s.Selected

	last := l.Count - 1
	c := l.Columns
	sel := s.Selected

	switch d {
	case Up:
		if !l.Formatted {
			break
		}
		if sel-c < 0 {
			// Jump to the bottom of the column, skipping the ragged row
			// when this column has no entry there.
			offset := c * (l.Lines - 1)
			if sel+offset > last {
				offset -= c
			}
			sel += offset
		} else {
			sel -= c
		}
	case Down:
		if !l.Formatted {
			break
		}
		if sel+c > last {
			offset := c * (l.Lines - 1)
			if sel-offset < 0 {
				offset -= c
			}
			sel -= offset
		} else {
			sel += c
		}
	case Left:
		switch {
		case !l.Formatted:
			if sel == 0 {
				sel = last
			} else {
				sel--
			}
		case sel%c == 0:
			sel = min(sel+c-1, last)
		default:
			sel--
		}
	case Right:
		switch {
		case !l.Formatted:
			if sel == last {
				sel = 0
			} else {
				sel++
			}
		case sel == last:
			sel -= sel % c
		case sel%c == c-1:
			sel -= c - 1
		default:
			sel++
		}
	}

	s.Selected = sel
	return !w.Contains(sel)
}
