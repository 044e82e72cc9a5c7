package app

import (
	"github.com/gobwas/glob"
	fsutil "github.com/kk-code-lab/peek/internal/fs"
	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/nav"
	"github.com/kk-code-lab/peek/internal/ui/render"
)

// BrowserState is the snapshot of one directory plus everything derived from
// it for the current terminal size.
type BrowserState struct {
	Dir        string
	Entries    []fsutil.Entry
	ScanErr    error
	Metrics    []layout.Metric
	Layout     layout.Layout
	Window     layout.Window
	Selection  nav.Selection
	Status     render.Status
	ShowHidden bool

	widths []int
	cols   int
	stale  bool
}

// NewBrowserState returns an empty state for dir; call Scan to fill it.
func NewBrowserState(dir string, showHidden bool) *BrowserState {
	return &BrowserState{
		Dir:        dir,
		ShowHidden: showHidden,
		Selection:  nav.NewSelection(0),
		stale:      true,
	}
}

// Scan replaces the entry set with a fresh read of Dir and puts the
// selection back on the first entry.
func (s *BrowserState) Scan(ignore []glob.Glob, measure layout.MeasureOptions) (int, error) {
	entries, err := fsutil.Scan(s.Dir, fsutil.ScanOptions{
		ShowHidden: s.ShowHidden,
		Ignore:     ignore,
	})
	s.ScanErr = err
	if err != nil {
		s.Entries, s.Metrics, s.widths = nil, nil, nil
	} else {
		s.Entries = entries
		s.Metrics = layout.Measure(entries, measure)
		s.widths = layout.DecoratedWidths(s.Metrics)
	}
	s.Selection.Reset(len(s.Metrics))
	s.stale = true
	return len(s.Entries), err
}

// Arrange solves the grid for the terminal width when it changed and picks
// the window holding the selection.
func (s *BrowserState) Arrange(rows, cols int, showDir bool) {
	if s.stale || cols != s.cols {
		s.Layout = layout.Solver{TermWidth: cols, Mode: layout.ModeInteractive}.Solve(s.widths)
		s.cols = cols
		s.stale = false
	}
	s.Selection.Clamp(len(s.Metrics))
	s.Window = layout.NewWindow(s.Layout, s.Selection.Selected, render.GridRows(rows, showDir))
}

// Selected returns the selected entry, if any.
func (s *BrowserState) Selected() (fsutil.Entry, bool) {
	if s.ScanErr != nil || !s.Selection.Valid() || s.Selection.Selected >= len(s.Entries) {
		return fsutil.Entry{}, false
	}
	return s.Entries[s.Selection.Selected], true
}

// Move applies a cursor command and reports whether the window must move.
func (s *BrowserState) Move(d nav.Direction) bool {
	return s.Selection.Move(s.Layout, s.Window, d)
}

// View is the render input for the current terminal size.
func (s *BrowserState) View(rows, cols int, showDir bool) render.View {
	return render.View{
		Rows:      rows,
		Cols:      cols,
		Dir:       s.Dir,
		ShowDir:   showDir,
		Metrics:   s.Metrics,
		Layout:    s.Layout,
		Window:    s.Window,
		Selection: s.Selection,
		ScanErr:   s.ScanErr,
		Status:    s.Status,
	}
}

// ClearStatus drops the one-shot error and message once they were shown.
func (s *BrowserState) ClearStatus() {
	s.Status.Error = ""
	s.Status.Message = ""
}
