package layout

// Window is the inclusive index range actually drawn. When the whole grid
// fits on screen it covers every entry.
type Window struct {
	Offset int
	Limit  int
	Paged  bool
}

// NewWindow picks the page of the grid that holds selected. rows is the
// number of terminal rows available to the grid.
func NewWindow(l Layout, selected, rows int) Window {
	if l.Count == 0 {
		return Window{Offset: 0, Limit: -1}
	}
	if !l.Formatted || rows < 1 || l.Lines <= rows {
		return Window{Offset: 0, Limit: l.Count - 1}
	}

	page := rows * l.Columns
	selected = min(max(selected, 0), l.Count-1)
	offset := selected / page * page
	return Window{
		Offset: offset,
		Limit:  min(offset+page, l.Count) - 1,
		Paged:  true,
	}
}

// Contains reports whether entry i is drawn.
func (w Window) Contains(i int) bool {
	return i >= w.Offset && i <= w.Limit
}

// Rows is how many grid rows the window occupies.
func (w Window) Rows(l Layout) int {
	if w.Limit < w.Offset {
		return 0
	}
	if !l.Formatted {
		return 1
	}
	return (w.Limit-w.Offset)/l.Columns + 1
}
