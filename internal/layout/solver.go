package layout

const (
	// DelimWidth is the gap printed after every entry.
	DelimWidth = 2
	// Delim is the gap itself.
	Delim = "  "
	// MinColumnWidth keeps short listings aligned; 8.3 was FAT's longest
	// filename.
	MinColumnWidth = 13
	// TruncateMarker replaces the tail of names cut to fit a row.
	TruncateMarker = "~"
)

// Mode selects between the interactive browser and print-once output.
type Mode uint8

const (
	ModeInteractive Mode = iota
	ModeOneshot
)

// Layout is the grid chosen for one snapshot at one terminal width. Entry i
// sits on row i/Columns at column i%Columns.
type Layout struct {
	Count     int
	Columns   int
	Widths    []int // cells per column, delimiter excluded
	Lines     int
	Formatted bool
	Cap       int // widest a single entry may be drawn; 0 means unlimited
}

// Solver picks the widest grid that fits the terminal.
type Solver struct {
	TermWidth int
	Mode      Mode
}

// Solve lays out entries with the given decorated widths. It never fails:
// when nothing fits, a single column is returned and overflow is accepted.
func (s Solver) Solve(widths []int) Layout {
	n := len(widths)
	if n == 0 {
		return Layout{Columns: 1}
	}

	if s.lineLength(widths) <= s.TermWidth {
		return Layout{
			Count:   n,
			Columns: n,
			Lines:   1,
		}
	}

	capped := s.capWidths(widths)
	columns := s.search(capped)
	return Layout{
		Count:     n,
		Columns:   columns,
		Widths:    s.columnWidths(capped, columns),
		Lines:     lines(n, columns),
		Formatted: true,
		Cap:       s.cap(),
	}
}

// Fits reports whether entries laid out in the given number of columns stay
// narrower than the terminal.
func (s Solver) Fits(widths []int, columns int) bool {
	if columns < 1 || columns > len(widths) {
		return false
	}
	total := 0
	for k, w := range s.columnWidths(s.capWidths(widths), columns) {
		total += w
		if k < columns-1 {
			total += DelimWidth
		}
		if total >= s.TermWidth {
			return false
		}
	}
	return true
}

// search finds the rightmost feasible column count in [1, n-1]. A count of n
// would mean every entry on one row, which lineLength already ruled out.
func (s Solver) search(widths []int) int {
	best := 1
	lo, hi := 1, len(widths)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if s.Fits(widths, mid) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}

// columnWidths sizes each column to its widest entry. Interactive grids keep
// a minimum width unless every entry is shorter; oneshot output uses the
// single longest entry everywhere.
func (s Solver) columnWidths(widths []int, columns int) []int {
	longest := 0
	for _, w := range widths {
		longest = max(longest, w)
	}

	out := make([]int, columns)
	if s.Mode == ModeOneshot {
		for k := range out {
			out[k] = longest
		}
		return out
	}

	floor := min(MinColumnWidth, longest)
	for i, w := range widths {
		k := i % columns
		out[k] = max(out[k], w)
	}
	for k := range out {
		out[k] = max(out[k], floor)
	}
	return out
}

// lineLength is the width of every entry on one row, delimiters between.
func (s Solver) lineLength(widths []int) int {
	total := DelimWidth * (len(widths) - 1)
	for _, w := range widths {
		total += w
	}
	return total
}

func (s Solver) cap() int {
	if s.Mode == ModeOneshot {
		return 0
	}
	return max(1, s.TermWidth-1)
}

func (s Solver) capWidths(widths []int) []int {
	limit := s.cap()
	if limit == 0 {
		return widths
	}
	for _, w := range widths {
		if w > limit {
			capped := make([]int, len(widths))
			for i, w := range widths {
				capped[i] = min(w, limit)
			}
			return capped
		}
	}
	return widths
}

func lines(n, columns int) int {
	if columns < 1 {
		return 0
	}
	return (n + columns - 1) / columns
}

// CellsOver is the horizontal offset of a column from the left edge.
func (l Layout) CellsOver(column int) int {
	over := 0
	for k := 0; k < column && k < len(l.Widths); k++ {
		over += l.Widths[k] + DelimWidth
	}
	return over
}

// Row returns the grid row of entry i.
func (l Layout) Row(i int) int {
	if !l.Formatted {
		return 0
	}
	return i / l.Columns
}

// Column returns the grid column of entry i.
func (l Layout) Column(i int) int {
	if !l.Formatted {
		return i
	}
	return i % l.Columns
}
