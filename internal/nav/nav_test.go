package nav

import (
	"math/rand"
	"testing"

	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/stretchr/testify/require"
)

func grid(count, columns int) layout.Layout {
	return layout.Layout{
		Count:     count,
		Columns:   columns,
		Lines:     (count + columns - 1) / columns,
		Formatted: true,
	}
}

func line(count int) layout.Layout {
	return layout.Layout{Count: count, Columns: count, Lines: 1}
}

func full(l layout.Layout) layout.Window {
	return layout.Window{Offset: 0, Limit: l.Count - 1}
}

func moveFrom(t *testing.T, l layout.Layout, start int, d Direction) int {
	t.Helper()
	s := Selection{Selected: start, Previous: None}
	s.Move(l, full(l), d)
	if s.Previous != start {
		t.Fatalf("Previous=%d want %d", s.Previous, start)
	}
	return s.Selected
}

func TestMoveUpWrapsPastRaggedRow(t *testing.T) {
	// 0 1
	// 2 3
	// 4
	l := grid(5, 2)

	tests := []struct {
		start int
		dir   Direction
		want  int
	}{
		{0, Up, 4},
		{1, Up, 3},
		{4, Up, 2},
		{3, Up, 1},
		{4, Down, 0},
		{3, Down, 1},
		{0, Down, 2},
		{0, Left, 1},
		{1, Left, 0},
		{4, Left, 4},
		{4, Right, 4},
		{1, Right, 0},
		{2, Right, 3},
	}
	for _, tt := range tests {
		if got := moveFrom(t, l, tt.start, tt.dir); got != tt.want {
			t.Fatalf("from %d dir %d: got %d want %d", tt.start, tt.dir, got, tt.want)
		}
	}
}

func TestMoveRightOnRaggedRowStaysInRow(t *testing.T) {
	// 0 1 2
	// 3 4 5
	// 6 7
	l := grid(8, 3)

	if got := moveFrom(t, l, 7, Right); got != 6 {
		t.Fatalf("expected wrap to row start 6, got %d", got)
	}
	if got := moveFrom(t, l, 6, Left); got != 7 {
		t.Fatalf("expected wrap to last existing entry 7, got %d", got)
	}
	if got := moveFrom(t, l, 2, Up); got != 5 {
		t.Fatalf("expected column 2 bottom 5, got %d", got)
	}
	if got := moveFrom(t, l, 5, Down); got != 2 {
		t.Fatalf("expected column 2 top 2, got %d", got)
	}
}

func TestUnformattedMoves(t *testing.T) {
	l := line(3)

	if got := moveFrom(t, l, 0, Left); got != 2 {
		t.Fatalf("left from first should wrap to last, got %d", got)
	}
	if got := moveFrom(t, l, 2, Right); got != 0 {
		t.Fatalf("right from last should wrap to first, got %d", got)
	}
	if got := moveFrom(t, l, 1, Up); got != 1 {
		t.Fatalf("up must be a no-op on one line, got %d", got)
	}
	if got := moveFrom(t, l, 1, Down); got != 1 {
		t.Fatalf("down must be a no-op on one line, got %d", got)
	}
}

func TestMovesOnEmptySelectionAreNoOps(t *testing.T) {
	s := NewSelection(0)
	if s.Selected != None || s.Previous != None {
		t.Fatalf("unexpected empty selection %+v", s)
	}
	l := layout.Layout{Columns: 1}
	for _, d := range []Direction{Up, Down, Left, Right} {
		if s.Move(l, layout.Window{Offset: 0, Limit: -1}, d) {
			t.Fatalf("empty move must not request a repaint")
		}
		if s.Selected != None {
			t.Fatalf("selection changed on empty grid: %d", s.Selected)
		}
	}
}

func TestResetAndClamp(t *testing.T) {
	s := Selection{Selected: 7, Previous: 6}
	s.Reset(10)
	if s.Selected != 0 || s.Previous != None {
		t.Fatalf("Reset gave %+v", s)
	}

	s = Selection{Selected: 9, Previous: 8}
	s.Clamp(5)
	if s.Selected != 4 || s.Previous != None {
		t.Fatalf("Clamp gave %+v", s)
	}

	s = Selection{Selected: None, Previous: None}
	s.Clamp(3)
	if s.Selected != 0 {
		t.Fatalf("Clamp should select the first entry, got %+v", s)
	}

	s.Clamp(0)
	if s.Valid() {
		t.Fatalf("nothing can be selected in an empty snapshot")
	}
}

func TestMoveReportsLeavingWindow(t *testing.T) {
	l := grid(20, 2)
	w := layout.NewWindow(l, 0, 3) // entries 0..5

	s := Selection{Selected: 4, Previous: None}
	require.False(t, s.Move(l, w, Right))
	require.Equal(t, 5, s.Selected)

	s = Selection{Selected: 4, Previous: None}
	require.True(t, s.Move(l, w, Down))
	require.Equal(t, 6, s.Selected)

	s = Selection{Selected: 0, Previous: None}
	require.True(t, s.Move(l, w, Up))
	require.Equal(t, 18, s.Selected)
}

func rowLen(l layout.Layout, i int) int {
	row := i / l.Columns
	return min(l.Columns, l.Count-row*l.Columns)
}

func colLen(l layout.Layout, i int) int {
	col := i % l.Columns
	if col < l.Count-l.Columns*(l.Lines-1) {
		return l.Lines
	}
	return l.Lines - 1
}

func TestWraparoundClosure(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for trial := 0; trial < 300; trial++ {
		n := 2 + rng.Intn(70)
		c := 1 + rng.Intn(n-1)
		l := grid(n, c)
		w := full(l)

		for start := 0; start < n; start++ {
			repeatMove := func(d Direction, times int) int {
				s := Selection{Selected: start, Previous: None}
				for i := 0; i < times; i++ {
					s.Move(l, w, d)
					require.True(t, s.Selected >= 0 && s.Selected < n, "left the grid: %d", s.Selected)
				}
				return s.Selected
			}

			require.Equal(t, start, repeatMove(Right, rowLen(l, start)), "right n=%d c=%d start=%d", n, c, start)
			require.Equal(t, start, repeatMove(Left, rowLen(l, start)), "left n=%d c=%d start=%d", n, c, start)
			require.Equal(t, start, repeatMove(Up, colLen(l, start)), "up n=%d c=%d start=%d", n, c, start)
			require.Equal(t, start, repeatMove(Down, colLen(l, start)), "down n=%d c=%d start=%d", n, c, start)

			for _, pair := range [][2]Direction{{Up, Down}, {Down, Up}, {Left, Right}, {Right, Left}} {
				s := Selection{Selected: start, Previous: None}
				s.Move(l, w, pair[0])
				s.Move(l, w, pair[1])
				require.Equal(t, start, s.Selected, "inverse %v n=%d c=%d start=%d", pair, n, c, start)
			}
		}
	}
}

func TestWraparoundClosureUnformatted(t *testing.T) {
	for n := 1; n < 12; n++ {
		l := line(n)
		for start := 0; start < n; start++ {
			for _, d := range []Direction{Left, Right} {
				s := Selection{Selected: start, Previous: None}
				for i := 0; i < n; i++ {
					s.Move(l, full(l), d)
				}
				if s.Selected != start {
					t.Fatalf("n=%d start=%d dir=%d ended at %d", n, start, d, s.Selected)
				}
			}
		}
	}
}

func TestSelectionStaysInsideWindow(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	l := grid(137, 4)
	s := NewSelection(l.Count)
	rows := 6
	w := layout.NewWindow(l, s.Selected, rows)

	for step := 0; step < 2000; step++ {
		if s.Move(l, w, Direction(rng.Intn(4))) {
			w = layout.NewWindow(l, s.Selected, rows)
		}
		require.True(t, w.Offset <= s.Selected && s.Selected <= w.Limit,
			"selected %d outside window %+v", s.Selected, w)
	}
}
