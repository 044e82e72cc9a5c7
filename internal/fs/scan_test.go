package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sys/unix"
)

func writeFile(t *testing.T, path string, mode os.FileMode) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestScanSortsAndHidesDotfiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "zeta.txt"), 0o644)
	writeFile(t, filepath.Join(dir, "alpha.txt"), 0o644)
	writeFile(t, filepath.Join(dir, ".hidden"), 0o644)
	if err := os.Mkdir(filepath.Join(dir, "middle"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	entries, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	got := names(entries)
	want := []string{"alpha.txt", "middle", "zeta.txt"}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
	if entries[1].Kind != KindDir {
		t.Fatalf("expected middle to be a directory, got kind %d", entries[1].Kind)
	}
	if entries[0].FullPath != filepath.Join(dir, "alpha.txt") {
		t.Fatalf("unexpected full path %q", entries[0].FullPath)
	}

	entries, err = Scan(dir, ScanOptions{ShowHidden: true})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(entries) != 4 || entries[0].Name != ".hidden" {
		t.Fatalf("expected dotfile first when shown, got %v", names(entries))
	}
}

func TestScanIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.go"), 0o644)
	writeFile(t, filepath.Join(dir, "main.o"), 0o644)
	writeFile(t, filepath.Join(dir, "lib.o"), 0o644)

	globs, err := CompileIgnore([]string{"*.o", ""})
	if err != nil {
		t.Fatalf("CompileIgnore: %v", err)
	}
	entries, err := Scan(dir, ScanOptions{Ignore: globs})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := names(entries); len(got) != 1 || got[0] != "main.go" {
		t.Fatalf("expected only main.go, got %v", got)
	}
}

func TestCompileIgnoreRejectsBadPattern(t *testing.T) {
	if _, err := CompileIgnore([]string{"[unclosed"}); err == nil {
		t.Fatalf("expected error for malformed pattern")
	}
}

func TestScanMissingDirectory(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), ScanOptions{}); err == nil {
		t.Fatalf("expected error scanning missing directory")
	}
}

func TestScanKinds(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "target"), 0o644)
	if err := os.Symlink("target", filepath.Join(dir, "link")); err != nil {
		t.Fatalf("symlink: %v", err)
	}
	if err := unix.Mkfifo(filepath.Join(dir, "pipe"), 0o644); err != nil {
		t.Skipf("mkfifo unsupported: %v", err)
	}

	entries, err := Scan(dir, ScanOptions{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	kinds := map[string]Kind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	if kinds["link"] != KindSymlink {
		t.Fatalf("link kind=%d", kinds["link"])
	}
	if kinds["pipe"] != KindFIFO {
		t.Fatalf("pipe kind=%d", kinds["pipe"])
	}
	if kinds["target"] != KindRegular {
		t.Fatalf("target kind=%d", kinds["target"])
	}
}

func TestNewEntryNormalizesLabel(t *testing.T) {
	decomposed := "e\u0301cole"
	e := NewEntry("/tmp", decomposed, KindRegular)
	if e.Name != decomposed {
		t.Fatalf("raw name must be kept, got %q", e.Name)
	}
	if e.Label != "\u00e9cole" {
		t.Fatalf("expected NFC label, got %q", e.Label)
	}
}

func TestClassify(t *testing.T) {
	original := executableProbe
	t.Cleanup(func() { executableProbe = original })
	executableProbe = func(path string) bool { return path == "/bin/run" }

	all := DecorateOptions{Color: true, Indicate: true}
	tests := []struct {
		name      string
		entry     Entry
		indicator byte
		fg        tcell.Color
	}{
		{"dir", Entry{FullPath: "/d", Kind: KindDir}, '/', tcell.ColorNavy},
		{"symlink", Entry{FullPath: "/l", Kind: KindSymlink}, '@', tcell.ColorTeal},
		{"fifo", Entry{FullPath: "/p", Kind: KindFIFO}, '|', tcell.ColorOlive},
		{"socket", Entry{FullPath: "/s", Kind: KindSocket}, '=', tcell.ColorPurple},
		{"char device", Entry{FullPath: "/c", Kind: KindCharDevice}, 0, tcell.ColorOlive},
		{"executable", Entry{FullPath: "/bin/run", Kind: KindRegular}, '*', tcell.ColorGreen},
		{"unknown executable", Entry{FullPath: "/bin/run", Kind: KindUnknown}, '*', tcell.ColorGreen},
		{"plain", Entry{FullPath: "/f", Kind: KindRegular}, 0, tcell.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.entry, all)
			if d.Indicator != tt.indicator {
				t.Fatalf("indicator=%q want %q", d.Indicator, tt.indicator)
			}
			fg, _, _ := d.Style.Decompose()
			if fg != tt.fg {
				t.Fatalf("fg=%v want %v", fg, tt.fg)
			}
		})
	}
}

func TestClassifyHonoursOptions(t *testing.T) {
	e := Entry{FullPath: "/d", Kind: KindDir}

	d := Classify(e, DecorateOptions{})
	if d.Indicator != 0 || d.Style != tcell.StyleDefault {
		t.Fatalf("expected undecorated entry, got %+v", d)
	}
	if d.Width() != 0 {
		t.Fatalf("expected zero indicator width")
	}

	d = Classify(e, DecorateOptions{Indicate: true})
	if d.Indicator != '/' || d.Style != tcell.StyleDefault {
		t.Fatalf("expected indicator without color, got %+v", d)
	}
	if d.Width() != 1 {
		t.Fatalf("expected indicator width 1")
	}
}

func TestExecutableProbeOnDisk(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	writeFile(t, script, 0o755)
	plain := filepath.Join(dir, "notes.txt")
	writeFile(t, plain, 0o644)

	opts := DecorateOptions{Indicate: true}
	if d := Classify(NewEntry(dir, "run.sh", KindRegular), opts); d.Indicator != '*' {
		t.Fatalf("expected executable indicator, got %q", d.Indicator)
	}
	if d := Classify(NewEntry(dir, "notes.txt", KindRegular), opts); d.Indicator != 0 {
		t.Fatalf("expected no indicator, got %q", d.Indicator)
	}
}
