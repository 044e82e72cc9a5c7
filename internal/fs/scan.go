package fs

import (
	"os"
	"sort"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"
)

// ScanOptions controls which entries a scan keeps.
type ScanOptions struct {
	ShowHidden bool
	Ignore     []glob.Glob
}

// CompileIgnore compiles shell-style patterns matched against entry names.
func CompileIgnore(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid ignore pattern %q", pattern)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Scan reads dir and returns its visible entries sorted by name. "." and ".."
// are never returned.
func Scan(dir string, opts ScanOptions) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot scan %s", dir)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		if !opts.ShowHidden && IsHidden("", name) {
			continue
		}
		if ignored(name, opts.Ignore) {
			continue
		}
		entries = append(entries, NewEntry(dir, name, KindFromMode(de.Type())))
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Label < entries[j].Label
	})
	return entries, nil
}

func ignored(name string, patterns []glob.Glob) bool {
	for _, g := range patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}
