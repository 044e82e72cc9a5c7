package fs

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Kind is the filesystem type of an entry as reported by the directory read.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindRegular
	KindDir
	KindSymlink
	KindFIFO
	KindSocket
	KindCharDevice
	KindBlockDevice
)

// Entry represents a single item of a directory snapshot.
type Entry struct {
	Name     string // raw name as stored on disk
	Label    string // NFC-normalized name used for display
	FullPath string
	Kind     Kind
}

// NewEntry builds an entry for name inside dir.
func NewEntry(dir, name string, kind Kind) Entry {
	return Entry{
		Name:     name,
		Label:    norm.NFC.String(name),
		FullPath: filepath.Join(dir, name),
		Kind:     kind,
	}
}

// IsHidden reports whether the entry should be treated as hidden.
func (e Entry) IsHidden() bool {
	return IsHidden(e.FullPath, e.Name)
}

// KindFromMode maps the type bits of a file mode onto a Kind.
func KindFromMode(mode os.FileMode) Kind {
	switch t := mode.Type(); {
	case t == 0:
		return KindRegular
	case t&os.ModeDir != 0:
		return KindDir
	case t&os.ModeSymlink != 0:
		return KindSymlink
	case t&os.ModeNamedPipe != 0:
		return KindFIFO
	case t&os.ModeSocket != 0:
		return KindSocket
	case t&os.ModeCharDevice != 0:
		return KindCharDevice
	case t&os.ModeDevice != 0:
		return KindBlockDevice
	default:
		return KindUnknown
	}
}
