package launch

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Programs holds the resolved command prefixes for each action. A nil
// prefix means no program was found and the action reports an error.
type Programs struct {
	Editor []string
	Opener []string
	Shell  []string
}

// Overrides are user-configured commands; empty fields fall back to
// detection.
type Overrides struct {
	Editor string
	Opener string
	Shell  string
}

// Detect resolves the programs for this system.
func Detect(o Overrides) Programs {
	return detectInternal(runtime.GOOS, os.Getenv, exec.LookPath, o)
}

func detectInternal(goos string, getenv func(string) string, lookPath func(string) (string, error), o Overrides) Programs {
	var p Programs
	p.Editor, _ = detectEditorCommand(getenv, lookPath, o.Editor)
	p.Opener, _ = detectOpenerCommand(goos, lookPath, o.Opener)
	p.Shell = detectShellCommand(getenv, lookPath, o.Shell)
	return p
}

func detectEditorCommand(getenv func(string) string, lookPath func(string) (string, error), override string) ([]string, bool) {
	candidates := []string{override, getenv("VISUAL"), getenv("EDITOR")}

	for _, candidate := range candidates {
		args := ParseCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	for _, def := range []string{"vim", "vi", "nano"} {
		if resolved, ok := resolveExecutable(def, lookPath); ok {
			return []string{resolved}, true
		}
	}
	return nil, false
}

func detectOpenerCommand(goos string, lookPath func(string) (string, error), override string) ([]string, bool) {
	if args := ParseCommand(override); len(args) > 0 {
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	var defaults []string
	switch {
	case strings.EqualFold(goos, "darwin"):
		defaults = []string{"open"}
	default:
		defaults = []string{"xdg-open", "gio", "cygstart"}
	}
	for _, def := range defaults {
		if resolved, ok := resolveExecutable(def, lookPath); ok {
			if def == "gio" {
				return []string{resolved, "open"}, true
			}
			return []string{resolved}, true
		}
	}
	return nil, false
}

func detectShellCommand(getenv func(string) string, lookPath func(string) (string, error), override string) []string {
	for _, candidate := range []string{override, getenv("SHELL")} {
		args := ParseCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutable(args[0], lookPath); ok {
			args[0] = resolved
			return args
		}
	}
	return []string{"/bin/sh"}
}

// ParseCommand splits a command line the way a shell would for the simple
// cases: whitespace separates words, quotes group them, and a leading ~ in
// the program name is expanded.
func ParseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = ExpandUserPath(args[0])
	}
	return args
}

// ExpandUserPath replaces a leading ~ or ~/ with the home directory.
func ExpandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	if path[1] != '/' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func resolveExecutable(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}
	path, err := lookPath(ExpandUserPath(cmd))
	if err != nil || path == "" {
		return "", false
	}
	return path, true
}
