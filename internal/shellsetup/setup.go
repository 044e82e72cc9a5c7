// Package shellsetup prints the shell function that lets peek change the
// directory of the shell it was started from.
package shellsetup

import (
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"
)

// CdFileFlag is the flag the wrapper passes; peek writes its final
// directory to the named file on exit.
const CdFileFlag = "--cd-file"

type ParentShellFunc func() string

type Config struct {
	DetectParent ParentShellFunc
	// Executable overrides the program path embedded in the snippet.
	Executable string
}

// PrintSetup writes the wrapper function for the detected (or requested)
// shell to w.
func PrintSetup(w io.Writer, shellOverride string, cfg Config) error {
	parent := cfg.DetectParent
	if parent == nil {
		parent = DetectParentShellName
	}

	shell := normalizeShellName(shellOverride)
	if shell == "" {
		shell = detectShellInternal(os.Getenv, parent)
	}

	ppath := cfg.Executable
	if ppath == "" {
		var err error
		if ppath, err = os.Executable(); err != nil {
			ppath = "peek"
		}
	}
	quoted := strconv.Quote(ppath)

	var err error
	switch shell {
	case "fish":
		_, err = fmt.Fprintf(w, `function peek
    set -l cd_file (mktemp)
    or return
    command %s %s "$cd_file" $argv
    set -l peek_status $status
    set -l dest (cat "$cd_file" 2>/dev/null)
    rm -f "$cd_file"
    if test -n "$dest" -a -d "$dest"
        builtin cd "$dest"
    end
    return $peek_status
end
`, quoted, CdFileFlag)
	case "bash", "zsh", "sh", "ksh", "dash":
		_, err = fmt.Fprintf(w, `peek() {
    cd_file=$(mktemp "${TMPDIR:-/tmp}/peek.XXXXXX") || return
    command %s %s "$cd_file" "$@"
    peek_status=$?
    dest=$(cat "$cd_file" 2>/dev/null)
    rm -f "$cd_file"
    if [ -n "$dest" ] && [ -d "$dest" ]; then
        cd "$dest"
    fi
    return $peek_status
}
`, quoted, CdFileFlag)
	default:
		return fmt.Errorf("unsupported shell %q (supported: bash, zsh, sh, ksh, dash, fish)", shell)
	}
	return err
}

func detectShellInternal(getenv func(string) string, parent ParentShellFunc) string {
	if shell := normalizeShellName(getenv("SHELL")); shell != "" {
		return shell
	}

	if parent != nil {
		if shell := normalizeShellName(parent()); shell != "" {
			return shell
		}
	}

	return "sh"
}

// DetectParentShellName reads the parent's command name from /proc. It
// returns "" where /proc is not available.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	data, err := os.ReadFile("/proc/" + strconv.Itoa(ppid) + "/comm")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func normalizeShellName(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	value = extractExecutable(value)
	if value == "" {
		return ""
	}

	value = strings.Trim(value, `"'`)
	base := strings.ToLower(path.Base(value))
	// Login shells show up as "-bash".
	base = strings.TrimPrefix(base, "-")
	return strings.TrimSpace(base)
}

func extractExecutable(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}

	if strings.HasPrefix(value, "\"") {
		value = value[1:]
		if idx := strings.IndexRune(value, '"'); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if strings.HasPrefix(value, "'") {
		value = value[1:]
		if idx := strings.IndexRune(value, '\''); idx >= 0 {
			return value[:idx]
		}
		return value
	}

	if idx := strings.IndexAny(value, " \t"); idx >= 0 {
		return value[:idx]
	}

	return value
}

// WriteCdFile records dir for the wrapper function.
func WriteCdFile(path, dir string) error {
	if path == "" {
		return nil
	}
	return os.WriteFile(path, []byte(dir), 0o600)
}
