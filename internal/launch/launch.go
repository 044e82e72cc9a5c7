// Package launch runs the external programs the browser hands the selection
// to: editors, openers, the selection itself and shells.
package launch

import (
	"strconv"
	"strings"
)

// Environment variables exported to every child.
const (
	EnvDepth    = "PEEK_DEPTH"
	EnvSelected = "PEEK_SELECTED"
	EnvPath     = "PEEK_PATH"
)

// Command is one program invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
	Env  []string // KEY=VALUE pairs added to the inherited environment
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Launcher starts external programs. RunBlocking owns the terminal until the
// child exits; RunDetached returns as soon as the child has started.
type Launcher interface {
	RunBlocking(cmd Command) error
	RunDetached(cmd Command) error
}

// ChildEnv builds the variables that tell a child it runs under the browser,
// how deeply nested it is and which entry was selected. name and path may be
// empty when nothing is selected.
func ChildEnv(getenv func(string) string, name, path string) []string {
	depth := 0
	if v, err := strconv.Atoi(strings.TrimSpace(getenv(EnvDepth))); err == nil && v > 0 {
		depth = v
	}
	return []string{
		EnvDepth + "=" + strconv.Itoa(depth+1),
		EnvSelected + "=" + name,
		EnvPath + "=" + path,
	}
}
