//go:build unix

package launch

import (
	"io"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/pkg/errors"
)

// Exec launches real processes. Blocking children get the controlling
// terminal so redirected stdio does not leak into them.
type Exec struct {
	TTYPath string
	Logger  *slog.Logger
}

var _ Launcher = (*Exec)(nil)

// NewExec returns a launcher bound to /dev/tty.
func NewExec(logger *slog.Logger) *Exec {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Exec{TTYPath: "/dev/tty", Logger: logger}
}

func (e *Exec) command(c Command) *exec.Cmd {
	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Env = append(os.Environ(), c.Env...)
	return cmd
}

func (e *Exec) RunBlocking(c Command) error {
	cmd := e.command(c)

	tty, err := os.OpenFile(e.TTYPath, os.O_RDWR, 0)
	if err == nil {
		defer func() {
			_ = tty.Close()
		}()
		cmd.Stdin, cmd.Stdout, cmd.Stderr = tty, tty, tty
	} else {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	}

	start := time.Now()
	runErr := cmd.Run()
	e.Logger.Debug("child exited",
		"command", c.String(),
		"dir", c.Dir,
		"duration", time.Since(start),
		"error", runErr)

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		return runErr
	}
	if runErr != nil {
		return errors.Wrapf(runErr, "cannot run %s", c.Name)
	}
	return nil
}

func (e *Exec) RunDetached(c Command) error {
	cmd := e.command(c)

	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return errors.Wrap(err, "cannot open null device")
	}
	defer func() {
		_ = devNull.Close()
	}()
	cmd.Stdin, cmd.Stdout, cmd.Stderr = devNull, devNull, devNull
	// A new session keeps the child alive, and off the terminal, after the
	// browser exits.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "cannot start %s", c.Name)
	}
	e.Logger.Debug("child detached", "command", c.String(), "pid", cmd.Process.Pid)

	go func() {
		err := cmd.Wait()
		e.Logger.Debug("detached child exited", "command", c.String(), "error", err)
	}()
	return nil
}
