package app

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/kk-code-lab/peek/internal/launch"
	"github.com/pkg/errors"
)

func (app *Application) scan() {
	count, err := app.state.Scan(app.opts.Ignore, app.opts.Measure)
	app.renderer.Invalidate()
	if err != nil {
		app.logger.Warn("scan failed", "dir", app.state.Dir, "error", err)
		return
	}
	app.logger.Debug("scanned", "dir", app.state.Dir, "entries", count)
}

// changeDir enters path and rescans. A refused change is reported in the
// status line; losing track of the new directory afterwards is fatal.
func (app *Application) changeDir(path string) error {
	if err := os.Chdir(path); err != nil {
		app.state.Status.Error = describe(path, err)
		app.logger.Debug("chdir refused", "path", path, "error", err)
		return nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "cannot determine working directory")
	}
	app.logger.Info("changed directory", "from", app.state.Dir, "to", wd)
	app.state.Dir = wd
	app.scan()
	return nil
}

// describe turns a syscall failure into "name: reason".
func describe(path string, err error) string {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return fmt.Sprintf("%s: %v", filepath.Base(path), pathErr.Err)
	}
	return err.Error()
}

func (app *Application) handleEnter() error {
	entry, ok := app.state.Selected()
	if !ok {
		return nil
	}
	return app.changeDir(entry.FullPath)
}

func (app *Application) handleToggleHidden() {
	app.state.ShowHidden = !app.state.ShowHidden
	app.scan()
	if app.state.ShowHidden {
		app.state.Status.Message = "showing hidden files"
	} else {
		app.state.Status.Message = "hiding hidden files"
	}
}

// command builds a child invocation of prefix with args appended, carrying
// the selection in its environment.
func (app *Application) command(prefix []string, args ...string) launch.Command {
	var name, path string
	if entry, ok := app.state.Selected(); ok {
		name, path = entry.Name, entry.FullPath
	}
	return launch.Command{
		Name: prefix[0],
		Args: append(append([]string{}, prefix[1:]...), args...),
		Dir:  app.state.Dir,
		Env:  launch.ChildEnv(app.getenv, name, path),
	}
}

func (app *Application) handleEdit() error {
	entry, ok := app.state.Selected()
	if !ok {
		return nil
	}
	if len(app.opts.Programs.Editor) == 0 {
		app.state.Status.Error = "no editor found, set $EDITOR"
		return nil
	}
	return app.runBlocking(app.command(app.opts.Programs.Editor, entry.FullPath), false)
}

func (app *Application) handleOpen() {
	entry, ok := app.state.Selected()
	if !ok {
		return
	}
	if len(app.opts.Programs.Opener) == 0 {
		app.state.Status.Error = "no opener found"
		return
	}
	cmd := app.command(app.opts.Programs.Opener, entry.FullPath)
	if err := app.launcher.RunDetached(cmd); err != nil {
		app.state.Status.Error = err.Error()
		app.logger.Warn("open failed", "command", cmd.String(), "error", err)
		return
	}
	app.logger.Info("opened", "command", cmd.String())
}

func (app *Application) handleExecute() error {
	entry, ok := app.state.Selected()
	if !ok {
		return nil
	}
	return app.runBlocking(app.command([]string{entry.FullPath}), false)
}

func (app *Application) handleShell() error {
	return app.runBlocking(app.command(app.shell()), true)
}

func (app *Application) handlePromptSubmit() error {
	line := app.state.Status.Input
	app.endPrompt()
	if line == "" {
		return nil
	}
	return app.runBlocking(app.command(app.shell(), "-c", line), true)
}

func (app *Application) shell() []string {
	if len(app.opts.Programs.Shell) == 0 {
		return []string{"/bin/sh"}
	}
	return app.opts.Programs.Shell
}

// runBlocking hands the terminal to a child and takes it back afterwards.
// rescan is set for children that may have changed the directory contents.
func (app *Application) runBlocking(cmd launch.Command, rescan bool) error {
	var runErr error
	err := app.handoff(func() {
		runErr = app.launcher.RunBlocking(cmd)
	})
	if err != nil {
		return err
	}

	var exitErr *exec.ExitError
	switch {
	case errors.As(runErr, &exitErr):
		app.state.Status.Message = fmt.Sprintf("%s exited with status %d", filepath.Base(cmd.Name), exitErr.ExitCode())
		app.logger.Info("child failed", "command", cmd.String(), "status", exitErr.ExitCode())
	case runErr != nil:
		app.state.Status.Error = runErr.Error()
		app.logger.Warn("launch failed", "command", cmd.String(), "error", runErr)
	default:
		app.logger.Info("child finished", "command", cmd.String())
	}

	if rescan {
		app.scan()
	}
	return nil
}

// handoff moves below the listing, restores cooked mode for run and then
// re-enters raw mode. The listing is repainted from wherever the child left
// the cursor.
func (app *Application) handoff(run func()) error {
	if err := app.renderer.Leave(); err != nil {
		return errors.Wrap(err, "cannot write to terminal")
	}
	if err := app.term.Suspend(); err != nil {
		return errors.Wrap(err, "cannot restore terminal")
	}
	run()
	if err := app.term.Resume(); err != nil {
		return errors.Wrap(err, "cannot re-enter raw mode")
	}
	app.renderer.Invalidate()
	return nil
}
