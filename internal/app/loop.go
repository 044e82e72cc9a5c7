package app

import (
	"io"

	"github.com/kk-code-lab/peek/internal/nav"
	"github.com/kk-code-lab/peek/internal/term"
	"github.com/kk-code-lab/peek/internal/ui/input"
	"github.com/pkg/errors"
)

// Run renders and handles keys until the user quits or input ends. The
// returned error is fatal; recoverable failures go to the status line.
func (app *Application) Run() error {
	app.probeCursor()

	for {
		if err := app.render(); err != nil {
			return err
		}

		key, err := app.term.ReadKey()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "cannot read from terminal")
		}
		if key.Code == term.KeyUnknown {
			continue
		}

		quit, err := app.handleKey(key)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// probeCursor checks that the terminal answers position reports. Nothing
// depends on the answer; a silent terminal is only logged.
func (app *Application) probeCursor() {
	row, col, err := app.term.QueryCursor()
	if err != nil {
		app.logger.Warn("cursor report unavailable", "error", err)
		return
	}
	app.logger.Debug("cursor position", "row", row, "col", col)
}

func (app *Application) render() error {
	rows, cols, err := app.term.Size()
	switch {
	case err != nil:
		app.logger.Debug("keeping previous size", "error", err)
	case rows > 0 && cols > 0:
		app.rows, app.cols = rows, cols
	}

	app.state.Arrange(app.rows, app.cols, app.opts.ShowDir)
	if err := app.renderer.Render(app.state.View(app.rows, app.cols, app.opts.ShowDir)); err != nil {
		return errors.Wrap(err, "cannot write to terminal")
	}
	if err := app.term.Flush(); err != nil {
		return errors.Wrap(err, "cannot write to terminal")
	}
	app.state.ClearStatus()
	return nil
}

// handleKey dispatches one key. It reports whether the browser should exit.
func (app *Application) handleKey(key term.Key) (bool, error) {
	action := app.input.ProcessKey(key)
	if action != input.ActionNone {
		app.logger.Debug("key", "key", key.String(), "action", action.String())
	}

	switch action {
	case input.ActionQuit:
		return true, nil
	case input.ActionUp:
		app.move(nav.Up)
	case input.ActionDown:
		app.move(nav.Down)
	case input.ActionLeft:
		app.move(nav.Left)
	case input.ActionRight:
		app.move(nav.Right)
	case input.ActionEnter:
		return false, app.handleEnter()
	case input.ActionParent:
		return false, app.changeDir("..")
	case input.ActionReload:
		app.scan()
	case input.ActionToggleHidden:
		app.handleToggleHidden()
	case input.ActionRedraw:
		app.renderer.Invalidate()
	case input.ActionEdit:
		return false, app.handleEdit()
	case input.ActionOpen:
		app.handleOpen()
	case input.ActionExecute:
		return false, app.handleExecute()
	case input.ActionShell:
		return false, app.handleShell()
	case input.ActionSuspend:
		return false, app.suspendToShell()

	case input.ActionPromptStart:
		app.input.SetMode(input.ModePrompt)
		app.state.Status.Prompting = true
		app.state.Status.Input = ""
	case input.ActionPromptInsert:
		app.state.Status.Input += string(key.Rune)
	case input.ActionPromptDelete:
		app.handlePromptDelete()
	case input.ActionPromptCancel:
		app.endPrompt()
	case input.ActionPromptSubmit:
		return false, app.handlePromptSubmit()
	}
	return false, nil
}

func (app *Application) move(d nav.Direction) {
	if app.state.Move(d) {
		app.renderer.Invalidate()
	}
}

func (app *Application) endPrompt() {
	app.input.SetMode(input.ModeBrowse)
	app.state.Status.Prompting = false
	app.state.Status.Input = ""
}

func (app *Application) handlePromptDelete() {
	in := []rune(app.state.Status.Input)
	if len(in) == 0 {
		app.endPrompt()
		return
	}
	app.state.Status.Input = string(in[:len(in)-1])
}
