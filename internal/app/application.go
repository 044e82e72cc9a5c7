package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/gobwas/glob"
	"github.com/kk-code-lab/peek/internal/launch"
	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/term"
	"github.com/kk-code-lab/peek/internal/ui/input"
	"github.com/kk-code-lab/peek/internal/ui/render"
	"github.com/pkg/errors"
)

// Options configures a browser session.
type Options struct {
	// Dir is entered before the first scan; empty keeps the working
	// directory.
	Dir         string
	ShowHidden  bool
	ShowDir     bool
	ClearOnExit bool
	Measure     layout.MeasureOptions
	Ignore      []glob.Glob
	Programs    launch.Programs
	Theme       render.Theme
	Logger      *slog.Logger
}

// Application runs the interactive browser on a terminal.
type Application struct {
	term     term.Terminal
	launcher launch.Launcher
	renderer *render.Renderer
	input    *input.InputHandler
	state    *BrowserState
	opts     Options
	logger   *slog.Logger
	getenv   func(string) string

	rows, cols int
	closed     bool
}

// Fallback size when the terminal cannot report one.
const (
	defaultRows = 24
	defaultCols = 80
)

// NewApplication enters opts.Dir and takes the first snapshot. A directory
// that cannot be entered is fatal here, unlike later changes.
func NewApplication(t term.Terminal, l launch.Launcher, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	app := &Application{
		term:     t,
		launcher: l,
		renderer: render.NewRenderer(t, opts.Theme),
		input:    input.NewInputHandler(),
		opts:     opts,
		logger:   logger,
		getenv:   os.Getenv,
		rows:     defaultRows,
		cols:     defaultCols,
	}

	if opts.Dir != "" {
		if err := os.Chdir(opts.Dir); err != nil {
			return nil, errors.Wrapf(err, "cannot enter %s", opts.Dir)
		}
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "cannot determine working directory")
	}

	app.state = NewBrowserState(wd, opts.ShowHidden)
	app.scan()
	return app, nil
}

// State exposes the browser state for inspection.
func (app *Application) State() *BrowserState {
	return app.state
}

// Close leaves the listing on screen, or erases it with ClearOnExit, and
// restores the terminal.
func (app *Application) Close() error {
	if app.closed {
		return nil
	}
	app.closed = true

	var err error
	if app.opts.ClearOnExit {
		err = app.renderer.Clear()
	} else {
		err = app.renderer.Leave()
	}
	if ferr := app.term.Flush(); err == nil {
		err = ferr
	}
	if cerr := app.term.Close(); err == nil {
		err = cerr
	}
	return err
}

// GetCwd returns the directory being browsed.
func (app *Application) GetCwd() string {
	return app.state.Dir
}
