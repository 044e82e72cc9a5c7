package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/gobwas/glob"
	"github.com/kk-code-lab/peek/internal/app"
	"github.com/kk-code-lab/peek/internal/config"
	fsutil "github.com/kk-code-lab/peek/internal/fs"
	"github.com/kk-code-lab/peek/internal/launch"
	"github.com/kk-code-lab/peek/internal/layout"
	"github.com/kk-code-lab/peek/internal/logging"
	"github.com/kk-code-lab/peek/internal/shellsetup"
	"github.com/kk-code-lab/peek/internal/term"
	"github.com/kk-code-lab/peek/internal/ui/render"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"
)

// flags holds the command line; booleans only ever switch a setting away
// from its default.
type flags struct {
	all      bool
	noColor  bool
	clear    bool
	noDir    bool
	indicate bool
	hex      bool
	oneshot  bool
	cfgFile  string
	logFile  string
	setup    string
	cdFile   string
}

// NewRootCmd creates the peek command.
func NewRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "peek [DIR]",
		Short: "Browse a directory in the terminal",
		Long: `peek lists a directory as a grid below the prompt and lets you move
around it with hjkl or the arrow keys.

Keys: Enter enters a directory, Backspace goes up, e edits, o opens,
x executes, s starts a shell, : runs a command, . toggles hidden files,
r reloads and q or F10 quits.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("setup") {
				shell := f.setup
				if shell == "auto" {
					shell = ""
				}
				return shellsetup.PrintSetup(cmd.OutOrStdout(), shell, shellsetup.Config{})
			}

			dir := ""
			if len(args) > 0 {
				dir = args[0]
			}
			return run(cmd, f, dir)
		},
	}

	fl := cmd.Flags()
	fl.BoolVarP(&f.all, "all", "a", false, "show hidden files")
	fl.BoolVarP(&f.noColor, "no-color", "B", false, "do not color entries")
	fl.BoolVarP(&f.clear, "clear", "c", false, "erase the listing on exit")
	fl.BoolVarP(&f.noDir, "no-dir", "d", false, "do not show the directory header")
	fl.BoolVarP(&f.indicate, "classify", "F", false, "append type indicators (*/=@|)")
	fl.BoolVarP(&f.hex, "hex", "x", false, `show unprintable bytes as \XX`)
	fl.BoolVarP(&f.oneshot, "oneshot", "1", false, "print the listing once and exit")
	fl.StringVar(&f.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/peek/config.yaml)")
	fl.StringVar(&f.logFile, "log", "", "append debug logs to this file")
	fl.StringVar(&f.setup, "setup", "", "print the shell function that follows peek's directory (bash, zsh, sh, ksh, dash, fish)")
	fl.Lookup("setup").NoOptDefVal = "auto"
	fl.StringVar(&f.cdFile, shellsetup.CdFileFlag[2:], "", "write the final directory to this file")
	_ = fl.MarkHidden(shellsetup.CdFileFlag[2:])

	return cmd
}

// loadConfig reads the config file and applies the flags on top.
func loadConfig(f flags) (config.Config, error) {
	cfg := config.Default()
	path, required := f.cfgFile, true
	if path == "" {
		required = false
		// Without a home directory there is no default file to read.
		path, _ = config.DefaultPath()
	}
	if path != "" {
		var err error
		if cfg, err = config.Load(path, required); err != nil {
			return cfg, err
		}
	}

	if f.all {
		cfg.ShowHidden = true
	}
	if f.noColor {
		cfg.Color = false
	}
	if f.clear {
		cfg.ClearOnExit = true
	}
	if f.noDir {
		cfg.ShowDir = false
	}
	if f.indicate {
		cfg.Indicators = true
	}
	if f.hex {
		cfg.Hex = true
	}
	if f.logFile != "" {
		cfg.LogFile = f.logFile
	}
	return cfg, nil
}

func run(cmd *cobra.Command, f flags, dir string) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Open(cfg.LogFile, slog.LevelDebug)
	if err != nil {
		return err
	}
	defer func() {
		_ = closer.Close()
	}()

	ignore, err := fsutil.CompileIgnore(cfg.Ignore)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	outIsTerminal := isTerminal(out)
	measure := layout.MeasureOptions{
		Hex: cfg.Hex,
		Decorate: fsutil.DecorateOptions{
			Color:    cfg.Color,
			Indicate: cfg.Indicators,
		},
	}

	if f.oneshot || !outIsTerminal {
		if !outIsTerminal {
			measure.Decorate.Color = false
		}
		return printOnce(out, dir, cfg.ShowHidden, ignore, measure, logger)
	}

	tty, err := term.Open()
	if err != nil {
		return errors.Wrap(err, "cannot set up terminal")
	}

	theme := render.DefaultTheme()
	if !cfg.Color {
		theme = render.MonochromeTheme()
	}
	browser, err := app.NewApplication(tty, launch.NewExec(logger), app.Options{
		Dir:         dir,
		ShowHidden:  cfg.ShowHidden,
		ShowDir:     cfg.ShowDir,
		ClearOnExit: cfg.ClearOnExit,
		Measure:     measure,
		Ignore:      ignore,
		Programs: launch.Detect(launch.Overrides{
			Editor: cfg.Editor,
			Opener: cfg.Opener,
			Shell:  cfg.Shell,
		}),
		Theme:  theme,
		Logger: logger,
	})
	if err != nil {
		_ = tty.Close()
		return err
	}

	runErr := browser.Run()
	if err := browser.Close(); runErr == nil {
		runErr = err
	}
	if runErr != nil {
		logger.Error("exiting", "error", runErr)
		return runErr
	}
	return shellsetup.WriteCdFile(f.cdFile, browser.GetCwd())
}

// printOnce writes the listing of dir to out at the width of the terminal
// it is going to, or 80 columns when that is not a terminal.
func printOnce(out io.Writer, dir string, showHidden bool, ignore []glob.Glob, measure layout.MeasureOptions, logger *slog.Logger) error {
	if dir == "" {
		dir = "."
	}
	entries, err := fsutil.Scan(dir, fsutil.ScanOptions{ShowHidden: showHidden, Ignore: ignore})
	if err != nil {
		return err
	}
	logger.Debug("scanned", "dir", dir, "entries", len(entries))

	metrics := layout.Measure(entries, measure)
	l := layout.Solver{TermWidth: outputWidth(out), Mode: layout.ModeOneshot}.Solve(layout.DecoratedWidths(metrics))
	return render.Print(out, metrics, l)
}

const defaultWidth = 80

func outputWidth(out io.Writer) int {
	if file, ok := out.(*os.File); ok {
		if cols, _, err := xterm.GetSize(int(file.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	return defaultWidth
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	return ok && xterm.IsTerminal(int(file.Fd()))
}
