// Package config loads the optional YAML settings file. Command-line flags
// are applied on top by the caller.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config mirrors config.yaml.
type Config struct {
	ShowHidden  bool     `yaml:"show_hidden"`   // list dotfiles
	Color       bool     `yaml:"color"`         // color entries by type
	Indicators  bool     `yaml:"indicators"`    // append ls -F style markers
	ClearOnExit bool     `yaml:"clear_on_exit"` // erase the listing when quitting
	ShowDir     bool     `yaml:"show_dir"`      // print the directory header
	Hex         bool     `yaml:"hex"`           // show unprintable bytes as \XX
	Editor      string   `yaml:"editor"`        // overrides $VISUAL/$EDITOR
	Opener      string   `yaml:"opener"`        // overrides xdg-open/open
	Shell       string   `yaml:"shell"`         // overrides $SHELL
	Ignore      []string `yaml:"ignore"`        // glob patterns hidden from listings
	LogFile     string   `yaml:"log_file"`      // debug log destination
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Color:   true,
		ShowDir: true,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/peek/config.yaml, falling back to
// ~/.config/peek/config.yaml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "peek", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "cannot locate config directory")
	}
	return filepath.Join(home, ".config", "peek", "config.yaml"), nil
}

// Load reads path on top of the defaults. A missing file is not an error
// unless required is set, which is the case for an explicit --config.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, errors.Wrapf(err, "failed to read from %s", path)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Default(), errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, nil
}
