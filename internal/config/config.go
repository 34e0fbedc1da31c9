// Package config loads editor options from a TOML file with environment
// overrides and offers live reload through a file watcher.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// Options holds the editor configuration.
type Options struct {
	// TabWidth is the display width of a tab character.
	TabWidth int `toml:"tab_width"`

	// ShiftWidth is the indent applied by > and <.
	ShiftWidth int `toml:"shift_width"`

	// Clipboard enables the + and * system clipboard registers.
	Clipboard bool `toml:"clipboard"`

	// RegistersPath is where register sessions are persisted. Empty
	// disables persistence.
	RegistersPath string `toml:"registers_path"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Color enables the colored status bar.
	Color bool `toml:"color"`
}

// Default returns the built-in configuration.
func Default() Options {
	return Options{
		TabWidth:   8,
		ShiftWidth: 4,
		Clipboard:  true,
		LogLevel:   "info",
		Color:      true,
	}
}

// Load reads the TOML file at path, applies VICORE_* environment
// overrides, and validates the result. A missing file is not an error;
// defaults plus the environment apply.
func Load(path string) (Options, error) {
	opts := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return opts, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, &opts); err != nil {
				return opts, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	opts.applyEnv()
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// applyEnv overrides fields from VICORE_* environment variables.
func (o *Options) applyEnv() {
	if v, ok := os.LookupEnv("VICORE_TAB_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			o.TabWidth = n
		}
	}
	if v, ok := os.LookupEnv("VICORE_SHIFT_WIDTH"); ok {
		if n, err := strconv.Atoi(v); err == nil {
			o.ShiftWidth = n
		}
	}
	if v, ok := os.LookupEnv("VICORE_CLIPBOARD"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			o.Clipboard = b
		}
	}
	if v, ok := os.LookupEnv("VICORE_REGISTERS_PATH"); ok {
		o.RegistersPath = v
	}
	if v, ok := os.LookupEnv("VICORE_LOG_LEVEL"); ok {
		o.LogLevel = v
	}
	if v, ok := os.LookupEnv("VICORE_COLOR"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			o.Color = b
		}
	}
}

// Validate checks field ranges.
func (o *Options) Validate() error {
	if o.TabWidth < 1 || o.TabWidth > 16 {
		return fmt.Errorf("tab_width %d out of range 1-16", o.TabWidth)
	}
	if o.ShiftWidth < 1 || o.ShiftWidth > 16 {
		return fmt.Errorf("shift_width %d out of range 1-16", o.ShiftWidth)
	}
	switch o.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", o.LogLevel)
	}
	return nil
}
