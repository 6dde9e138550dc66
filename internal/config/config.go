// Package config loads and watches the nimbus configuration file.
//
// Configuration is TOML with a section per concern. Values absent from
// the file keep their defaults, so an empty or missing file is a fully
// valid configuration.
package config

import (
	"fmt"
)

// Config is the root configuration.
type Config struct {
	Float FloatSection `toml:"float"`
	Log   LogSection   `toml:"log"`
}

// FloatSection controls the float window defaults.
type FloatSection struct {
	// AutoHide closes the float on any cursor movement away from the
	// anchor position.
	AutoHide bool `toml:"auto_hide"`

	// PreferTop places the float above the cursor when it fits.
	PreferTop bool `toml:"prefer_top"`

	// MaxWidth is the widest float in columns.
	MaxWidth int `toml:"max_width"`

	// MaxHeight caps float height in rows. Zero lets the host decide.
	MaxHeight int `toml:"max_height"`

	// DebounceMS is the quiet period after cursor movement before the
	// visibility policy runs, in milliseconds.
	DebounceMS int `toml:"debounce_ms"`

	// Highlight is the window highlight group.
	Highlight string `toml:"highlight"`

	// BorderHighlight is the border highlight group. Empty falls back
	// to Highlight.
	BorderHighlight string `toml:"border_highlight"`

	// Modes lists the editor modes a float may be created in.
	Modes []string `toml:"modes"`
}

// LogSection controls daemon logging.
type LogSection struct {
	// Level is the logging verbosity ("debug", "info", "warn", "error").
	Level string `toml:"level"`

	// File is the log file path. Empty logs to stderr.
	File string `toml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Float: FloatSection{
			AutoHide:   true,
			MaxWidth:   80,
			DebounceMS: 300,
			Highlight:  "NimbusFloating",
			Modes:      []string{"n", "i", "ic", "s"},
		},
		Log: LogSection{
			Level: "info",
		},
	}
}

// Validate checks the configuration for values no component can work
// with. It returns the first problem found.
func (c Config) Validate() error {
	if c.Float.MaxWidth <= 0 {
		return fmt.Errorf("%w: float.max_width must be positive, got %d", ErrInvalidConfig, c.Float.MaxWidth)
	}
	if c.Float.MaxHeight < 0 {
		return fmt.Errorf("%w: float.max_height must not be negative, got %d", ErrInvalidConfig, c.Float.MaxHeight)
	}
	if c.Float.DebounceMS < 0 {
		return fmt.Errorf("%w: float.debounce_ms must not be negative, got %d", ErrInvalidConfig, c.Float.DebounceMS)
	}
	if len(c.Float.Modes) == 0 {
		return fmt.Errorf("%w: float.modes must not be empty", ErrInvalidConfig)
	}
	for _, mode := range c.Float.Modes {
		if mode == "" {
			return fmt.Errorf("%w: float.modes contains an empty mode", ErrInvalidConfig)
		}
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q is not one of debug, info, warn, error", ErrInvalidConfig, c.Log.Level)
	}
	return nil
}
