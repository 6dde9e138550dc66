package app

import (
	"context"

	"github.com/dshills/nimbus/internal/config"
	"github.com/dshills/nimbus/internal/float"
	"github.com/dshills/nimbus/internal/notify"
)

// TopicConfigChanged is published after the configuration file has
// been reloaded. The payload is the new config.Config.
const TopicConfigChanged = notify.Topic("config.changed")

// onConfigReload applies a reloaded configuration. Broken files are
// logged and the previous configuration stays in effect.
func (app *Application) onConfigReload(cfg config.Config, err error) {
	if err != nil {
		app.logger.Warn("config reload failed, keeping previous settings: %v", err)
		return
	}

	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	// A command line log level override outlives reloads.
	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}
	app.manager.SetDefaults(optionsFromConfig(cfg.Float))

	if perr := app.bus.Publish(context.Background(), TopicConfigChanged, cfg); perr != nil {
		app.logger.Warn("publish config change: %v", perr)
	}
	app.logger.Info("configuration reloaded")
}

// optionsFromConfig maps the float configuration section onto manager
// defaults. Values that would make the float unusable keep their
// built-in defaults.
func optionsFromConfig(fs config.FloatSection) float.Options {
	opts := float.DefaultOptions()
	opts.AutoHide = fs.AutoHide
	opts.PreferTop = fs.PreferTop
	opts.MaxHeight = fs.MaxHeight
	if fs.MaxWidth > 0 {
		opts.MaxWidth = fs.MaxWidth
	}
	if fs.Highlight != "" {
		opts.Highlight = fs.Highlight
	}
	opts.BorderHighlight = fs.BorderHighlight
	if len(fs.Modes) > 0 {
		opts.Modes = append([]string(nil), fs.Modes...)
	}
	return opts
}
