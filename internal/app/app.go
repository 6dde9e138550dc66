package app

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/nimbus/internal/config"
	"github.com/dshills/nimbus/internal/float"
	"github.com/dshills/nimbus/internal/host"
	"github.com/dshills/nimbus/internal/host/backend"
	"github.com/dshills/nimbus/internal/notify"
)

// Options configures the application.
type Options struct {
	// Addr is the address of a running Neovim instance, either a TCP
	// host:port or the path of a unix socket. When empty the NVIM
	// environment variable is used, which Neovim sets for processes it
	// spawns.
	Addr string

	// Embed starts a headless child Neovim instead of attaching to a
	// running one. Mostly useful for development.
	Embed bool

	// NvimPath overrides the executable used in embedded mode.
	NvimPath string

	// ConfigPath is the path to the TOML configuration file. Empty
	// means built-in defaults and no file watching.
	ConfigPath string

	// LogLevel overrides the configured log level (debug, info, warn,
	// error). Empty means use the configuration file value.
	LogLevel string

	// LogOutput overrides the log destination. Defaults to the file
	// named in the configuration, or stderr.
	LogOutput io.Writer
}

// Application owns the component graph of the daemon.
type Application struct {
	mu   sync.RWMutex
	opts Options

	cfg     config.Config
	logger  *Logger
	logFile *os.File
	bus     notify.Bus
	tracker *host.Tracker
	nvim    *backend.Nvim
	manager *float.Manager
	watcher *config.Watcher

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New creates an application and initializes all components. The
// returned application is not yet serving; call Run.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.shutdown()
		return nil, err
	}

	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Configuration - file over defaults
	app.cfg = config.DefaultConfig()
	if app.opts.ConfigPath != "" {
		cfg, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		app.cfg = cfg
	}

	// 2. Logger - level from flag, falling back to the config file
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(app.cfg.Log.Level)
	if app.opts.LogLevel != "" {
		logCfg.Level = ParseLogLevel(app.opts.LogLevel)
	}
	switch {
	case app.opts.LogOutput != nil:
		logCfg.Output = app.opts.LogOutput
	case app.cfg.Log.File != "":
		f, err := os.OpenFile(app.cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return &InitError{Component: "log file", Err: err}
		}
		app.logFile = f
		logCfg.Output = f
	}
	app.logger = NewLogger(logCfg)

	// 3. Event bus - messaging between host events and the manager
	app.bus = notify.NewBus(notify.WithPanicHandler(func(n notify.Notification, recovered any, stack []byte) {
		app.logger.Error("handler panic on %s: %v\n%s", n.Topic, recovered, stack)
	}))

	// 4. Mode tracker - mirrors host buffer and mode state
	app.tracker = host.NewTracker()
	if err := app.tracker.Attach(app.bus); err != nil {
		return &InitError{Component: "tracker", Err: err}
	}

	// 5. Neovim connection
	var err error
	if app.opts.Embed {
		app.nvim, err = backend.Embed(app.opts.NvimPath)
	} else {
		addr := app.opts.Addr
		if addr == "" {
			addr = os.Getenv("NVIM")
		}
		if addr == "" {
			return &InitError{Component: "connection", Err: ErrNoAddress}
		}
		app.nvim, err = backend.Dial(addr)
	}
	if err != nil {
		return &InitError{Component: "connection", Err: err}
	}

	// 6. Float manager
	app.manager = float.NewManager(backend.NewRenderer(app.nvim), app.bus,
		float.WithTracker(app.tracker),
		float.WithErrorSink(&hostSink{nvim: app.nvim, logger: app.logger.WithComponent("float")}),
		float.WithDefaults(optionsFromConfig(app.cfg.Float)),
		float.WithDebounce(time.Duration(app.cfg.Float.DebounceMS)*time.Millisecond),
	)

	// 7. Configuration watcher - live reload
	if app.opts.ConfigPath != "" {
		app.watcher, err = config.NewWatcher(app.opts.ConfigPath, app.onConfigReload)
		if err != nil {
			return &InitError{Component: "config watcher", Err: err}
		}
	}

	return nil
}

// Run attaches the RPC surface to Neovim and blocks until Shutdown is
// called or the connection drops.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.RLock()
	nv := app.nvim
	watcher := app.watcher
	app.mu.RUnlock()
	if nv == nil {
		return ErrShutdown
	}

	// The RPC read loop must be running before anything below waits on
	// a response from the host.
	serveErr := make(chan error, 1)
	go func() { serveErr <- nv.Serve() }()

	if err := nv.BindAPI(app.manager); err != nil {
		return &InitError{Component: "rpc handlers", Err: err}
	}
	if err := nv.BindEvents(app.bus); err != nil {
		return &InitError{Component: "autocmds", Err: err}
	}

	if watcher != nil {
		if err := watcher.Start(); err != nil {
			app.logger.Warn("config watching disabled: %v", err)
		}
	}

	app.logger.Info("attached to neovim on channel %d", nv.Channel())

	select {
	case <-app.done:
		return nil
	case err := <-serveErr:
		select {
		case <-app.done:
			// Shutdown closed the connection under Serve.
			return nil
		default:
		}
		if err != nil {
			return fmt.Errorf("connection lost: %w", err)
		}
		return nil
	}
}

// Shutdown stops the application and releases the Neovim connection.
// Safe to call multiple times and from any goroutine.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() { close(app.done) })
	app.shutdown()
}

// shutdown tears down components in reverse bootstrap order.
func (app *Application) shutdown() {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.watcher != nil {
		_ = app.watcher.Stop()
		app.watcher = nil
	}
	if app.manager != nil {
		app.manager.Dispose()
	}
	if app.tracker != nil {
		app.tracker.Close()
	}
	if app.nvim != nil {
		if err := app.nvim.Close(); err != nil && app.logger != nil {
			app.logger.Debug("close connection: %v", err)
		}
		app.nvim = nil
	}
	if app.bus != nil {
		app.bus.Clear()
	}
	if app.logFile != nil {
		_ = app.logFile.Close()
		app.logFile = nil
	}
}

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Bus returns the event bus.
func (app *Application) Bus() notify.Bus {
	return app.bus
}

// Manager returns the float manager.
func (app *Application) Manager() *float.Manager {
	return app.manager
}

// Config returns the current configuration.
func (app *Application) Config() config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.cfg
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// hostSink reports float failures to the attached Neovim instance and
// mirrors them into the application log.
type hostSink struct {
	nvim   *backend.Nvim
	logger *Logger
}

var _ host.ErrorSink = (*hostSink)(nil)

func (s *hostSink) Report(err error) {
	if err == nil {
		return
	}
	s.logger.Error("%v", err)
	s.nvim.Report(err)
}
