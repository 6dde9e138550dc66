// Package main is the entry point for the nimbus daemon.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/nimbus/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-signals
		application.Shutdown()
	}()

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

func parseFlags() app.Options {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.Addr, "addr", "", "Address of a running Neovim (host:port or socket path)")
	flag.StringVar(&opts.Addr, "a", "", "Address of a running Neovim (shorthand)")
	flag.BoolVar(&opts.Embed, "embed", false, "Start an embedded headless Neovim")
	flag.StringVar(&opts.NvimPath, "nvim", "", "Neovim executable for embedded mode")
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Nimbus - cursor anchored float windows for Neovim\n\n")
		fmt.Fprintf(os.Stderr, "Usage: nimbus [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  nimbus                        Attach via $NVIM (inside :terminal)\n")
		fmt.Fprintf(os.Stderr, "  nimbus -a /tmp/nvim.sock      Attach to a listening instance\n")
		fmt.Fprintf(os.Stderr, "  nimbus -a 127.0.0.1:7450      Attach over TCP\n")
		fmt.Fprintf(os.Stderr, "  nimbus --embed                Start a headless Neovim (development)\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Nimbus %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level; empty means use the configuration file value
	switch opts.LogLevel {
	case "", "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath()
	}

	return opts
}

// defaultConfigPath returns the user level configuration file when it
// exists, otherwise empty to run on built-in defaults.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "nimbus", "nimbus.toml")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
