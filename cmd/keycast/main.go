// Package main is the entry point for the keycast launcher.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/kmikiy/keycast/internal/app"
	"github.com/kmikiy/keycast/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, showVersion, listBindings := parseFlags()

	if showVersion {
		fmt.Printf("keycast %s (%s)\n", version, commit)
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if listBindings {
		for _, seq := range application.Bindings() {
			fmt.Println(seq)
		}
		return 0
	}

	terminal, err := term.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	application.SetBackend(terminal)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool, bool) {
	var opts app.Options
	var showVersion, listBindings bool

	flag.StringVar(&opts.ConfigPath, "config", defaultConfigPath(), "path to the configuration file")
	flag.StringVar(&opts.LogLevel, "log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.BoolVar(&opts.Watch, "watch", false, "reload bindings when the config file changes")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.BoolVar(&listBindings, "list", false, "print registered bindings and exit")
	flag.Parse()

	return opts, showVersion, listBindings
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "keycast", "keycast.toml")
	}
	return "keycast.toml"
}
