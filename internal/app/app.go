// Package app wires configuration, logging, metrics and the search
// orchestration together and dispatches to the one-shot or interactive mode.
package app

import (
	"context"
	"errors"
	"flag"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/mlemay/eventfind/internal/backend"
	"github.com/mlemay/eventfind/internal/cli"
	"github.com/mlemay/eventfind/internal/config"
	"github.com/mlemay/eventfind/internal/logging"
	"github.com/mlemay/eventfind/internal/metrics"
	"github.com/mlemay/eventfind/internal/query"
	"github.com/mlemay/eventfind/internal/tui"
	"github.com/mlemay/eventfind/internal/ui"
)

// Application represents the eventfind application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	logger logging.Logger
	finder query.Finder
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFinder substitutes the backend client, used by tests to avoid real
// network calls.
func WithFinder(f query.Finder) AppOption {
	return func(a *Application) { a.finder = f }
}

// WithLogger substitutes the default logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "eventfind"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// interactive reports whether the interactive TUI will run. Without an
// interest on the command line there is nothing to run one shot, so the
// interactive mode is the default.
func (a *Application) interactive() bool {
	return a.Config.TUI || a.Config.Interest == ""
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	interactive := a.interactive()

	logger := a.logger
	if logger == nil {
		if interactive {
			// The alternate screen owns the terminal in TUI mode; console
			// logging would scribble over it.
			logger = logging.Nop{}
		} else {
			logger = logging.NewDefaultLogger()
		}
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	m := metrics.NewMetrics()
	if a.Config.MetricsAddr != "" {
		go m.Serve(ctx, a.Config.MetricsAddr, logger)
	}

	finder := a.finder
	if finder == nil {
		httpClient := &http.Client{Timeout: a.Config.Timeout}
		finder = backend.NewClient(httpClient, a.Config.BackendURL, logger)
	}

	orchestrator := query.NewOrchestrator(finder, m, logger, nil)

	if interactive {
		return tui.Run(ctx, orchestrator, a.Config, Version)
	}
	return cli.Run(ctx, orchestrator, a.Config.Interest, a.Config.Location, out, a.ErrWriter)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
