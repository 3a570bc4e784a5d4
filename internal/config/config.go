// Package config handles command-line flag parsing and environment variable
// overrides for the event finder client.
//
// Resolution chain (highest priority first):
//  1. CLI flags (--backend-url, --location, ...)
//  2. Environment variables (EVENTFIND_BACKEND_URL, etc.)
//  3. Values from a .env file in the working directory
//  4. Static defaults in this file
package config

import (
	"flag"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/joho/godotenv"

	apperrors "github.com/mlemay/eventfind/internal/errors"
)

// EnvPrefix is the prefix for all environment variables read by the client.
const EnvPrefix = "EVENTFIND_"

// DefaultLocation is the location submitted when the user leaves the
// location input blank. It matches the default the event search service
// itself applies.
const DefaultLocation = "Blaine, MN"

// DefaultBackendURL is the base URL of the event search service.
const DefaultBackendURL = "http://localhost:8000"

// AppConfig holds the complete runtime configuration of the client.
type AppConfig struct {
	// BackendURL is the base URL of the event search service. The
	// /find-events path is appended by the backend client.
	BackendURL string
	// Interest is the free-text event interest for one-shot CLI mode.
	// When non-empty the client runs a single query and exits instead of
	// starting the interactive TUI.
	Interest string
	// Location is the target location (city, state).
	Location string
	// Timeout is the transport-level request timeout. Zero means no
	// client-side timeout: the request runs until the transport resolves
	// or rejects it.
	Timeout time.Duration
	// TUI forces the interactive mode even when --interest is given.
	TUI bool
	// MetricsAddr, when non-empty, starts a debug HTTP listener serving
	// Prometheus metrics on /metrics.
	MetricsAddr string
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor disables all color output.
	NoColor bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// .env values and environment variable overrides for flags that were not
// explicitly set.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: Destination for usage and error output.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when --help was requested, or a ConfigError-style
//     error for invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{
		BackendURL: DefaultBackendURL,
		Location:   DefaultLocation,
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Base URL of the event search service")
	fs.StringVar(&cfg.Interest, "interest", "", "Event interest for one-shot mode (runs a single query and exits)")
	fs.StringVar(&cfg.Interest, "i", "", "Shorthand for --interest")
	fs.StringVar(&cfg.Location, "location", cfg.Location, "Target location (city, state)")
	fs.StringVar(&cfg.Location, "l", cfg.Location, "Shorthand for --location")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Request timeout (0 = wait for the transport to resolve)")
	fs.BoolVar(&cfg.TUI, "tui", false, "Force the interactive TUI even when --interest is given")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Address for the debug /metrics listener (disabled when empty)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable color output")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Finds local events matching a free-text interest via the event search service.\n")
		fmt.Fprintf(errWriter, "Without --interest an interactive terminal UI is started.\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// .env values become plain environment variables, so they participate
	// in the override chain below without extra plumbing. A missing file
	// is not an error.
	_ = godotenv.Load()

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// validate checks the resolved configuration for values the client cannot
// work with.
func validate(cfg AppConfig) error {
	u, err := url.Parse(cfg.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.NewConfigError("invalid backend URL %q: must be an absolute http(s) URL", cfg.BackendURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return apperrors.NewConfigError("invalid backend URL scheme %q: must be http or https", u.Scheme)
	}
	if cfg.Timeout < 0 {
		return apperrors.NewConfigError("invalid timeout %s: must not be negative", cfg.Timeout)
	}
	return nil
}
