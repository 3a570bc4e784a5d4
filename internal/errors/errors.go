package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess        = 0   // Indicates successful execution.
	ExitErrorGeneric   = 1   // Indicates a generic error.
	ExitErrorTransport = 2   // Indicates the backend could not be reached.
	ExitErrorProtocol  = 3   // Indicates the backend answered with a non-success status.
	ExitErrorConfig    = 4   // Indicates a configuration error.
	ExitErrorCanceled  = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
//
// Returns:
//   - string: The error message string.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
// It allows for the creation of configuration-specific errors with dynamic
// content.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an input validation failure caught before any
// I/O is performed. It identifies which field failed validation and carries
// the exact message that is surfaced to the user.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure in user-facing terms.
	Message string
}

// Error returns the user-facing validation message.
//
// Returns:
//   - string: The error message string.
func (e ValidationError) Error() string { return e.Message }

// TransportError represents a request that never received a response: a
// connection failure, a DNS error, or a transport-level timeout. The
// underlying cause is preserved for diagnostics.
type TransportError struct {
	// Cause is the underlying error returned by the HTTP transport.
	Cause error
}

// Error returns a message describing the transport failure.
//
// Returns:
//   - string: The error message string.
func (e TransportError) Error() string {
	return fmt.Sprintf("could not reach the event search service: %v", e.Cause)
}

// Unwrap returns the original transport error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
//
// Returns:
//   - error: The underlying cause of the TransportError.
func (e TransportError) Unwrap() error { return e.Cause }

// ProtocolError represents a response whose HTTP status is outside the
// success range. Message holds the best-effort human-readable explanation
// extracted from the response body, or a fallback containing the status code
// when the body carried no parseable error.
type ProtocolError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Message is the extracted or fallback error text.
	Message string
}

// Error returns the extracted or fallback error text.
//
// Returns:
//   - string: The error message string.
func (e ProtocolError) Error() string { return e.Message }

// LogicalError represents a response that succeeded at the transport layer
// (2xx status) while signaling a failure in its payload. The backend reports
// these through a non-empty error field in an otherwise well-formed envelope.
type LogicalError struct {
	// Message is the error text carried in the response payload.
	Message string
}

// Error returns the error text carried in the response payload.
//
// Returns:
//   - string: The error message string.
func (e LogicalError) Error() string { return e.Message }

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: true if the error is a context error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCodeFor maps an error onto the process exit code used by the one-shot
// CLI mode. Context cancellation takes priority so an interrupted query exits
// with the conventional 130.
//
// Parameters:
//   - err: The error to map. May be nil.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if IsContextError(err) {
		return ExitErrorCanceled
	}

	var (
		configErr    ConfigError
		transportErr TransportError
		protocolErr  ProtocolError
	)
	switch {
	case errors.As(err, &configErr):
		return ExitErrorConfig
	case errors.As(err, &transportErr):
		return ExitErrorTransport
	case errors.As(err, &protocolErr):
		return ExitErrorProtocol
	default:
		return ExitErrorGeneric
	}
}
