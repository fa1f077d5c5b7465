package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"

	crdberrors "github.com/cockroachdb/errors"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a product mismatch between algorithms.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ErrMalformedInput is matched (via errors.Is) by every InputError. Callers
// that only need to know whether an operand was rejected compare against it.
var ErrMalformedInput = errors.New("malformed decimal input")

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
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

// InputError reports a decimal operand that cannot be multiplied: either the
// string is empty or it holds a character outside '0'..'9'. It is the only
// error a multiplication entry point returns for well-formed calls.
type InputError struct {
	// Operand is the rejected value, shortened for display when long.
	Operand string
	// Position is the byte offset of the offending character, or -1 for an
	// empty operand.
	Position int
	// Char is the offending byte. Zero when Position is -1.
	Char byte
}

// Error returns a description naming the offending character and offset.
func (e *InputError) Error() string {
	if e.Position < 0 {
		return "malformed decimal input: empty operand"
	}
	return fmt.Sprintf("malformed decimal input %q: invalid character %q at offset %d", e.Operand, e.Char, e.Position)
}

// Is reports whether target is ErrMalformedInput.
func (e *InputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewInputError builds an InputError for s. Operands longer than 40 bytes are
// clipped around the offending position so the message stays readable.
func NewInputError(s string, pos int) *InputError {
	e := &InputError{Operand: s, Position: pos}
	if pos >= 0 && pos < len(s) {
		e.Char = s[pos]
	}
	if len(s) > 40 {
		lo := max(pos-20, 0)
		hi := min(lo+40, len(s))
		e.Operand = "..." + s[lo:hi] + "..."
	}
	return e
}

// IsInputError reports whether err carries a malformed-operand failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrMalformedInput)
}

// CalculationError encapsulates a multiplication failure while preserving the
// original cause. The orchestration layer uses it to report a recovered engine
// defect without losing the underlying error chain.
type CalculationError struct {
	// Algorithm is the registry name of the failing multiplier.
	Algorithm string
	// Cause is the underlying error that triggered this calculation error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e CalculationError) Error() string {
	if e.Algorithm == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %v", e.Algorithm, e.Cause)
}

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents a run that exceeded its deadline. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was considered timed out.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context and a stack trace. The
// result still matches the original under errors.Is() and errors.As().
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
	return crdberrors.Wrapf(err, format, args...)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
