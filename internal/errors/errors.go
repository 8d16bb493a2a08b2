package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Unclassified failure.
	ExitErrorTimeout  = 2   // The calculation hit its time limit.
	ExitErrorMismatch = 3   // Strategies disagreed on the result.
	ExitErrorConfig   = 4   // Invalid flags, environment or operands.
	ExitErrorMemory   = 5   // A digit buffer request exceeded the memory limit.
	ExitErrorCanceled = 130 // Interrupted (SIGINT convention).
)

// ConfigError reports invalid user configuration: flags, environment
// overrides or operands that cannot be used.
type ConfigError struct {
	Message string
}

// Error implements the error interface.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// MemoryError reports a memory request that a configured limit refused.
// All values are in bytes.
type MemoryError struct {
	Requested uint64
	Available uint64
	Limit     uint64
}

// Error implements the error interface.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// ServerError reports a failure of the HTTP server itself, such as a port
// that cannot be bound or a shutdown that did not complete.
type ServerError struct {
	Message string
	Cause   error
}

func (e ServerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e ServerError) Unwrap() error { return e.Cause }

// NewServerError builds a ServerError. cause may be nil.
func NewServerError(message string, cause error) error {
	return ServerError{Message: message, Cause: cause}
}

// WrapError prefixes err with a formatted context message, keeping err
// reachable through errors.Is and errors.As. It returns nil for a nil err.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from context cancellation or an
// expired deadline.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
