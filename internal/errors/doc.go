// Package apperrors defines the application's error types and exit codes.
//
// Every type that carries a cause implements Unwrap, and helpers wrap with
// %w, so callers inspect failures with errors.Is and errors.As rather than
// by comparing messages.
package apperrors
