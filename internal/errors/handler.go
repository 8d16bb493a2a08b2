package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies terminal color codes. It lets this package print
// colored status lines without importing the ui package.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider emits no color codes.
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleCalculationError prints a status line describing err and returns the
// matching exit code. Timeouts, cancellations and memory-limit failures each
// get their own message; anything else is reported as a generic failure.
// A nil colors falls back to DefaultColorProvider.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	var memErr MemoryError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", suffix)
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), suffix, colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &memErr):
		fmt.Fprintf(out, "%sStatus: Failure (Memory limit).%s A buffer of %d bytes was refused with %d bytes left under the %d byte limit%s.\n",
			colors.Red(), colors.Reset(), memErr.Requested, memErr.Available, memErr.Limit, suffix)
		return ExitErrorMemory
	default:
		fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
		return ExitErrorGeneric
	}
}
