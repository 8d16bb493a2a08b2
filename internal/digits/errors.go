package digits

import (
	"errors"
	"fmt"

	apperrors "github.com/agbru/digitcalc/internal/errors"
)

// Sentinel errors matched by the concrete error types below.
var (
	ErrInvalidDigit      = errors.New("invalid digit")
	ErrInvalidNumeral    = errors.New("invalid numeral")
	ErrAllocationFailure = errors.New("allocation failure")
)

// InvalidDigitError is the panic value raised when a digit outside [0, 9] is
// produced internally.
type InvalidDigitError struct {
	Value int
}

func (e *InvalidDigitError) Error() string {
	return fmt.Sprintf("invalid digit %d: must be in [0, 9]", e.Value)
}

func (e *InvalidDigitError) Is(target error) bool { return target == ErrInvalidDigit }

// NumeralError reports the first character of a numeral that is not an
// ASCII decimal digit. Pos is the byte offset of Char in the input, or -1
// for an empty input.
type NumeralError struct {
	Char rune
	Pos  int
}

func (e *NumeralError) Error() string {
	if e.Pos < 0 {
		return "invalid numeral: empty string"
	}
	return fmt.Sprintf("invalid numeral: unexpected character %q at position %d", e.Char, e.Pos)
}

func (e *NumeralError) Is(target error) bool { return target == ErrInvalidNumeral }

// AllocationError reports a digit buffer request refused by an Allocator.
// Sizes are in bytes. It matches ErrAllocationFailure and unwraps to an
// apperrors.MemoryError.
type AllocationError struct {
	Requested uint64
	InUse     uint64
	Limit     uint64
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocation failure: %d bytes requested with %d in use exceeds the %d byte limit",
		e.Requested, e.InUse, e.Limit)
}

func (e *AllocationError) Is(target error) bool { return target == ErrAllocationFailure }

func (e *AllocationError) Unwrap() error {
	var available uint64
	if e.Limit > e.InUse {
		available = e.Limit - e.InUse
	}
	return apperrors.MemoryError{Requested: e.Requested, Available: available, Limit: e.Limit}
}
