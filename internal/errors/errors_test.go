package apperrors_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	codes := map[string]int{
		"success":  apperrors.ExitSuccess,
		"generic":  apperrors.ExitErrorGeneric,
		"timeout":  apperrors.ExitErrorTimeout,
		"mismatch": apperrors.ExitErrorMismatch,
		"config":   apperrors.ExitErrorConfig,
		"memory":   apperrors.ExitErrorMemory,
		"canceled": apperrors.ExitErrorCanceled,
	}
	want := map[string]int{
		"success": 0, "generic": 1, "timeout": 2, "mismatch": 3,
		"config": 4, "memory": 5, "canceled": 130,
	}
	for name, code := range codes {
		if code != want[name] {
			t.Errorf("%s exit code = %d, want %d", name, code, want[name])
		}
	}
}

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := apperrors.NewConfigError("unrecognized algorithm: '%s'", "quantum")
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("%T is not a ConfigError", err)
	}
	if cfgErr.Error() != "unrecognized algorithm: 'quantum'" {
		t.Errorf("message = %q", cfgErr.Error())
	}
}

func TestWrapErrorKeepsNumeralError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantMsg string
		wantPos int
	}{
		{"letter", "12x4", `operand a: invalid numeral: unexpected character 'x' at position 2`, 2},
		{"sign", "-5", `operand a: invalid numeral: unexpected character '-' at position 0`, 0},
		{"empty", "", "operand a: invalid numeral: empty string", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, parseErr := digits.Parse(tt.input)
			err := apperrors.WrapError(parseErr, "operand %c", 'a')
			if err.Error() != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Error(), tt.wantMsg)
			}
			if !errors.Is(err, digits.ErrInvalidNumeral) {
				t.Error("wrapped error no longer matches ErrInvalidNumeral")
			}
			var numErr *digits.NumeralError
			if !errors.As(err, &numErr) || numErr.Pos != tt.wantPos {
				t.Errorf("NumeralError = %+v, want Pos %d", numErr, tt.wantPos)
			}
		})
	}

	if apperrors.WrapError(nil, "operand b") != nil {
		t.Error("WrapError(nil) should be nil")
	}
}

func TestAllocationFailureIsMemoryError(t *testing.T) {
	t.Parallel()

	// A 30-digit operand fits under 100 bytes, the buffers for its square do not.
	x := digits.With(digits.NewTracker(nil, 100))
	a, err := x.Parse(strings.Repeat("9", 30))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = x.Mul(a, a)
	if !errors.Is(err, digits.ErrAllocationFailure) {
		t.Fatalf("Mul error = %v, want an allocation failure", err)
	}

	wrapped := apperrors.WrapError(err, "multiply")
	var memErr apperrors.MemoryError
	if !errors.As(wrapped, &memErr) {
		t.Fatalf("%v does not unwrap to MemoryError", wrapped)
	}
	if memErr.Limit != 100 || memErr.Requested == 0 || memErr.Available >= memErr.Requested {
		t.Errorf("MemoryError = %+v", memErr)
	}
	if !strings.Contains(memErr.Error(), "limit: 100") {
		t.Errorf("message = %q", memErr.Error())
	}
}

func TestServerError(t *testing.T) {
	t.Parallel()

	bindErr := errors.New("listen tcp :8080: bind: address already in use")
	err := apperrors.NewServerError("server failed to start", bindErr)
	if err.Error() != "server failed to start: listen tcp :8080: bind: address already in use" {
		t.Errorf("message = %q", err.Error())
	}
	if !errors.Is(err, bindErr) {
		t.Error("cause not reachable")
	}

	bare := apperrors.NewServerError("failed to gracefully shutdown server", nil)
	if bare.Error() != "failed to gracefully shutdown server" {
		t.Errorf("message = %q", bare.Error())
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{fmt.Errorf("multiply: %w", context.DeadlineExceeded), true},
		{digits.ErrAllocationFailure, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := apperrors.IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
