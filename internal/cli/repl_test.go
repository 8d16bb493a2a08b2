package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
)

// newTestREPL builds a colorless REPL over the real strategies.
func newTestREPL(t *testing.T, input string) (*REPL, *bytes.Buffer) {
	t.Helper()
	noColor(t)
	useMockSpinner(t)

	r := NewREPL(arith.NewDefaultFactory(), REPLConfig{Timeout: 10 * time.Second})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	return r, &out
}

func TestNewREPLDefaults(t *testing.T) {
	noColor(t)

	tests := []struct {
		algo string
		want string
	}{
		{"", "accumulate"},
		{"all", "accumulate"},
		{"partial", "partial"},
		{"nope", "accumulate"},
	}
	for _, tt := range tests {
		r := NewREPL(arith.NewDefaultFactory(), REPLConfig{DefaultAlgo: tt.algo})
		if r.currentAlgo != tt.want {
			t.Errorf("DefaultAlgo %q -> %q, want %q", tt.algo, r.currentAlgo, tt.want)
		}
		if r.config.Timeout <= 0 {
			t.Errorf("timeout not defaulted: %v", r.config.Timeout)
		}
	}
}

func TestREPLMultiply(t *testing.T) {
	r, out := newTestREPL(t, "")
	if !r.processCommand("mul 99999999 99999999") {
		t.Fatal("mul should not end the session")
	}
	if !strings.Contains(out.String(), "= 9999999800000001") {
		t.Errorf("product missing:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Digits:      16") {
		t.Errorf("digit count missing:\n%s", out.String())
	}
}

func TestREPLAdd(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.processCommand("add 999 1")
	if !strings.Contains(out.String(), "= 1000") {
		t.Errorf("sum missing:\n%s", out.String())
	}
}

func TestREPLBareOperands(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.processCommand("12 12")
	if !strings.Contains(out.String(), "= 144") {
		t.Errorf("bare operands should multiply:\n%s", out.String())
	}
}

func TestREPLPromptsForMissingOperands(t *testing.T) {
	r, out := newTestREPL(t, "25\n4\n")
	r.processCommand("mul")
	s := out.String()
	if !strings.Contains(s, "a> ") || !strings.Contains(s, "b> ") {
		t.Errorf("expected prompts for both operands:\n%s", s)
	}
	if !strings.Contains(s, "= 100") {
		t.Errorf("product missing:\n%s", s)
	}

	r, out = newTestREPL(t, "5\n")
	r.processCommand("add 7")
	s = out.String()
	if strings.Contains(s, "a> ") || !strings.Contains(s, "b> ") {
		t.Errorf("expected a prompt for b only:\n%s", s)
	}
	if !strings.Contains(s, "= 12") {
		t.Errorf("sum missing:\n%s", s)
	}
}

func TestREPLInvalidNumeral(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.processCommand("mul 12a3 5")
	if !strings.Contains(out.String(), "Operand a:") || !strings.Contains(out.String(), "'a'") {
		t.Errorf("expected the offending character to be named:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Result:") {
		t.Errorf("no result expected:\n%s", out.String())
	}
}

func TestREPLTooManyOperands(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.processCommand("mul 1 2 3")
	if !strings.Contains(out.String(), "Expected two operands, got 3") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestREPLCalculationError(t *testing.T) {
	noColor(t)
	useMockSpinner(t)
	factory := arith.NewTestFactory(map[string]arith.Calculator{
		"broken": &arith.MockCalculator{Err: errors.New("exploded")},
	})
	r := NewREPL(factory, REPLConfig{})
	var out bytes.Buffer
	r.SetOutput(&out)

	r.processCommand("mul 2 3")
	if !strings.Contains(out.String(), "Error: exploded") {
		t.Errorf("error missing:\n%s", out.String())
	}
}

func TestREPLCompare(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.processCommand("compare 123456789 987654321")
	s := out.String()
	for _, name := range []string{"accumulate", "partial", "stdlib"} {
		if !strings.Contains(s, name) {
			t.Errorf("compare output missing %s:\n%s", name, s)
		}
	}
	if strings.Contains(s, "INCONSISTENT") {
		t.Errorf("strategies disagreed:\n%s", s)
	}
}

func TestREPLCompareDetectsMismatch(t *testing.T) {
	noColor(t)
	fixed := func(v string) *arith.MockCalculator {
		return &arith.MockCalculator{Fn: func(context.Context, arith.Operation, digits.BigInt, digits.BigInt) (arith.Result, error) {
			return arith.Result{Value: digits.MustParse(v)}, nil
		}}
	}
	r := NewREPL(arith.NewTestFactory(map[string]arith.Calculator{
		"a": fixed("6"),
		"b": fixed("7"),
	}), REPLConfig{})
	var out bytes.Buffer
	r.SetOutput(&out)

	r.processCommand("compare 2 3")
	if !strings.Contains(out.String(), "INCONSISTENT") {
		t.Errorf("mismatch not flagged:\n%s", out.String())
	}
}

func TestREPLAlgoAndList(t *testing.T) {
	r, out := newTestREPL(t, "")

	r.processCommand("algo partial")
	if r.currentAlgo != "partial" {
		t.Fatalf("currentAlgo = %q", r.currentAlgo)
	}
	if !strings.Contains(out.String(), "Algorithm changed to: Partial-Product List") {
		t.Errorf("change notice missing:\n%s", out.String())
	}

	out.Reset()
	r.processCommand("algo bogus")
	if r.currentAlgo != "partial" || !strings.Contains(out.String(), "Unknown algorithm: bogus") {
		t.Errorf("bad algo handling:\n%s", out.String())
	}

	out.Reset()
	r.processCommand("algo")
	if !strings.Contains(out.String(), "Usage: algo <name>") {
		t.Errorf("usage missing:\n%s", out.String())
	}

	out.Reset()
	r.processCommand("list")
	if !strings.Contains(out.String(), "► partial") {
		t.Errorf("current algorithm not marked:\n%s", out.String())
	}
}

func TestREPLStatus(t *testing.T) {
	r, out := newTestREPL(t, "")
	r.config.Options.MemoryLimit = 4096
	r.processCommand("status")
	s := out.String()
	for _, want := range []string{"Algorithm:    accumulate", "Timeout:      10s", "Memory limit: 4.00 KB"} {
		if !strings.Contains(s, want) {
			t.Errorf("status missing %q:\n%s", want, s)
		}
	}
}

func TestREPLProcessCommand(t *testing.T) {
	r, out := newTestREPL(t, "")

	if !r.processCommand("help") || !strings.Contains(out.String(), "Available commands") {
		t.Error("help should print commands and continue")
	}
	if !r.processCommand("   ") {
		t.Error("blank input should continue")
	}
	out.Reset()
	if !r.processCommand("frobnicate") || !strings.Contains(out.String(), "Unknown command: frobnicate") {
		t.Errorf("unknown command handling:\n%s", out.String())
	}
	for _, cmd := range []string{"exit", "quit", "q", "EXIT"} {
		if r.processCommand(cmd) {
			t.Errorf("%q should end the session", cmd)
		}
	}
}

func TestREPLStart(t *testing.T) {
	r, out := newTestREPL(t, "add 1 1\n\nexit\nmul 3 3\n")
	r.Start()
	s := out.String()
	if !strings.Contains(s, "Digit Chain Calculator") {
		t.Error("banner missing")
	}
	if !strings.Contains(s, "= 2\n") {
		t.Errorf("first command not run:\n%s", s)
	}
	if strings.Contains(s, "= 9\n") {
		t.Errorf("commands after exit were run:\n%s", s)
	}
}

func TestREPLStartEOF(t *testing.T) {
	r, out := newTestREPL(t, "add 2 2")
	r.Start()
	s := out.String()
	if !strings.Contains(s, "= 4\n") {
		t.Errorf("final line without newline not run:\n%s", s)
	}
	if !strings.HasSuffix(s, "Goodbye!\n") {
		t.Errorf("expected goodbye at end of input:\n%s", s)
	}
}
