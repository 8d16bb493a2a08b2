package arith

import (
	"context"
	"sort"

	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
)

// MockCalculator is a Calculator for tests in other packages. Fn, when set,
// takes precedence over Result and Err.
type MockCalculator struct {
	DisplayName string
	Result      Result
	Err         error
	Fn          func(ctx context.Context, op Operation, a, b digits.BigInt) (Result, error)
}

func (m *MockCalculator) Name() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return "mock"
}

func (m *MockCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, op Operation, a, b digits.BigInt, _ Options) (Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, op, a, b)
	}
	if progressChan != nil {
		progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is a CalculatorFactory over a fixed set of calculators.
type TestFactory struct {
	calculators map[string]Calculator
}

func NewTestFactory(calculators map[string]Calculator) *TestFactory {
	if calculators == nil {
		calculators = make(map[string]Calculator)
	}
	return &TestFactory{calculators: calculators}
}

func (f *TestFactory) Create(name string) (Calculator, error) { return f.Get(name) }

func (f *TestFactory) Get(name string) (Calculator, error) {
	calc, ok := f.calculators[name]
	if !ok {
		return nil, &UnknownCalculatorError{Name: name}
	}
	return calc, nil
}

func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.calculators))
	for name := range f.calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op; calculators are fixed at construction.
func (f *TestFactory) Register(string, func() coreCalculator) error { return nil }

func (f *TestFactory) GetAll() map[string]Calculator {
	out := make(map[string]Calculator, len(f.calculators))
	for k, v := range f.calculators {
		out[k] = v
	}
	return out
}
