package arith

import (
	"fmt"
	"sort"
	"sync"
)

// CalculatorFactory resolves strategies by their short name ("accumulate",
// "partial", ...).
type CalculatorFactory interface {
	Create(name string) (Calculator, error)
	Get(name string) (Calculator, error)
	List() []string
	Register(name string, creator func() coreCalculator) error
	GetAll() map[string]Calculator
}

// DefaultFactory is a concurrency-safe CalculatorFactory that caches the
// Calculator built for each name.
type DefaultFactory struct {
	mu          sync.RWMutex
	creators    map[string]func() coreCalculator
	calculators map[string]Calculator
}

// NewDefaultFactory returns a factory with the built-in strategies:
//
//   - "accumulate": two-buffer schoolbook multiplication
//   - "partial": partial-product list baseline
//   - "stdlib": math/big reference
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:    make(map[string]func() coreCalculator),
		calculators: make(map[string]Calculator),
	}
	_ = f.Register("accumulate", func() coreCalculator { return &Accumulate{} })
	_ = f.Register("partial", func() coreCalculator { return &PartialList{} })
	_ = f.Register("stdlib", func() coreCalculator { return &StdLib{} })
	return f
}

// Register adds or replaces a strategy. A replaced strategy's cached
// Calculator is dropped.
func (f *DefaultFactory) Register(name string, creator func() coreCalculator) error {
	if name == "" || creator == nil {
		return fmt.Errorf("arith: invalid registration for %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.calculators, name)
	return nil
}

// Create builds a fresh, uncached Calculator.
func (f *DefaultFactory) Create(name string) (Calculator, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()
	if !ok {
		return nil, &UnknownCalculatorError{Name: name}
	}
	return NewCalculator(creator()), nil
}

// Get returns the cached Calculator for name, building it on first use.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	f.mu.RLock()
	calc, ok := f.calculators[name]
	f.mu.RUnlock()
	if ok {
		return calc, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if calc, ok := f.calculators[name]; ok {
		return calc, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownCalculatorError{Name: name}
	}
	calc = NewCalculator(creator())
	f.calculators[name] = calc
	return calc, nil
}

// List returns the registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the name to Calculator map, building any
// calculator not yet cached.
func (f *DefaultFactory) GetAll() map[string]Calculator {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, ok := f.calculators[name]; !ok {
			f.calculators[name] = NewCalculator(creator())
		}
	}
	out := make(map[string]Calculator, len(f.calculators))
	for name, calc := range f.calculators {
		out[name] = calc
	}
	return out
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory, which also holds
// strategies registered from build-tagged files.
func GlobalFactory() *DefaultFactory { return globalFactory }

// RegisterCalculator adds a strategy to the global factory.
func RegisterCalculator(name string, creator func() coreCalculator) error {
	return globalFactory.Register(name, creator)
}

// UnknownCalculatorError is returned for a strategy name that is not
// registered.
type UnknownCalculatorError struct {
	Name string
}

func (e *UnknownCalculatorError) Error() string {
	return "unknown calculator: " + e.Name
}
