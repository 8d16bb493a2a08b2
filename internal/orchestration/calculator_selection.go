package orchestration

import "github.com/agbru/digitcalc/internal/arith"

// GetCalculatorsToRun resolves algo against factory. "all" selects every
// registered strategy in alphabetical order; an unknown name selects none.
func GetCalculatorsToRun(algo string, factory arith.CalculatorFactory) []arith.Calculator {
	if algo == "all" {
		keys := factory.List()
		calculators := make([]arith.Calculator, 0, len(keys))
		for _, k := range keys {
			if calc, err := factory.Get(k); err == nil {
				calculators = append(calculators, calc)
			}
		}
		return calculators
	}
	if calc, err := factory.Get(algo); err == nil {
		return []arith.Calculator{calc}
	}
	return nil
}
