package orchestration

import (
	"testing"

	"github.com/agbru/digitcalc/internal/arith"
)

func TestGetCalculatorsToRun(t *testing.T) {
	t.Parallel()
	factory := arith.NewDefaultFactory()

	t.Run("Single algorithm returns one calculator", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("accumulate", factory)
		if len(calculators) != 1 {
			t.Fatalf("Expected 1 calculator, got %d", len(calculators))
		}
		if calculators[0].Name() == "" {
			t.Error("Calculator name should not be empty")
		}
	})

	t.Run("All algorithms in sorted order", func(t *testing.T) {
		t.Parallel()
		calculators := GetCalculatorsToRun("all", factory)
		if len(calculators) != 3 {
			t.Fatalf("Expected 3 calculators for 'all', got %d", len(calculators))
		}
		want, _ := factory.Get("accumulate")
		if calculators[0] != want {
			t.Errorf("first calculator = %s, want %s", calculators[0].Name(), want.Name())
		}
	})

	t.Run("Unknown algorithm", func(t *testing.T) {
		t.Parallel()
		if calculators := GetCalculatorsToRun("karatsuba", factory); calculators != nil {
			t.Errorf("Expected nil, got %d calculators", len(calculators))
		}
	})
}
