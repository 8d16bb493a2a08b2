package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
)

// mockCalculator simulates various calculator behaviors for deadlock testing.
type mockCalculator struct {
	name     string
	behavior string // "instant", "slow", "error", "progress_flood"
	delay    time.Duration
}

var one = arith.Result{Value: digits.FromInt(1)}

func (m *mockCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, _ arith.Operation, _, _ digits.BigInt, _ arith.Options) (arith.Result, error) {
	switch m.behavior {
	case "instant":
		return one, nil
	case "slow":
		for i := 0; i < 100; i++ {
			select {
			case <-ctx.Done():
				return arith.Result{}, ctx.Err()
			case progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: float64(i) / 100.0}:
			default: // non-blocking
			}
			time.Sleep(m.delay)
		}
		return one, nil
	case "error":
		return arith.Result{}, fmt.Errorf("simulated error")
	case "progress_flood":
		// Flood the progress channel
		for i := 0; i < 10000; i++ {
			select {
			case progressChan <- progress.ProgressUpdate{CalculatorIndex: calcIndex, Value: float64(i) / 10000.0}:
			default:
			}
		}
		return one, nil
	}
	return one, nil
}

func (m *mockCalculator) Name() string { return m.name }

// mockProgressReporter that just drains the channel.
type mockProgressReporter struct{}

func (m *mockProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalcs int, out io.Writer) {
	defer wg.Done()
	for range progressChan {
	} // drain until closed
}

// TestOrchestrationNoDeadlock_MixedBehaviors verifies that ExecuteCalculations
// completes without deadlocking under various calculator behavior combinations.
func TestOrchestrationNoDeadlock_MixedBehaviors(t *testing.T) {
	testCases := []struct {
		name        string
		calculators []arith.Calculator
	}{
		{
			name: "all_instant",
			calculators: []arith.Calculator{
				&mockCalculator{name: "c1", behavior: "instant"},
				&mockCalculator{name: "c2", behavior: "instant"},
				&mockCalculator{name: "c3", behavior: "instant"},
			},
		},
		{
			name: "mixed_instant_and_slow",
			calculators: []arith.Calculator{
				&mockCalculator{name: "fast", behavior: "instant"},
				&mockCalculator{name: "slow", behavior: "slow", delay: time.Millisecond},
			},
		},
		{
			name: "mixed_with_errors",
			calculators: []arith.Calculator{
				&mockCalculator{name: "ok", behavior: "instant"},
				&mockCalculator{name: "err", behavior: "error"},
			},
		},
		{
			name: "progress_flood",
			calculators: []arith.Calculator{
				&mockCalculator{name: "flood1", behavior: "progress_flood"},
				&mockCalculator{name: "flood2", behavior: "progress_flood"},
			},
		},
		{
			name: "single_calculator",
			calculators: []arith.Calculator{
				&mockCalculator{name: "solo", behavior: "instant"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			req := Request{Op: arith.OpMultiply, A: digits.FromInt(12), B: digits.FromInt(34)}
			reporter := &mockProgressReporter{}

			done := make(chan struct{})
			go func() {
				defer close(done)
				ExecuteCalculations(ctx, tc.calculators, req, reporter, io.Discard)
			}()

			select {
			case <-done:
				// Success - no deadlock
			case <-time.After(10 * time.Second):
				t.Fatal("DEADLOCK: ExecuteCalculations did not complete within timeout")
			}
		})
	}
}

// TestOrchestrationNoDeadlock_ContextCancellation verifies that cancelling
// the context during execution does not cause a deadlock.
func TestOrchestrationNoDeadlock_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calcs := []arith.Calculator{
		&mockCalculator{name: "slow1", behavior: "slow", delay: 100 * time.Millisecond},
		&mockCalculator{name: "slow2", behavior: "slow", delay: 100 * time.Millisecond},
	}

	req := Request{Op: arith.OpMultiply, A: digits.FromInt(12), B: digits.FromInt(34)}
	reporter := &mockProgressReporter{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		ExecuteCalculations(ctx, calcs, req, reporter, io.Discard)
	}()

	// Cancel after a short delay
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
		// Success
	case <-time.After(5 * time.Second):
		t.Fatal("DEADLOCK after context cancellation")
	}
}
