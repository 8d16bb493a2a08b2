package tui

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/orchestration"
	"github.com/agbru/digitcalc/internal/progress"
)

func runReporter(t *testing.T, n int, updates ...progress.ProgressUpdate) {
	t.Helper()
	reporter := &TUIProgressReporter{ref: &programRef{}, generation: 1}

	ch := make(chan progress.ProgressUpdate, len(updates))
	for _, u := range updates {
		ch <- u
	}
	close(ch)

	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, ch, n, nil)
	wg.Wait()
}

func TestTUIProgressReporter(t *testing.T) {
	t.Parallel()

	t.Run("single calculator", func(t *testing.T) {
		t.Parallel()
		runReporter(t, 1,
			progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.25},
			progress.ProgressUpdate{CalculatorIndex: 0, Value: 1.0},
		)
	})
	t.Run("several calculators", func(t *testing.T) {
		t.Parallel()
		runReporter(t, 2,
			progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5},
			progress.ProgressUpdate{CalculatorIndex: 1, Value: 0.5},
			progress.ProgressUpdate{CalculatorIndex: 1, Value: 1.0},
		)
	})
	t.Run("zero calculators drains", func(t *testing.T) {
		t.Parallel()
		runReporter(t, 0, progress.ProgressUpdate{CalculatorIndex: 0, Value: 0.5})
	})
	t.Run("empty channel", func(t *testing.T) {
		t.Parallel()
		runReporter(t, 1)
	})
}

func TestProgramRefSendWithoutProgram(t *testing.T) {
	t.Parallel()
	ref := &programRef{}

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ref.Send(ProgressMsg{Value: float64(i) / 50})
		}()
	}
	wg.Wait()
}

func TestTUIResultPresenterCollects(t *testing.T) {
	t.Parallel()
	p := &TUIResultPresenter{}

	results := []orchestration.CalculationResult{
		{Name: "x", Result: digits.FromInt(6), Duration: time.Millisecond},
		{Name: "y", Result: digits.FromInt(6), Duration: 2 * time.Millisecond},
	}
	p.PresentComparisonTable(results, nil)
	results[0].Name = "changed"

	if len(p.results) != 2 || p.results[0].Name != "x" {
		t.Fatalf("results = %+v, want an independent copy of both rows", p.results)
	}

	p.PresentResult(results[1], orchestration.PresentationOptions{}, nil)
	if p.final == nil || p.final.Name != "y" {
		t.Fatalf("final = %+v, want y", p.final)
	}
	if p.FormatDuration(3*time.Millisecond) != "3ms" {
		t.Errorf("FormatDuration = %q", p.FormatDuration(3*time.Millisecond))
	}
}

func TestTUIResultPresenterHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"memory", apperrors.MemoryError{Requested: 10, Limit: 4}, apperrors.ExitErrorMemory},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &TUIResultPresenter{}
			if got := p.HandleError(tt.err, time.Second, nil); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
			if !errors.Is(p.err, tt.err) {
				t.Errorf("recorded err = %v, want %v", p.err, tt.err)
			}
		})
	}
}
