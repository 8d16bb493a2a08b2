package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
)

// CalculationResult is the outcome of one strategy's run. It is the type
// shared between orchestration and presentation.
type CalculationResult struct {
	// Name is the display name of the strategy.
	Name string
	// Result is the computed value. It is the zero BigInt if Err is set.
	Result digits.BigInt
	// Alloc describes the digit buffers the run held.
	Alloc digits.AllocStats
	// Duration is the wall time of the run.
	Duration time.Duration
	// Err is the error the run failed with, if any.
	Err error
}

// Request describes the operation every selected strategy performs.
type Request struct {
	Op      arith.Operation
	A, B    digits.BigInt
	Options arith.Options
}

// PresentationOptions configures how a result is presented.
type PresentationOptions struct {
	Op        arith.Operation
	A, B      digits.BigInt
	Verbose   bool
	Details   bool
	ShowValue bool
}

// ProgressReporter displays progress while calculations run.
//
// DisplayProgress is started in its own goroutine, consumes progressChan
// until it is closed and then calls wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer)

func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	f(wg, progressChan, numCalculators, out)
}

// NullProgressReporter drains the channel and displays nothing. It is used
// in quiet mode and by the server.
type NullProgressReporter struct{}

func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter renders results.
type ResultPresenter interface {
	// PresentComparisonTable displays the per-strategy summary.
	PresentComparisonTable(results []CalculationResult, out io.Writer)

	// PresentResult displays the final value.
	PresentResult(result CalculationResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler reports a calculation error and returns the exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
