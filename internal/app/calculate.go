package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/cli"
	"github.com/agbru/digitcalc/internal/digits"
	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/memory"
	"github.com/agbru/digitcalc/internal/metrics"
	"github.com/agbru/digitcalc/internal/orchestration"
)

// runCalculate computes the configured operation once per selected
// strategy and reports the outcome.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	op, err := a.Config.Operation()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	x, y, err := a.Config.Operands()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	if a.Config.MemoryLimit != "" {
		if code := a.validateMemoryBudget(op, x, y, out); code != apperrors.ExitSuccess {
			return code
		}
	}

	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	calculators := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, op, x, y, out)
		cli.PrintExecutionMode(calculators, out)
	}

	var reporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet {
		reporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	gc := memory.NewGCController(a.Config.GCMode, max(x.DigitCount(), y.DigitCount()))
	gc.SetLogger(log.Logger)
	collector := metrics.NewMemoryCollector()

	before := collector.Snapshot()
	gc.Begin()
	req := orchestration.Request{Op: op, A: x, B: y, Options: a.Config.ToCalculationOptions()}
	results := orchestration.ExecuteCalculations(ctx, calculators, req, reporter, progressOut)
	gc.End()
	heap := collector.Snapshot().Since(before)

	opts := orchestration.PresentationOptions{
		Op:        op,
		A:         x,
		B:         y,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
		ShowValue: a.Config.ShowValue,
	}
	return a.analyzeResultsWithOutput(results, opts, heap, out)
}

// strategyNames lists the registry names the configured algo selects.
func (a *Application) strategyNames() []string {
	if a.Config.Algo == "all" {
		return a.Factory.List()
	}
	return []string{a.Config.Algo}
}

// validateMemoryBudget refuses the run when no selected strategy fits in
// the memory limit and warns about those that will not.
func (a *Application) validateMemoryBudget(op arith.Operation, x, y digits.BigInt, out io.Writer) int {
	limit, err := memory.ParseMemoryLimit(a.Config.MemoryLimit)
	if err != nil {
		fmt.Fprintf(out, "Invalid --memory-limit: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	if limit == 0 {
		return apperrors.ExitSuccess
	}

	n, m := x.DigitCount(), y.DigitCount()
	var over []string
	names := a.strategyNames()
	for _, name := range names {
		est := memory.EstimateAddUsage(n, m)
		if op == arith.OpMultiply {
			est = memory.EstimateMulUsage(name, n, m)
		}
		if est.PeakBytes > limit {
			over = append(over, name)
			if !a.Config.Quiet {
				fmt.Fprintf(out, "Strategy %s: estimated %s exceeds limit %s.\n",
					name, memory.FormatEstimate(est), format.FormatBytes(limit))
			}
		}
	}

	if len(over) == len(names) {
		fmt.Fprintf(out, "No strategy fits in the memory limit of %s.\n", a.Config.MemoryLimit)
		return apperrors.ExitErrorMemory
	}
	if len(over) > 0 && !a.Config.Quiet {
		fmt.Fprintf(out, "These strategies will likely fail with an allocation failure.\n")
	}
	return apperrors.ExitSuccess
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, opts orchestration.PresentationOptions, heap metrics.MemoryDelta, out io.Writer) int {
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		ShowValue:  a.Config.ShowValue,
	}

	best := findBestResult(results)

	if outputCfg.Quiet && best != nil {
		if !consistent(results, best) {
			fmt.Fprintln(a.ErrWriter, "Error: the strategies disagree on the result")
			return apperrors.ExitErrorMismatch
		}
		if err := cli.DisplayResultWithConfig(out, *best, opts, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presenter := cli.CLIResultPresenter{Heap: &heap}
	exitCode := orchestration.AnalyzeComparisonResults(results, opts, presenter, presenter, out)

	if best != nil && exitCode == apperrors.ExitSuccess && outputCfg.OutputFile != "" {
		if err := cli.WriteResultToFile(*best, opts, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		fmt.Fprintf(out, "\nResult saved to: %s\n", outputCfg.OutputFile)
	}
	return exitCode
}

// consistent reports whether every successful result equals best.
func consistent(results []orchestration.CalculationResult, best *orchestration.CalculationResult) bool {
	for _, r := range results {
		if r.Err == nil && !r.Result.Equal(best.Result) {
			return false
		}
	}
	return true
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var best *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil && (best == nil || results[i].Duration < best.Duration) {
			best = &results[i]
		}
	}
	return best
}
