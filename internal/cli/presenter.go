package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/agbru/digitcalc/internal/errors"
	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/metrics"
	"github.com/agbru/digitcalc/internal/orchestration"
	"github.com/agbru/digitcalc/internal/progress"
	"github.com/agbru/digitcalc/internal/ui"
)

// CLIProgressReporter shows progress with DisplayProgress.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter renders results for the terminal. When Heap is set,
// detailed output also reports how the Go heap moved during the run.
type CLIResultPresenter struct {
	Heap *metrics.MemoryDelta
}

var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per strategy. Padding is computed
// by hand because the cells carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	nameW, durW, peakW := len("Algorithm"), len("Duration"), len("Peak")
	for _, res := range results {
		nameW = max(nameW, len(res.Name))
		durW = max(durW, len(formatDuration(res.Duration)))
		peakW = max(peakW, len(format.FormatBytes(res.Alloc.Peak)))
	}

	u, r := ui.ColorUnderline(), ui.ColorReset()
	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sPeak%s%s   %sStatus%s\n",
		u, r, padRight("", nameW-len("Algorithm")),
		u, r, padRight("", durW-len("Duration")),
		u, r, padRight("", peakW-len("Peak")),
		u, r)

	for _, res := range results {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), r)
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, r)
		}
		dur := formatDuration(res.Duration)
		peak := format.FormatBytes(res.Alloc.Peak)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorBlue(), res.Name, r, padRight("", nameW-len(res.Name)),
			ui.ColorYellow(), dur, r, padRight("", durW-len(dur)),
			ui.ColorCyan(), peak, r, padRight("", peakW-len(peak)),
			status)
	}
}

func (p CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
	if opts.Details && p.Heap != nil {
		DisplayMemoryStats(*p.Heap, out)
	}
}

func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats prints the Go heap activity observed around a run.
func DisplayMemoryStats(d metrics.MemoryDelta, out io.Writer) {
	growth := format.FormatBytes(uint64(max(d.HeapGrowth, -d.HeapGrowth)))
	if d.HeapGrowth < 0 {
		growth = "-" + growth
	}
	fmt.Fprintf(out, "\nGo heap:\n")
	fmt.Fprintf(out, "  Heap growth:     %s\n", growth)
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(d.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.NumGC)
	if d.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}
