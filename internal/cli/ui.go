package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/orchestration"
	"github.com/agbru/digitcalc/internal/progress"
	"github.com/agbru/digitcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which values are shortened in
	// standard output.
	TruncationLimit = 100
	// DisplayEdges is how many leading and trailing digits a shortened value
	// keeps.
	DisplayEdges = 25
	// ProgressRefreshRate is the spinner and progress bar refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the progress bar width in characters.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	return &realSpinner{spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)}
}

// DisplayProgress animates a spinner with an aggregated progress bar and ETA
// until progressChan is closed, then prints a final 100% line. It calls
// wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(numCalculators)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if agg.IsMultiCalculator() {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %s\n", label, format.FormatProgressBarWithETA(1.0, 0, ProgressBarWidth))
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(fmt.Sprintf(" %s: %s", label,
				format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth)))
		}
	}
}

// formatDuration renders d, printing "< 1µs" for a zero duration.
func formatDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// truncateDigits shortens s to its edges when it exceeds TruncationLimit.
func truncateDigits(s string) (string, bool) {
	if len(s) <= TruncationLimit {
		return s, false
	}
	return s[:DisplayEdges] + "..." + s[len(s)-DisplayEdges:], true
}

// expression renders "A × B" with long operands shortened.
func expression(opts orchestration.PresentationOptions) string {
	a, _ := truncateDigits(opts.A.String())
	b, _ := truncateDigits(opts.B.String())
	return fmt.Sprintf("%s %s %s", a, opts.Op.Symbol(), b)
}

// DisplayResult prints the result summary, the allocation analysis when
// opts.Details is set, and the value itself when opts.ShowValue is set.
func DisplayResult(res orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	value := res.Result.String()
	digitCount := int64(len(value))
	fmt.Fprintf(out, "Result size: %s%s%s digits.\n", ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(digitCount)), ui.ColorReset())

	if opts.Details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		fmt.Fprintf(out, "Calculation time   : %s%s%s\n", ui.ColorGreen(), formatDuration(res.Duration), ui.ColorReset())
		fmt.Fprintf(out, "Operand digits     : %s%d %s %d%s\n", ui.ColorCyan(),
			opts.A.DigitCount(), opts.Op.Symbol(), opts.B.DigitCount(), ui.ColorReset())
		DisplayAllocStats(res, out)
	}

	if !opts.ShowValue {
		return
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	expr := expression(opts)
	if opts.Verbose {
		fmt.Fprintf(out, "%s%s%s =\n%s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(value), ui.ColorReset())
		return
	}
	if short, truncated := truncateDigits(value); truncated {
		fmt.Fprintf(out, "%s%s%s (truncated) = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), short, ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s option to display the full value)\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	fmt.Fprintf(out, "%s%s%s = %s%s%s\n", ui.ColorMagenta(), expr, ui.ColorReset(), ui.ColorGreen(), format.FormatNumberString(value), ui.ColorReset())
}

// DisplayAllocStats prints the digit buffer accounting of one run.
func DisplayAllocStats(res orchestration.CalculationResult, out io.Writer) {
	s := res.Alloc
	fmt.Fprintf(out, "Peak buffer memory : %s%s%s\n", ui.ColorCyan(), format.FormatBytes(s.Peak), ui.ColorReset())
	fmt.Fprintf(out, "Total allocated    : %s%s%s in %d allocations, %d released\n",
		ui.ColorCyan(), format.FormatBytes(s.Total), ui.ColorReset(), s.Allocs, s.Frees)
	fmt.Fprintf(out, "Held by result     : %s%s%s\n", ui.ColorCyan(), format.FormatBytes(s.Live), ui.ColorReset())
	if s.Limit > 0 {
		fmt.Fprintf(out, "Memory limit       : %s%s%s\n", ui.ColorYellow(), format.FormatBytes(s.Limit), ui.ColorReset())
	}
}

// padRight appends length spaces to s.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}
