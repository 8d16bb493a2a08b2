package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/digitcalc/internal/arith"
	"github.com/agbru/digitcalc/internal/config"
	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/ui"
)

// PrintExecutionConfig shows what is about to be computed and under which
// limits.
func PrintExecutionConfig(cfg config.AppConfig, op arith.Operation, a, b digits.BigInt, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Computing a %s%d-digit %s %d-digit%s %s with a timeout of %s%s%s.\n",
		ui.ColorMagenta(), a.DigitCount(), op.Symbol(), b.DigitCount(), ui.ColorReset(),
		op, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	limit := "none"
	if cfg.MemoryLimit != "" {
		limit = cfg.MemoryLimit
	}
	fmt.Fprintf(out, "Memory limit: %s%s%s, GC mode: %s%s%s.\n",
		ui.ColorCyan(), limit, ui.ColorReset(), ui.ColorCyan(), cfg.GCMode, ui.ColorReset())
}

// PrintExecutionMode says whether one strategy runs or several are compared.
func PrintExecutionMode(calculators []arith.Calculator, out io.Writer) {
	modeDesc := "Parallel comparison of all algorithms"
	if len(calculators) == 1 {
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
