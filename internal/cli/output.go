// Functions here follow three naming patterns: Display* writes to an
// io.Writer, Format* returns a string without I/O, and Write* creates files.

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/orchestration"
	"github.com/agbru/digitcalc/internal/ui"
)

// OutputConfig selects how a final result is emitted.
type OutputConfig struct {
	// OutputFile receives the result when non-empty.
	OutputFile string
	Quiet      bool
	Verbose    bool
	Details    bool
	ShowValue  bool
}

// WriteResultToFile writes res with a commented header to config.OutputFile,
// creating parent directories as needed. It does nothing when no file is
// configured.
func WriteResultToFile(res orchestration.CalculationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	value := res.Result.String()
	fmt.Fprintf(file, "# Digit Chain Calculation Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Algorithm: %s\n", res.Name)
	fmt.Fprintf(file, "# Operation: %s\n", opts.Op)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Peak buffer bytes: %d\n", res.Alloc.Peak)
	fmt.Fprintf(file, "# Digits: %d\n", len(value))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%s\n%s\n%s =\n%s\n", opts.A, opts.Op.Symbol(), opts.B, value)

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// FormatQuietResult is the bare decimal value.
func FormatQuietResult(v digits.BigInt) string {
	return v.String()
}

// DisplayQuietResult prints the bare value on one line, for scripts.
func DisplayQuietResult(out io.Writer, v digits.BigInt) {
	fmt.Fprintln(out, FormatQuietResult(v))
}

// DisplayResultWithConfig prints res in the mode config selects and saves
// it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, res orchestration.CalculationResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, res.Result)
	} else {
		opts.Verbose, opts.Details, opts.ShowValue = config.Verbose, config.Details, config.ShowValue
		DisplayResult(res, opts, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(res, opts, config); err != nil {
		return err
	}
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
