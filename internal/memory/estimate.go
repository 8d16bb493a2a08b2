package memory

import (
	"fmt"

	"github.com/agbru/digitcalc/internal/format"
)

// Estimate predicts the digit buffer bytes of one calculation, at one byte
// per digit.
type Estimate struct {
	// OperandBytes is held by the parsed operands for the whole run.
	OperandBytes uint64
	// PeakBytes is the highest amount the calculation itself holds at once.
	// It is the figure an allocation tracker limit is compared with.
	PeakBytes uint64
	// TotalBytes is OperandBytes + PeakBytes.
	TotalBytes uint64
}

func newEstimate(n, m int, peak uint64) Estimate {
	operands := uint64(n + m)
	return Estimate{OperandBytes: operands, PeakBytes: peak, TotalBytes: operands + peak}
}

// EstimateMulUsage predicts a multiplication of an n-digit number by an
// m-digit number with the named strategy. Unknown strategies are estimated
// like "stdlib".
func EstimateMulUsage(strategy string, n, m int) Estimate {
	w := uint64(n + m + 1)
	var peak uint64
	switch strategy {
	case "accumulate":
		// running total, scratch row and the sum being folded into
		peak = 3 * w
	case "partial":
		// every shifted row, plus two running sums
		rows := uint64(n)*uint64(m+1) + uint64(n)*uint64(n-1)/2
		peak = rows + 2*w
	default:
		peak = 2 * w
	}
	return newEstimate(n, m, peak)
}

// EstimateAddUsage predicts an addition of an n-digit and an m-digit
// number. Every strategy needs one result buffer.
func EstimateAddUsage(n, m int) Estimate {
	return newEstimate(n, m, uint64(max(n, m)+1))
}

// FormatEstimate renders e for humans, e.g. "peak 3.00 KB (operands 1.95 KB)".
func FormatEstimate(e Estimate) string {
	return fmt.Sprintf("peak %s (operands %s)", format.FormatBytes(e.PeakBytes), format.FormatBytes(e.OperandBytes))
}
