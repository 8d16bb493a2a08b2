// Package progress carries progress reports from running calculations to
// whoever displays or records them.
package progress

// ProgressUpdate is one progress sample for the calculator identified by
// CalculatorIndex. Value is normalized to [0, 1].
type ProgressUpdate struct {
	CalculatorIndex int
	Value           float64
}

// ProgressCallback receives normalized progress from a running calculation.
type ProgressCallback func(progress float64)

// ReportThreshold is the minimum progress change between two reports
// emitted by RowReporter.
const ReportThreshold = 0.01

// RowReporter converts per-row callbacks of a digit-by-digit algorithm into
// throttled normalized progress. The final row is always reported.
type RowReporter struct {
	callback ProgressCallback
	last     float64
}

// NewRowReporter wraps cb. A nil cb yields a reporter that does nothing.
func NewRowReporter(cb ProgressCallback) *RowReporter {
	return &RowReporter{callback: cb}
}

// Row records that done of total rows are complete.
func (r *RowReporter) Row(done, total int) {
	if r.callback == nil || total <= 0 {
		return
	}
	p := float64(done) / float64(total)
	if done >= total || p-r.last >= ReportThreshold {
		r.callback(min(p, 1.0))
		r.last = p
	}
}
