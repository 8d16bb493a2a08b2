package orchestration

import (
	"time"

	"github.com/agbru/digitcalc/internal/format"
	"github.com/agbru/digitcalc/internal/progress"
)

// ProgressAggregator folds progress updates from several calculators into
// one average with an ETA. The CLI spinner and the TUI both consume it.
type ProgressAggregator struct {
	state          *format.ProgressWithETA
	numCalculators int
}

// NewProgressAggregator returns nil when numCalculators <= 0.
func NewProgressAggregator(numCalculators int) *ProgressAggregator {
	if numCalculators <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:          format.NewProgressWithETA(numCalculators),
		numCalculators: numCalculators,
	}
}

// AggregatedProgress is the aggregate view after one update.
type AggregatedProgress struct {
	CalculatorIndex int
	Value           float64 // the update's own value
	AverageProgress float64 // mean over all calculators
	ETA             time.Duration
}

// Update records u and returns the new aggregate.
func (a *ProgressAggregator) Update(u progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(u.CalculatorIndex, u.Value)
	return AggregatedProgress{
		CalculatorIndex: u.CalculatorIndex,
		Value:           u.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without recording anything,
// for periodic refreshes between updates.
func (a *ProgressAggregator) CalculateAverage() float64 { return a.state.CalculateAverage() }

// GetETA returns the current estimate without recording anything.
func (a *ProgressAggregator) GetETA() time.Duration { return a.state.GetETA() }

func (a *ProgressAggregator) IsMultiCalculator() bool { return a.numCalculators > 1 }

// DrainChannel discards updates until progressChan is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
