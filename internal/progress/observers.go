package progress

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// ChannelObserver forwards samples to a channel without blocking; samples
// that do not fit are dropped since a later one supersedes them.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver forwards to ch. A nil ch discards everything.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

func (o *ChannelObserver) Update(calcIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	select {
	case o.channel <- ProgressUpdate{CalculatorIndex: calcIndex, Value: min(progress, 1.0)}:
	default:
	}
}

// LoggingObserver writes debug entries when a calculator's progress moves
// by at least threshold, plus the first and final samples.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64

	mu      sync.Mutex
	lastLog map[int]float64
}

// NewLoggingObserver logs through logger. A non-positive threshold means 10%.
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

func (o *LoggingObserver) Update(calcIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last, seen := o.lastLog[calcIndex]
	if seen && progress < 1.0 && progress-last < o.threshold {
		return
	}
	o.logger.Debug().
		Int("calculator", calcIndex).
		Float64("progress", progress).
		Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
		Msg("calculation progress")
	o.lastLog[calcIndex] = progress
}
