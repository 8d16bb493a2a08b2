// Package arith runs BigInt operations through interchangeable strategies.
// Every strategy is wrapped by OpCalculator, which adds tracing, metrics,
// progress reporting and a per-run allocation tracker, so the orchestration
// layer can run several strategies side by side and compare their results.
package arith

import (
	"context"
	"time"

	"github.com/agbru/digitcalc/internal/digits"
	"github.com/agbru/digitcalc/internal/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var (
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digitcalc_operations_total",
			Help: "The total number of BigInt operations processed",
		},
		[]string{"algorithm", "operation", "status"},
	)
	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digitcalc_operation_duration_seconds",
			Help:    "The duration of BigInt operations in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"algorithm", "operation"},
	)
	peakBufferBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "digitcalc_peak_buffer_bytes",
			Help:    "Peak digit buffer bytes held during an operation",
			Buckets: prometheus.ExponentialBuckets(64, 4, 12),
		},
		[]string{"algorithm", "operation"},
	)
)

// Options configures a single calculation.
type Options struct {
	// MemoryLimit caps the digit buffer bytes one calculation may hold at
	// once. Zero means unlimited.
	MemoryLimit uint64
}

// Result is the outcome of a successful calculation.
type Result struct {
	Value digits.BigInt
	// Alloc describes the digit buffers the calculation requested.
	Alloc digits.AllocStats
}

// Calculator is the interface the orchestration layer drives.
type Calculator interface {
	// Calculate applies op to a and b. Progress samples go to progressChan,
	// which may be nil. Cancellation of ctx is honored between rows of
	// digit-by-digit work.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, op Operation, a, b digits.BigInt, opts Options) (Result, error)

	// Name returns the display name of the strategy.
	Name() string
}

// coreCalculator is a bare strategy. Buffers must come from x so that the
// decorator's tracker sees them.
type coreCalculator interface {
	Multiply(ctx context.Context, reporter progress.ProgressCallback, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error)
	Add(ctx context.Context, x digits.Arith, a, b digits.BigInt) (digits.BigInt, error)
	Name() string
}

// OpCalculator decorates a coreCalculator with the cross-cutting concerns
// shared by every strategy.
type OpCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("arith: the coreCalculator implementation cannot be nil")
	}
	return &OpCalculator{core: core}
}

func (c *OpCalculator) Name() string { return c.core.Name() }

// Calculate reports progress to progressChan through a ChannelObserver.
// When the global log level is debug or finer, progress is also logged in
// steps of 10%.
func (c *OpCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, op Operation, a, b digits.BigInt, opts Options) (Result, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		subject.Register(progress.NewLoggingObserver(log.Logger, 0.1))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, op, a, b, opts)
}

// CalculateWithObservers runs the calculation, notifying every observer
// registered on subject. A nil subject disables progress reporting.
func (c *OpCalculator) CalculateWithObservers(ctx context.Context, subject *progress.ProgressSubject, calcIndex int, op Operation, a, b digits.BigInt, opts Options) (res Result, err error) {
	algo := c.core.Name()
	ctx, span := otel.Tracer("digitcalc/arith").Start(ctx, "Calculate")
	span.SetAttributes(
		attribute.String("algorithm", algo),
		attribute.String("operation", op.String()),
		attribute.Int("a.digits", a.DigitCount()),
		attribute.Int("b.digits", b.DigitCount()),
	)
	defer span.End()

	tracker := digits.NewTracker(nil, opts.MemoryLimit)
	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		stats := tracker.Stats()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		operationsTotal.WithLabelValues(algo, op.String(), status).Inc()
		operationDuration.WithLabelValues(algo, op.String()).Observe(duration)
		peakBufferBytes.WithLabelValues(algo, op.String()).Observe(float64(stats.Peak))

		log.Debug().
			Str("algo", algo).
			Str("op", op.String()).
			Int("a_digits", a.DigitCount()).
			Int("b_digits", b.DigitCount()).
			Uint64("peak_bytes", stats.Peak).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	reporter := progress.ProgressCallback(func(float64) {})
	if subject != nil {
		reporter = subject.AsCallback(calcIndex)
	}

	x := digits.With(tracker)
	var value digits.BigInt
	switch op {
	case OpAdd:
		value, err = c.core.Add(ctx, x, a, b)
	case OpMultiply:
		value, err = c.core.Multiply(ctx, reporter, x, a, b)
	default:
		err = &UnknownOperationError{Name: op.String()}
	}
	if err != nil {
		return Result{}, err
	}
	reporter(1.0)
	return Result{Value: value, Alloc: tracker.Stats()}, nil
}
