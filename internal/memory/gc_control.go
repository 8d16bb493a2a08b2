package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector during a calculation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// ValidGCMode reports whether s names a GCMode.
func ValidGCMode(s string) bool {
	switch GCMode(s) {
	case GCModeAuto, GCModeAggressive, GCModeDisabled:
		return true
	}
	return false
}

// GCAutoThreshold is the operand size, in digits, from which GCModeAuto
// suspends collection.
const GCAutoThreshold = 100_000

// GCController suspends garbage collection between Begin and End and then
// restores the previous settings. While suspended, a soft memory limit of
// three times the process footprint guards against runaway growth.
type GCController struct {
	mode          GCMode
	active        bool
	prevGCPercent int
	logger        zerolog.Logger
	start, end    runtime.MemStats
}

// GCStats is the runtime activity observed between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController returns a controller for a calculation whose larger
// operand has maxDigits digits.
func NewGCController(mode string, maxDigits int) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = maxDigits >= GCAutoThreshold
	}
	return gc
}

func (gc *GCController) SetLogger(l zerolog.Logger) { gc.logger = l }

// Active reports whether Begin will suspend collection.
func (gc *GCController) Active() bool { return gc.active }

func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.start)
	gc.prevGCPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.start.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc suspended")
}

// End restores the collector and runs one collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.end)
	debug.SetGCPercent(gc.prevGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	stats := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", stats.HeapAlloc).
		Uint64("total_alloc_bytes", stats.TotalAlloc).
		Uint32("gc_cycles", stats.NumGC).
		Msg("gc restored")
}

// Stats returns the delta between Begin and End. It is zero for an inactive
// controller.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.end.HeapAlloc,
		TotalAlloc:   gc.end.TotalAlloc - gc.start.TotalAlloc,
		NumGC:        gc.end.NumGC - gc.start.NumGC,
		PauseTotalNs: gc.end.PauseTotalNs - gc.start.PauseTotalNs,
	}
}
