// Package metrics samples Go runtime memory statistics so the CLI can show
// how much heap a calculation really used next to the digit buffer
// accounting.
package metrics

import "runtime"

// MemorySnapshot is a point-in-time reading of the runtime's memory stats.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	Sys          uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
	HeapObjects  uint64
}

// MemoryDelta is the change between two snapshots. Heap growth may be
// negative when a collection ran in between.
type MemoryDelta struct {
	HeapGrowth   int64
	Allocated    uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector takes snapshots.
type MemoryCollector struct{}

func NewMemoryCollector() *MemoryCollector { return &MemoryCollector{} }

func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// Since returns the change from earlier to s.
func (s MemorySnapshot) Since(earlier MemorySnapshot) MemoryDelta {
	return MemoryDelta{
		HeapGrowth:   int64(s.HeapAlloc) - int64(earlier.HeapAlloc),
		Allocated:    s.TotalAlloc - earlier.TotalAlloc,
		NumGC:        s.NumGC - earlier.NumGC,
		PauseTotalNs: s.PauseTotalNs - earlier.PauseTotalNs,
	}
}
