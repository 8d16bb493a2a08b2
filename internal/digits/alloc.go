package digits

import (
	"fmt"

	"github.com/agbru/digitcalc/internal/format"
)

// Allocator hands out digit buffers.
//
// Alloc returns a zeroed Chain whose length and capacity are both n. Free
// returns a buffer obtained from Alloc; callers may pass any reslice that
// starts at the buffer's first element. Implementations are not required to
// be safe for concurrent use.
type Allocator interface {
	Alloc(n int) (Chain, error)
	Free(c Chain)
}

// HeapAllocator allocates from the Go heap and never fails. Free is a no-op;
// the garbage collector reclaims released buffers.
type HeapAllocator struct{}

func (HeapAllocator) Alloc(n int) (Chain, error) { return make(Chain, n), nil }

func (HeapAllocator) Free(Chain) {}

// AllocStats is a snapshot of a Tracker's accounting. Byte counts assume one
// byte per digit.
type AllocStats struct {
	Live   uint64 // bytes currently held
	Peak   uint64 // highest Live value observed
	Total  uint64 // bytes handed out over the tracker's lifetime
	Allocs int
	Frees  int
	Limit  uint64 // 0 means unlimited
}

func (s AllocStats) String() string {
	return fmt.Sprintf("live %s, peak %s, total %s in %d allocations",
		format.FormatBytes(s.Live), format.FormatBytes(s.Peak), format.FormatBytes(s.Total), s.Allocs)
}

// Tracker wraps an Allocator and accounts for every buffer it hands out.
// When a limit is set, a request that would push live bytes past it fails
// with *AllocationError before the inner allocator is asked.
//
// A Tracker is meant to be scoped to one computation and is not safe for
// concurrent use.
type Tracker struct {
	inner Allocator
	stats AllocStats
}

// NewTracker wraps inner, or the Go heap if inner is nil. A zero limit
// disables the check.
func NewTracker(inner Allocator, limit uint64) *Tracker {
	if inner == nil {
		inner = HeapAllocator{}
	}
	return &Tracker{inner: inner, stats: AllocStats{Limit: limit}}
}

func (t *Tracker) Alloc(n int) (Chain, error) {
	size := uint64(n)
	if t.stats.Limit > 0 && t.stats.Live+size > t.stats.Limit {
		return nil, &AllocationError{Requested: size, InUse: t.stats.Live, Limit: t.stats.Limit}
	}
	c, err := t.inner.Alloc(n)
	if err != nil {
		return nil, err
	}
	t.stats.Live += size
	t.stats.Total += size
	t.stats.Allocs++
	t.stats.Peak = max(t.stats.Peak, t.stats.Live)
	return c, nil
}

func (t *Tracker) Free(c Chain) {
	if c == nil {
		return
	}
	size := uint64(cap(c))
	if size > t.stats.Live {
		size = t.stats.Live
	}
	t.stats.Live -= size
	t.stats.Frees++
	t.inner.Free(c)
}

// Stats returns the current accounting snapshot.
func (t *Tracker) Stats() AllocStats { return t.stats }
