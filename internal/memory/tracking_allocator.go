// Package memory provides the allocator harness buffers are drawn from.
package memory

import (
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/23skdu/hamming/internal/metrics"
)

// TrackingAllocator wraps a base memory.Allocator and updates Prometheus metrics
type TrackingAllocator struct {
	memory.Allocator
	BytesAllocated atomic.Int64
	BytesFreed     atomic.Int64
	live           atomic.Int64
}

// NewTrackingAllocator creates a new allocator that wraps the given base allocator.
// If base is nil, it uses memory.DefaultAllocator.
func NewTrackingAllocator(base memory.Allocator) *TrackingAllocator {
	if base == nil {
		base = memory.DefaultAllocator
	}
	return &TrackingAllocator{Allocator: base}
}

func (a *TrackingAllocator) Allocate(size int) []byte {
	a.BytesAllocated.Add(int64(size))
	a.live.Add(1)
	metrics.BenchAllocatedBytesTotal.Add(float64(size))
	metrics.BenchAllocationsActive.Inc()
	return a.Allocator.Allocate(size)
}

// Reallocate counts b as freed and size as allocated; the live count is
// unchanged.
func (a *TrackingAllocator) Reallocate(size int, b []byte) []byte {
	a.BytesFreed.Add(int64(len(b)))
	a.BytesAllocated.Add(int64(size))
	metrics.BenchFreedBytesTotal.Add(float64(len(b)))
	metrics.BenchAllocatedBytesTotal.Add(float64(size))
	return a.Allocator.Reallocate(size, b)
}

func (a *TrackingAllocator) Free(b []byte) {
	a.BytesFreed.Add(int64(len(b)))
	a.live.Add(-1)
	metrics.BenchFreedBytesTotal.Add(float64(len(b)))
	metrics.BenchAllocationsActive.Dec()
	a.Allocator.Free(b)
}

// Live returns the number of buffers allocated and not yet freed.
func (a *TrackingAllocator) Live() int64 {
	return a.live.Load()
}

var _ memory.Allocator = (*TrackingAllocator)(nil)
