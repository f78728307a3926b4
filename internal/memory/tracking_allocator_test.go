package memory

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/23skdu/hamming/internal/metrics"
)

func TestTrackingAllocator(t *testing.T) {
	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer checked.AssertSize(t, 0)

	a := NewTrackingAllocator(checked)
	allocBefore := testutil.ToFloat64(metrics.BenchAllocatedBytesTotal)
	freedBefore := testutil.ToFloat64(metrics.BenchFreedBytesTotal)

	b1 := a.Allocate(100)
	b2 := a.Allocate(7)
	require.Len(t, b1, 100)
	require.Len(t, b2, 7)
	assert.Equal(t, int64(2), a.Live())
	assert.Equal(t, int64(107), a.BytesAllocated.Load())

	a.Free(b1)
	a.Free(b2)
	assert.Zero(t, a.Live())
	assert.Equal(t, int64(107), a.BytesFreed.Load())

	assert.Equal(t, 107.0, testutil.ToFloat64(metrics.BenchAllocatedBytesTotal)-allocBefore)
	assert.Equal(t, 107.0, testutil.ToFloat64(metrics.BenchFreedBytesTotal)-freedBefore)
}

func TestTrackingAllocator_Reallocate(t *testing.T) {
	checked := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer checked.AssertSize(t, 0)
	a := NewTrackingAllocator(checked)

	b := a.Allocate(8)
	b = a.Reallocate(64, b)
	assert.Len(t, b, 64)
	assert.Equal(t, int64(1), a.Live())

	b = a.Reallocate(16, b)
	assert.Len(t, b, 16)
	a.Free(b)
	assert.Zero(t, a.Live())

	// Allocated and freed balance once every buffer is returned
	assert.Equal(t, int64(8+64+16), a.BytesAllocated.Load())
	assert.Equal(t, a.BytesAllocated.Load(), a.BytesFreed.Load())
}

func TestTrackingAllocator_DefaultBase(t *testing.T) {
	a := NewTrackingAllocator(nil)
	assert.Equal(t, memory.DefaultAllocator, a.Allocator)
}
