package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BenchOperationsTotal counts verified weight/distance calls made by the harness
	BenchOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_bench_operations_total",
			Help: "Total number of harness operations by op and kernel",
		},
		[]string{"op", "kernel"},
	)

	// BenchBytesProcessed tracks bytes fed through the kernels by the harness
	BenchBytesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_bench_bytes_processed_total",
			Help: "Total bytes processed by harness operations",
		},
		[]string{"op"},
	)

	// BenchMismatchesTotal counts results that disagreed with a reference
	BenchMismatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_bench_mismatches_total",
			Help: "Total number of results that disagreed with a reference implementation",
		},
		[]string{"op"},
	)

	// BenchDurationSeconds measures the duration of one harness case
	BenchDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hamming_bench_duration_seconds",
			Help:    "Duration of one harness case (all iterations of one op/pattern/size)",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 12),
		},
		[]string{"op"},
	)
)

var (
	// BenchAllocatedBytesTotal tracks bytes handed out to harness buffers
	BenchAllocatedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hamming_bench_allocated_bytes_total",
			Help: "Total bytes allocated for harness buffers",
		},
	)

	// BenchFreedBytesTotal tracks bytes returned by the harness
	BenchFreedBytesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hamming_bench_freed_bytes_total",
			Help: "Total bytes freed by the harness",
		},
	)

	// BenchAllocationsActive is the number of harness buffers currently live
	BenchAllocationsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hamming_bench_allocations_active",
			Help: "Number of harness buffers allocated and not yet freed",
		},
	)
)
