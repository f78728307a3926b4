package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Kernel selection metrics. These are touched when a kernel is selected,
// never on the Weight/Distance hot path.
var (
	// KernelDispatchCount counts kernel selections by kernel name
	KernelDispatchCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hamming_kernel_dispatch_count_total",
			Help: "Count of population count kernel selections by kernel",
		},
		[]string{"kernel"},
	)

	// KernelDispatchType reports the active kernel (0=portable, 1=hardware)
	KernelDispatchType = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hamming_kernel_dispatch_type",
			Help: "Active population count kernel (0=portable, 1=hardware)",
		},
	)

	// PopcountInstructionAvailable reports whether the CPU exposes a
	// population count instruction (1=yes, 0=no)
	PopcountInstructionAvailable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hamming_popcount_instruction_available",
			Help: "Whether the CPU reports a population count instruction (1=yes, 0=no)",
		},
	)
)
