package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestKernelDispatchCount_Exists(t *testing.T) {
	if KernelDispatchCount == nil {
		t.Fatal("KernelDispatchCount metric should not be nil")
	}
	before := testutil.ToFloat64(KernelDispatchCount.WithLabelValues("portable"))
	KernelDispatchCount.WithLabelValues("portable").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(KernelDispatchCount.WithLabelValues("portable")))
}

func TestKernelDispatchType_Exists(t *testing.T) {
	if KernelDispatchType == nil {
		t.Fatal("KernelDispatchType metric should not be nil")
	}
	prev := testutil.ToFloat64(KernelDispatchType)
	defer KernelDispatchType.Set(prev)

	KernelDispatchType.Set(1)
	assert.Equal(t, 1.0, testutil.ToFloat64(KernelDispatchType))
}

func TestBenchMetrics_Exist(t *testing.T) {
	BenchOperationsTotal.WithLabelValues("weight", "hardware").Inc()
	BenchBytesProcessed.WithLabelValues("weight").Add(1024)
	BenchMismatchesTotal.WithLabelValues("distance").Add(0)
	BenchDurationSeconds.WithLabelValues("weight").Observe(0.001)

	assert.GreaterOrEqual(t, testutil.ToFloat64(BenchBytesProcessed.WithLabelValues("weight")), 1024.0)
}

func TestMetricsRegistration(t *testing.T) {
	collectors := []prometheus.Collector{
		KernelDispatchCount,
		KernelDispatchType,
		PopcountInstructionAvailable,
		BenchOperationsTotal,
		BenchBytesProcessed,
		BenchMismatchesTotal,
		BenchDurationSeconds,
	}

	// promauto registered every collector already; registering again must collide
	for _, c := range collectors {
		err := prometheus.Register(c)
		var are prometheus.AlreadyRegisteredError
		assert.ErrorAs(t, err, &are)
	}
}
