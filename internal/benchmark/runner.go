// Package benchmark feeds randomized and adversarial buffers through
// hamming.Weight and hamming.Distance, checks every result against
// independent references and measures throughput.
package benchmark

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/23skdu/hamming"
	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/metrics"
	"github.com/23skdu/hamming/internal/popcount"
	"github.com/23skdu/hamming/internal/telemetry"
)

const tracerName = "github.com/23skdu/hamming/internal/benchmark"

// Operations exercised by the harness
const (
	OpWeight   = "weight"
	OpDistance = "distance"
)

// Config holds harness settings
type Config struct {
	Sizes      []int
	Patterns   []Pattern
	Iterations int
	Workers    int
	Seed       int64
}

// DefaultConfig returns the size ladder 1..1,000,000 over every pattern.
func DefaultConfig() Config {
	return Config{
		Sizes:      []int{1, 10, 100, 1000, 10_000, 100_000, 1_000_000},
		Patterns:   AllPatterns(),
		Iterations: 10,
		Workers:    runtime.NumCPU(),
		Seed:       1,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return herrors.NewConfigurationError("benchmark", "at least one size is required")
	}
	for _, s := range c.Sizes {
		if s < 0 {
			return herrors.NewConfigurationError("benchmark", fmt.Sprintf("size must not be negative: %d", s))
		}
	}
	if len(c.Patterns) == 0 {
		return herrors.NewConfigurationError("benchmark", "at least one pattern is required")
	}
	if c.Iterations <= 0 {
		return herrors.NewConfigurationError("benchmark", "iterations must be positive")
	}
	if c.Workers <= 0 {
		return herrors.NewConfigurationError("benchmark", "workers must be positive")
	}
	return nil
}

// Result holds the outcome of one op/pattern/size case
type Result struct {
	Op         string
	Pattern    Pattern
	Size       int
	Kernel     string
	Iterations int
	Elapsed    time.Duration
	// Mismatches counts iterations whose result disagreed with a reference.
	Mismatches int
}

// BytesPerSecond returns the input throughput of the case.
func (r Result) BytesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	n := float64(r.Size) * float64(r.Iterations)
	if r.Op == OpDistance {
		n *= 2
	}
	return n / r.Elapsed.Seconds()
}

// TotalMismatches sums Mismatches over results.
func TotalMismatches(results []Result) int {
	total := 0
	for _, r := range results {
		total += r.Mismatches
	}
	return total
}

// Runner executes harness cases on a bounded worker pool
type Runner struct {
	cfg      Config
	mem      memory.Allocator
	logger   zerolog.Logger
	tracer   trace.Tracer
	weight   func([]byte) uint64
	distance func(a, b []byte) (uint64, error)
	kernel   func() string
}

// Option configures a Runner
type Option func(*Runner)

// WithAllocator sets the allocator harness buffers come from.
func WithAllocator(mem memory.Allocator) Option {
	return func(r *Runner) { r.mem = mem }
}

// WithLogger sets the logger receiving one record per case.
//
//nolint:gocritic // Logger passed by value for constructor simplicity
func WithLogger(l zerolog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTracerProvider sets where per-case spans go. The global provider is
// used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Runner) { r.tracer = tp.Tracer(tracerName) }
}

// WithWeightFunc replaces hamming.Weight as the function under test.
func WithWeightFunc(fn func([]byte) uint64) Option {
	return func(r *Runner) { r.weight = fn }
}

// WithDistanceFunc replaces hamming.Distance as the function under test.
func WithDistanceFunc(fn func(a, b []byte) (uint64, error)) Option {
	return func(r *Runner) { r.distance = fn }
}

// NewRunner creates a Runner for cfg
func NewRunner(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{
		cfg:      cfg,
		mem:      memory.NewGoAllocator(),
		logger:   zerolog.Nop(),
		tracer:   telemetry.Tracer(tracerName),
		weight:   hamming.Weight,
		distance: hamming.Distance,
		kernel:   hamming.Kernel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type benchCase struct {
	op      string
	pattern Pattern
	size    int
	seed    int64
}

func (r *Runner) cases() []benchCase {
	var out []benchCase
	for _, op := range []string{OpWeight, OpDistance} {
		for _, p := range r.cfg.Patterns {
			for _, size := range r.cfg.Sizes {
				out = append(out, benchCase{
					op:      op,
					pattern: p,
					size:    size,
					seed:    r.cfg.Seed + int64(len(out)),
				})
			}
		}
	}
	return out
}

// Run executes every case and returns results in case order (weight before
// distance, then pattern, then size). Reference disagreements are reported
// in Result.Mismatches, not as an error; Run fails only on cancellation.
func (r *Runner) Run(ctx context.Context) ([]Result, error) {
	cases := r.cases()
	results := make([]Result, len(cases))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Workers)

	for i, c := range cases {
		g.Go(func() error {
			res, err := r.runCase(gCtx, c)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// operand allocates a buffer of size bytes filled with p. For the
// misaligned pattern the returned slice starts 1..7 bytes into the
// allocation. The caller frees the returned backing slice.
func (r *Runner) operand(p Pattern, size int, complement bool, rng *rand.Rand) (buf, backing []byte) {
	offset := 0
	if p == PatternMisaligned {
		offset = 1 + rng.Intn(popcount.WordBytes-1)
	}
	backing = r.mem.Allocate(size + offset)
	buf = backing[offset : offset+size]
	fill(buf, p, complement, rng)
	return buf, backing
}

func (r *Runner) runCase(ctx context.Context, c benchCase) (Result, error) {
	ctx, span := r.tracer.Start(ctx, "benchmark."+c.op, trace.WithAttributes(
		attribute.String("pattern", string(c.pattern)),
		attribute.Int("size", c.size),
	))
	defer span.End()

	rng := rand.New(rand.NewSource(c.seed))

	a, backingA := r.operand(c.pattern, c.size, false, rng)
	defer r.mem.Free(backingA)

	var (
		b       []byte
		want    uint64
		refDiff bool
		call    func() (uint64, error)
	)
	switch c.op {
	case OpWeight:
		want = NaiveWeight(a)
		refDiff = ArrowWeight(a) != want
		call = func() (uint64, error) { return r.weight(a), nil }
	default:
		var backingB []byte
		b, backingB = r.operand(c.pattern, c.size, true, rng)
		defer r.mem.Free(backingB)

		want = NaiveDistance(a, b)
		xor := r.mem.Allocate(c.size)
		for i := range xor {
			xor[i] = a[i] ^ b[i]
		}
		refDiff = ArrowWeight(xor) != want
		r.mem.Free(xor)
		call = func() (uint64, error) { return r.distance(a, b) }
	}
	if refDiff {
		err := herrors.NewComputationError("benchmark",
			fmt.Sprintf("reference implementations disagree for %s/%s/%d", c.op, c.pattern, c.size))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	res := Result{
		Op:         c.op,
		Pattern:    c.pattern,
		Size:       c.size,
		Kernel:     r.kernel(),
		Iterations: r.cfg.Iterations,
	}

	start := time.Now()
	for it := 0; it < r.cfg.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return Result{}, err
		}
		got, err := call()
		if err != nil || got != want {
			res.Mismatches++
		}
	}
	res.Elapsed = time.Since(start)

	span.SetAttributes(
		attribute.String("kernel", res.Kernel),
		attribute.Int("mismatches", res.Mismatches),
	)
	if res.Mismatches > 0 {
		span.SetStatus(codes.Error, "result disagrees with reference")
	}
	r.record(res)
	return res, nil
}

func (r *Runner) record(res Result) {
	bytes := float64(res.Size) * float64(res.Iterations)
	if res.Op == OpDistance {
		bytes *= 2
	}
	metrics.BenchOperationsTotal.WithLabelValues(res.Op, res.Kernel).Add(float64(res.Iterations))
	metrics.BenchBytesProcessed.WithLabelValues(res.Op).Add(bytes)
	metrics.BenchMismatchesTotal.WithLabelValues(res.Op).Add(float64(res.Mismatches))
	metrics.BenchDurationSeconds.WithLabelValues(res.Op).Observe(res.Elapsed.Seconds())

	ev := r.logger.Info()
	if res.Mismatches > 0 {
		ev = r.logger.Error()
	}
	ev.Str("op", res.Op).
		Str("pattern", string(res.Pattern)).
		Int("size", res.Size).
		Str("kernel", res.Kernel).
		Int("iterations", res.Iterations).
		Dur("elapsed", res.Elapsed).
		Float64("bytes_per_sec", res.BytesPerSecond()).
		Int("mismatches", res.Mismatches).
		Msg("Benchmark case finished")
}
