// Command hamming-bench checks hamming.Weight and hamming.Distance against
// independent references over a ladder of buffer sizes and patterns, and
// reports throughput per kernel. It exits with status 1 when any result
// disagrees with the references.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/23skdu/hamming"
	"github.com/23skdu/hamming/internal/benchmark"
	"github.com/23skdu/hamming/internal/config"
	herrors "github.com/23skdu/hamming/internal/errors"
	"github.com/23skdu/hamming/internal/logging"
	hmemory "github.com/23skdu/hamming/internal/memory"
	"github.com/23skdu/hamming/internal/telemetry"
)

const kernelAll = "all"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.LoadDotenv()
	if err != nil {
		fmt.Fprintf(stderr, "configuration error: %v\n", err)
		return 2
	}

	def := benchmark.DefaultConfig()
	fs := flag.NewFlagSet("hamming-bench", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sizes := fs.String("sizes", joinInts(def.Sizes), "Comma-separated buffer sizes in bytes")
	patterns := fs.String("patterns", "all", "Comma-separated buffer patterns: random, zeros, ones, alternating, misaligned or all")
	iterations := fs.Int("iterations", def.Iterations, "Iterations per case")
	workers := fs.Int("workers", def.Workers, "Number of concurrent cases")
	seed := fs.Int64("seed", def.Seed, "Seed for random buffers")
	kernel := fs.String("kernel", cfg.Kernel, "Kernel to run: auto, hardware, portable or all")
	metricsAddr := fs.String("metrics", cfg.MetricsAddr, "Address to serve Prometheus metrics on while running (empty disables)")
	traceStdout := fs.Bool("trace-stdout", false, "Write one OpenTelemetry span per case to stderr")
	otlpEndpoint := fs.String("otlp-endpoint", cfg.OTLPEndpoint, "OTLP gRPC collector for per-case spans (empty disables)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger, err := logging.NewLogger(logging.Config{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		Output: stderr,
	})
	if err != nil {
		fmt.Fprintf(stderr, "logger error: %v\n", err)
		return 2
	}
	hamming.SetLogger(logger)

	bcfg := benchmark.Config{
		Iterations: *iterations,
		Workers:    *workers,
		Seed:       *seed,
	}
	if bcfg.Sizes, err = parseSizes(*sizes); err != nil {
		logger.Error().Err(err).Msg("Invalid sizes")
		return 2
	}
	if bcfg.Patterns, err = benchmark.ParsePatterns(*patterns); err != nil {
		logger.Error().Err(err).Msg("Invalid patterns")
		return 2
	}
	modes, err := kernelModes(*kernel)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid kernel")
		return 2
	}

	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		ServiceName:    "hamming-bench",
		ServiceVersion: runtime.Version(),
		Endpoint:       *otlpEndpoint,
		Stdout:         *traceStdout,
		Output:         stderr,
		SampleRatio:    cfg.TraceSampleRatio,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up tracing")
		return 2
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to flush traces")
		}
	}()

	alloc := hmemory.NewTrackingAllocator(memory.NewGoAllocator())
	runner, err := benchmark.NewRunner(bcfg,
		benchmark.WithLogger(logger),
		benchmark.WithAllocator(alloc),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Invalid benchmark configuration")
		return 2
	}

	f := hamming.Features()
	logger.Info().
		Str("arch", f.Arch).
		Str("vendor", f.Vendor).
		Str("brand", f.Brand).
		Int("physical_cores", f.PhysicalCores).
		Int("logical_cores", f.LogicalCores).
		Bool("popcnt", f.HasPOPCNT).
		Bool("asimd", f.HasASIMD).
		Bool("popcount_instruction", f.PopcountInstruction).
		Str("auto", f.Auto).
		Msg("CPU features")

	if *metricsAddr != "" {
		srv := startMetricsServer(*metricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("Failed to shut down metrics server")
			}
		}()
	}

	var all []benchmark.Result
	for _, mode := range modes {
		if err := hamming.UseKernel(mode); err != nil {
			logger.Error().Err(err).Str("mode", mode).Msg("Failed to select kernel")
			return 2
		}
		results, err := runner.Run(ctx)
		if err != nil {
			logger.Error().Err(err).Str("mode", mode).Msg("Benchmark aborted")
			return 1
		}
		all = append(all, results...)
	}

	printResults(stdout, all)

	if n := alloc.Live(); n != 0 {
		logger.Error().Int64("live_buffers", n).Msg("Harness leaked buffers")
		return 1
	}
	logger.Debug().
		Int64("allocated_bytes", alloc.BytesAllocated.Load()).
		Int64("freed_bytes", alloc.BytesFreed.Load()).
		Msg("Harness allocations")

	if n := benchmark.TotalMismatches(all); n > 0 {
		logger.Error().Int("mismatches", n).Msg("Results disagree with the reference implementations")
		return 1
	}
	logger.Info().Int("cases", len(all)).Msg("All results match the reference implementations")
	return 0
}

func startMetricsServer(addr string, logger zerolog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("address", addr).Msg("Starting metrics server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()
	return srv
}

// parseSizes parses a comma separated list of non-negative byte counts.
func parseSizes(s string) ([]int, error) {
	var out []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(field, "_", ""))
		if err != nil || n < 0 {
			return nil, herrors.NewConfigurationError("parse_sizes", fmt.Sprintf("invalid size %q", field)).
				WithContext("size", field)
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, herrors.NewConfigurationError("parse_sizes", "at least one size is required")
	}
	return out, nil
}

// kernelModes expands the -kernel flag into the modes to run in order.
func kernelModes(s string) ([]string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case kernelAll:
		return []string{hamming.KernelHardware, hamming.KernelPortable}, nil
	case "", hamming.KernelAuto, hamming.KernelHardware, hamming.KernelPortable:
		if s == "" {
			s = hamming.KernelAuto
		}
		return []string{s}, nil
	}
	return nil, herrors.NewConfigurationError("parse_kernel", fmt.Sprintf("unknown kernel %q", s)).
		WithContext("kernel", s)
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

func printResults(w io.Writer, results []benchmark.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OP\tKERNEL\tPATTERN\tSIZE\tITER\tELAPSED\tMB/S\tMISMATCHES")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%.1f\t%d\n",
			r.Op, r.Kernel, r.Pattern, r.Size, r.Iterations,
			r.Elapsed.Round(time.Microsecond), r.BytesPerSecond()/1e6, r.Mismatches)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nGo %s, %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
