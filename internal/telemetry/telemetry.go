// Package telemetry sets up OpenTelemetry tracing for the bench command.
package telemetry

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	herrors "github.com/23skdu/hamming/internal/errors"
)

// Config holds configuration for telemetry.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string // OTLP gRPC endpoint (e.g. "localhost:4317")
	Stdout         bool   // Export spans as JSON to Output instead
	Output         io.Writer
	SampleRatio    float64
}

// Setup installs a global tracer provider for cfg and returns its shutdown
// function. With neither Stdout nor Endpoint set it installs nothing and the
// shutdown function is a no-op.
func Setup(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	if cfg.SampleRatio < 0 || cfg.SampleRatio > 1 {
		return nil, herrors.NewConfigurationError("telemetry_setup",
			fmt.Sprintf("sample ratio must be between 0 and 1, got %v", cfg.SampleRatio))
	}

	var (
		exporter sdktrace.SpanExporter
		err      error
	)
	switch {
	case cfg.Stdout:
		out := cfg.Output
		if out == nil {
			out = os.Stdout
		}
		exporter, err = stdouttrace.New(stdouttrace.WithWriter(out))
	case cfg.Endpoint != "":
		exporter, err = otlptracegrpc.New(ctx,
			otlptracegrpc.WithInsecure(),
			otlptracegrpc.WithEndpoint(cfg.Endpoint),
		)
	default:
		return func(context.Context) error { return nil }, nil
	}
	if err != nil {
		return nil, herrors.WrapConfigurationError(err, "telemetry_setup", "failed to create exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, herrors.WrapConfigurationError(err, "telemetry_setup", "failed to create resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

// Tracer returns a named tracer from the global provider.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
