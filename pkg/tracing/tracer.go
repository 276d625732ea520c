// Package tracing installs the process-wide OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/realestate-favorites/pkg/logger"
)

// DefaultJaegerEndpoint is the collector endpoint used when none is configured
const DefaultJaegerEndpoint = "http://localhost:14268/api/traces"

// Config describes where spans go and how many of them are kept
type Config struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	// SampleRatio applies to root spans only; children follow their parent.
	// Values outside (0, 1) are clamped by the sampler.
	SampleRatio float64
}

// InitTracer builds a batching Jaeger provider and installs it, together with
// the W3C trace context and baggage propagators, as the global default
func InitTracer(cfg Config) (*sdktrace.TracerProvider, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultJaegerEndpoint
	}

	exporter, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(cfg.Endpoint)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Jaeger exporter: %w", err)
	}

	res, err := resource.New(context.Background(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("endpoint", cfg.Endpoint).
		Float64("sample_ratio", cfg.SampleRatio).
		Msg("Tracer initialized")
	return tp, nil
}

// Shutdown flushes pending spans. Providers not built by InitTracer are left alone.
func Shutdown(ctx context.Context, tp trace.TracerProvider) error {
	sdk, ok := tp.(*sdktrace.TracerProvider)
	if !ok {
		return nil
	}
	if err := sdk.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
