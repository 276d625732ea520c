package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestProvider(t *testing.T, ratio float64) trace.TracerProvider {
	t.Helper()
	previous := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(previous) })

	tp, err := InitTracer(Config{ServiceName: "favorite-service", ServiceVersion: "test", SampleRatio: ratio})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, Shutdown(context.Background(), tp)) })
	return tp
}

func TestInitTracerInstallsProvider(t *testing.T) {
	tp := newTestProvider(t, 1)
	assert.Same(t, tp, otel.GetTracerProvider())

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.True(t, span.SpanContext().IsSampled())
}

func TestSampleRatioAppliesToRootsOnly(t *testing.T) {
	tp := newTestProvider(t, 0)
	tracer := tp.Tracer("test")

	_, root := tracer.Start(context.Background(), "root")
	defer root.End()
	assert.False(t, root.SpanContext().IsSampled())

	parent := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1},
		SpanID:     trace.SpanID{1},
		TraceFlags: trace.FlagsSampled,
		Remote:     true,
	})
	_, child := tracer.Start(trace.ContextWithRemoteSpanContext(context.Background(), parent), "child")
	defer child.End()
	assert.True(t, child.SpanContext().IsSampled())
}

func TestShutdownIgnoresForeignProviders(t *testing.T) {
	assert.NoError(t, Shutdown(context.Background(), noop.NewTracerProvider()))
}
