package grpc

import (
	"context"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/tair/realestate-favorites/pkg/logger"
)

// LoggingInterceptor logs gRPC requests with structured logging
func LoggingInterceptor(
	ctx context.Context,
	req interface{},
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (interface{}, error) {
	start := time.Now()

	traceID := "no-trace"
	if span := oteltrace.SpanFromContext(ctx); span.SpanContext().IsValid() {
		traceID = span.SpanContext().TraceID().String()
	}

	resp, err := handler(ctx, req)
	duration := time.Since(start)

	if err != nil {
		logger.Error(ctx).
			Str("method", info.FullMethod).
			Str("protocol", "grpc").
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Str("grpc_status", status.Code(err).String()).
			Err(err).
			Msg("gRPC request failed")
		return resp, err
	}

	logger.Debug(ctx).
		Str("method", info.FullMethod).
		Str("protocol", "grpc").
		Dur("duration", duration).
		Int64("duration_ms", duration.Milliseconds()).
		Str("trace_id", traceID).
		Msg("gRPC request completed")
	return resp, nil
}
