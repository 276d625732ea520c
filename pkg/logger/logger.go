package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide logger. It discards everything until Init is called.
var Logger = zerolog.Nop()

// Init initializes the global logger
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	Logger = New(output, serviceName)
	log.Logger = Logger
}

// New builds a service logger writing to w. Level filtering is left to the global level.
func New(w io.Writer, serviceName string) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()
}

// WithContext returns a logger with trace information from context
func WithContext(ctx context.Context) *zerolog.Logger {
	l := Logger.With().Logger()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		l = l.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return &l
}

// Info logs at info level with context
func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

// Error logs at error level with context
func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

// Debug logs at debug level with context
func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

// Warn logs at warn level with context
func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

// SetLevel sets the global log level. Unknown values fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
