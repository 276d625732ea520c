package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/realestate-favorites/pkg/logger"
)

// MiddlewareConfig holds configuration for middlewares
type MiddlewareConfig struct {
	EnableLogging   bool
	EnableTracing   bool
	EnableCORS      bool
	EnableRecovery  bool
	EnableTimeout   bool
	TimeoutDuration time.Duration
	CORSOptions     cors.Options
}

// DefaultMiddlewareConfig returns the middleware configuration for the given CORS allow-list
func DefaultMiddlewareConfig(allowedOrigins []string, timeout time.Duration) *MiddlewareConfig {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &MiddlewareConfig{
		EnableLogging:   true,
		EnableTracing:   true,
		EnableCORS:      true,
		EnableRecovery:  true,
		EnableTimeout:   true,
		TimeoutDuration: timeout,
		CORSOptions: cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete,
				http.MethodPatch, http.MethodOptions, http.MethodHead,
			},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           3600,
		},
	}
}

// RegisterMiddlewares registers all configured middlewares to the router
func RegisterMiddlewares(router *mux.Router, config *MiddlewareConfig) {
	logger.Logger.Info().
		Bool("logging", config.EnableLogging).
		Bool("tracing", config.EnableTracing).
		Bool("cors", config.EnableCORS).
		Bool("recovery", config.EnableRecovery).
		Bool("timeout", config.EnableTimeout).
		Dur("timeout_duration", config.TimeoutDuration).
		Msg("Registering middlewares")

	// Recovery first so it catches panics from everything below
	if config.EnableRecovery {
		router.Use(RecoveryMiddleware())
	}

	if config.EnableTimeout {
		router.Use(TimeoutMiddleware(config.TimeoutDuration))
	}

	// Tracing before logging so request logs carry the trace id
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return TracingMiddleware("favorite-http-request", next)
		})
	}

	if config.EnableLogging {
		router.Use(LoggingMiddleware)
	}

	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	logger.Logger.Info().Msg("All middlewares registered successfully")
}

// RecoveryMiddleware recovers from panics and returns 500 error
func RecoveryMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error(r.Context()).
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("Panic recovered")

					respondError(w, http.StatusInternalServerError, internalErrorMessage)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// TimeoutMiddleware answers requests that outlive timeout with a 503 error envelope
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	body, _ := json.Marshal(ErrorResponse{Success: false, Status: http.StatusServiceUnavailable, Message: "Request timeout"})

	return func(next http.Handler) http.Handler {
		timeoutHandler := http.TimeoutHandler(next, timeout, string(body))
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			timeoutHandler.ServeHTTP(&timeoutWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutWriter labels the body http.TimeoutHandler writes on expiry as JSON.
// Handlers that finish in time bring their own Content-Type.
type timeoutWriter struct {
	http.ResponseWriter
}

func (w *timeoutWriter) WriteHeader(code int) {
	if code == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(code)
}

// TracingMiddleware wraps HTTP handlers with OpenTelemetry tracing
func TracingMiddleware(operationName string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, operationName)
}

// LoggingMiddleware logs HTTP requests with structured logging
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		ctx := r.Context()
		traceID := "no-trace"
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		event := logger.Info(ctx)
		if ww.statusCode >= 500 {
			event = logger.Error(ctx)
		} else if ww.statusCode >= 400 {
			event = logger.Warn(ctx)
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", ww.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Msg("HTTP request completed")
	})
}

// RequestIDMiddleware adds a unique request ID to each request
func RequestIDMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set("X-Request-ID", requestID)
			r.Header.Set("X-Request-ID", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

			next.ServeHTTP(w, r)
		})
	}
}

// SetupCORS creates and configures CORS middleware
func SetupCORS(config *MiddlewareConfig) func(http.Handler) http.Handler {
	if !config.EnableCORS {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	c := cors.New(config.CORSOptions)
	return c.Handler
}
