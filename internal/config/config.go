package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/tair/realestate-favorites/pkg/database"
)

// DefaultAllowedOrigins is the browser allow-list used when CORS_ALLOWED_ORIGINS is unset
var DefaultAllowedOrigins = []string{
	// local development
	"http://localhost:3000",
	"http://localhost:3001",
	// S3 static website
	"http://realestate-frontend.s3-website-us-east-1.amazonaws.com",
	// EC2 backend host
	"http://13.220.57.64:8080",
	"http://13.220.57.64",
}

// Config holds the favorite service configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	LogLevel       string

	HTTPPort       string
	GRPCPort       string
	RequestTimeout time.Duration

	Database database.Config

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CountCacheTTL time.Duration

	KafkaBrokers       []string
	KafkaConsumerGroup string

	TracingEnabled   bool
	JaegerEndpoint   string
	TraceSampleRatio float64

	AllowedOrigins []string
}

// IsDevelopment reports whether the service runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first if present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:    getEnv("OTEL_SERVICE_NAME", "favorite-service"),
		ServiceVersion: getEnv("SERVICE_VERSION", "1.0.0"),
		Environment:    getEnv("ENVIRONMENT", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		GRPCPort:       getEnv("GRPC_PORT", "9090"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),

		Database: database.Config{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "realestatedb"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),
		CountCacheTTL: getDuration("FAVORITE_COUNT_CACHE_TTL", 5*time.Minute),

		KafkaBrokers:       getList("KAFKA_BROKERS", nil),
		KafkaConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "favorite-service"),

		TracingEnabled:   getBool("TRACING_ENABLED", true),
		JaegerEndpoint:   os.Getenv("JAEGER_ENDPOINT"),
		TraceSampleRatio: getFloat("TRACE_SAMPLE_RATIO", 1),

		AllowedOrigins: getList("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
