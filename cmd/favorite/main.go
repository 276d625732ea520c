package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/tair/realestate-favorites/internal/config"
	"github.com/tair/realestate-favorites/internal/favorite"
	grpcDelivery "github.com/tair/realestate-favorites/internal/favorite/delivery/grpc"
	httpDelivery "github.com/tair/realestate-favorites/internal/favorite/delivery/http"
	"github.com/tair/realestate-favorites/internal/favorite/repository"
	"github.com/tair/realestate-favorites/kafka"
	"github.com/tair/realestate-favorites/pkg/database"
	"github.com/tair/realestate-favorites/pkg/logger"
	"github.com/tair/realestate-favorites/pkg/tracing"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("version", cfg.ServiceVersion).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting favorite service")

	// Initialize tracer
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(tracing.Config{
			ServiceName:    cfg.ServiceName,
			ServiceVersion: cfg.ServiceVersion,
			Endpoint:       cfg.JaegerEndpoint,
			SampleRatio:    cfg.TraceSampleRatio,
		})
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.AutoMigrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	redisClient := connectRedis(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := connectPublisher(cfg)
	if publisher != nil {
		defer publisher.Close()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Initialize service with Wire DI
	svc, err := favorite.InitializeService(db, redisClient, publisher, cfg, registry)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize favorite service")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := startConsumer(ctx, cfg, svc.Deletions)

	// gRPC health server
	healthServer := grpcDelivery.NewHealthServer(sqlDB, 10*time.Second)
	go healthServer.Watch(ctx)
	go startGRPCServer(healthServer, cfg.GRPCPort)

	// HTTP server
	router := httpDelivery.NewRouter(
		svc.Handler,
		httpDelivery.DefaultMiddlewareConfig(cfg.AllowedOrigins, cfg.RequestTimeout),
		sqlDB,
		registry,
	)
	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	healthServer.Stop()

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}

	logger.Logger.Info().Msg("Server exited")
}

// connectRedis returns nil when Redis is not configured or unreachable; counts are then read from the database
func connectRedis(cfg *config.Config) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Logger.Info().Msg("REDIS_ADDR not set, favorite count cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("Redis unavailable, favorite count cache disabled")
		client.Close()
		return nil
	}

	logger.Logger.Info().
		Str("addr", cfg.RedisAddr).
		Dur("ttl", cfg.CountCacheTTL).
		Msg("Favorite count cache enabled")
	return client
}

func connectPublisher(cfg *config.Config) *kafka.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Logger.Info().Msg("KAFKA_BROKERS not set, favorite events disabled")
		return nil
	}

	publisher, err := kafka.NewPublisher(cfg.KafkaBrokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable, favorite events disabled")
		return nil
	}
	return publisher
}

func startConsumer(ctx context.Context, cfg *config.Config, deletions *favorite.DeletionHandlers) *kafka.Consumer {
	if len(cfg.KafkaBrokers) == 0 {
		return nil
	}

	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaConsumerGroup, kafka.DeletionTopics)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable, deletion events ignored")
		return nil
	}

	favorite.RegisterDeletionHandlers(consumer, deletions)
	consumer.Start(ctx)
	return consumer
}

func startGRPCServer(server *grpcDelivery.HealthServer, port string) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen for gRPC")
	}

	if err := server.Serve(lis); err != nil {
		logger.Logger.Error().Err(err).Msg("gRPC server stopped")
	}
}
