package grpc

import (
	"context"
	"net"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/tair/realestate-favorites/pkg/logger"
)

// ServiceName is the health service name reported next to the overall "" entry
const ServiceName = "favorite.FavoriteService"

// Pinger reports database reachability
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer serves grpc.health.v1 backed by periodic database pings
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	db       Pinger
	interval time.Duration
}

// NewHealthServer creates the gRPC server with health and reflection registered.
// Both services start as NOT_SERVING until the first successful ping.
func NewHealthServer(db Pinger, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(LoggingInterceptor),
	)

	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, hs)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(server)

	return &HealthServer{
		server:   server,
		health:   hs,
		db:       db,
		interval: interval,
	}
}

// Refresh pings the database once and publishes the resulting status
func (s *HealthServer) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.db.PingContext(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("Database ping failed, reporting NOT_SERVING")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch refreshes the health status every interval until ctx is cancelled
func (s *HealthServer) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Refresh(ctx)
		}
	}
}

// Serve accepts connections on lis until Stop is called
func (s *HealthServer) Serve(lis net.Listener) error {
	logger.Logger.Info().
		Str("addr", lis.Addr().String()).
		Msg("gRPC server started")
	return s.server.Serve(lis)
}

// Stop marks every service NOT_SERVING and drains in-flight calls
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
