package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/example/agrigrow/pkg/config"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const probeTimeout = 3 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Probe is one backing store. The overall status is SERVING only while every
// required probe answers; optional probes are reported under their own
// service name.
type Probe struct {
	Name     string
	Pinger   Pinger
	Required bool
}

// HealthServer exposes the standard gRPC health service and reflection for
// the API process.
type HealthServer struct {
	config *config.Config
	logger *zap.Logger
	probes []Probe
	health *health.Server
	srv    *grpc.Server

	mu   sync.Mutex
	last map[string]healthpb.HealthCheckResponse_ServingStatus
}

func NewHealthServer(cfg *config.Config, logger *zap.Logger, probes ...Probe) *HealthServer {
	s := &HealthServer{
		config: cfg,
		logger: logger,
		probes: probes,
		health: health.NewServer(),
		srv:    grpc.NewServer(),
		last:   make(map[string]healthpb.HealthCheckResponse_ServingStatus),
	}
	healthpb.RegisterHealthServer(s.srv, s.health)
	reflection.Register(s.srv)
	return s
}

// ServiceName returns the health service name reported for probe.
func (s *HealthServer) ServiceName(probe string) string {
	return fmt.Sprintf("%s.%s", s.config.Server.Name, probe)
}

func (s *HealthServer) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	s.logger.Info("Health service started", zap.String("address", addr))
	return s.Serve(lis)
}

func (s *HealthServer) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// Check pings every probe once and publishes the result.
func (s *HealthServer) Check(ctx context.Context) bool {
	overall := true
	for _, p := range s.probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.Pinger.Ping(pctx)
		cancel()

		status := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
			if p.Required {
				overall = false
			}
		}
		s.set(s.ServiceName(p.Name), status, err)
	}

	status := healthpb.HealthCheckResponse_SERVING
	if !overall {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.set("", status, nil)
	s.set(s.config.Server.Name, status, nil)
	return overall
}

func (s *HealthServer) set(service string, status healthpb.HealthCheckResponse_ServingStatus, cause error) {
	s.health.SetServingStatus(service, status)

	s.mu.Lock()
	prev, seen := s.last[service]
	s.last[service] = status
	s.mu.Unlock()

	if seen && prev == status {
		return
	}
	if cause != nil {
		s.logger.Warn("Health status changed", zap.String("service", service),
			zap.String("status", status.String()), zap.Error(cause))
		return
	}
	s.logger.Info("Health status changed", zap.String("service", service), zap.String("status", status.String()))
}

// Watch re-checks the probes every interval until ctx is done.
func (s *HealthServer) Watch(ctx context.Context) {
	interval := s.config.Server.HealthInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

// Stop marks every service NOT_SERVING and drains in-flight calls.
func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.srv.GracefulStop()
}
