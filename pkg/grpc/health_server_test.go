package grpc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"

	"github.com/example/agrigrow/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type switchPinger struct {
	down atomic.Bool
}

func (p *switchPinger) Ping(context.Context) error {
	if p.down.Load() {
		return errors.New("connection refused")
	}
	return nil
}

func startHealth(t *testing.T, probes ...Probe) (*HealthServer, healthpb.HealthClient) {
	t.Helper()
	cfg := &config.Config{Server: config.ServerConfig{Name: "agrigrow-api"}}
	srv := NewHealthServer(cfg, zap.NewNop(), probes...)

	lis := bufconn.Listen(1024 * 1024)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return srv, healthpb.NewHealthClient(conn)
}

func status(t *testing.T, client healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.Status
}

func TestHealthServer_FollowsRequiredProbe(t *testing.T) {
	mongo := &switchPinger{}
	redis := &switchPinger{}
	srv, client := startHealth(t,
		Probe{Name: "mongodb", Pinger: mongo, Required: true},
		Probe{Name: "redis", Pinger: redis},
	)
	ctx := context.Background()

	assert.True(t, srv.Check(ctx))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "agrigrow-api.mongodb"))

	redis.down.Store(true)
	assert.True(t, srv.Check(ctx), "optional probe failure keeps the API serving")
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "agrigrow-api"))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, "agrigrow-api.redis"))

	mongo.down.Store(true)
	assert.False(t, srv.Check(ctx))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, client, ""))

	mongo.down.Store(false)
	assert.True(t, srv.Check(ctx))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, ""))
}

func TestHealthServer_PingFunc(t *testing.T) {
	calls := 0
	srv, client := startHealth(t, Probe{Name: "mysql", Required: true, Pinger: PingFunc(func(context.Context) error {
		calls++
		return nil
	})})

	srv.Check(context.Background())
	assert.Equal(t, 1, calls)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, client, "agrigrow-api.mysql"))
}
