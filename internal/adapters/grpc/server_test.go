package grpc_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcserver "bloglist/internal/adapters/grpc"
	"bloglist/internal/config"
)

type flakyPinger struct {
	healthy atomic.Bool
}

func (p *flakyPinger) Ping(context.Context) error {
	if p.healthy.Load() {
		return nil
	}
	return errors.New("store unavailable")
}

func startServer(t *testing.T) (*grpcserver.Server, healthpb.HealthClient) {
	t.Helper()
	ctx := context.Background()

	server := grpcserver.New(&config.GRPCConfig{Host: "127.0.0.1", Port: 0})
	require.NoError(t, server.Start(ctx))
	t.Cleanup(func() { server.Stop(ctx) })

	conn, err := grpc.NewClient(server.Addr(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return server, healthpb.NewHealthClient(conn)
}

// status возвращает UNKNOWN при ошибке вызова, чтобы его можно было опрашивать из Eventually.
func status(client healthpb.HealthClient) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: grpcserver.ServiceName})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

func TestHealthStartsNotServing(t *testing.T) {
	server, client := startServer(t)

	assert.NotEmpty(t, server.Addr())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(client))

	server.SetServing(context.Background(), true)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(client))
}

func TestMonitorHealthFollowsStore(t *testing.T) {
	server, client := startServer(t)
	pinger := &flakyPinger{}
	pinger.healthy.Store(true)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		server.MonitorHealth(ctx, pinger, 10*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return status(client) == healthpb.HealthCheckResponse_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	pinger.healthy.Store(false)
	assert.Eventually(t, func() bool {
		return status(client) == healthpb.HealthCheckResponse_NOT_SERVING
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after cancel")
	}
}

func TestStartFailsOnBusyPort(t *testing.T) {
	first, _ := startServer(t)

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := grpcserver.New(&config.GRPCConfig{Host: "127.0.0.1", Port: port})
	require.Error(t, second.Start(context.Background()))
}
