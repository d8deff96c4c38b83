package grpcx

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"
)

type fakePinger struct{ fail atomic.Bool }

func (f *fakePinger) Ping(context.Context) error {
	if f.fail.Load() {
		return errors.New("db down")
	}
	return nil
}

func dial(t *testing.T, h *HealthServer) healthpb.HealthClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	go func() { _ = h.Serve(lis) }()
	t.Cleanup(h.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func status(t *testing.T, c healthpb.HealthClient, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	res, err := c.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return res.GetStatus()
}

func TestHealth_FollowsProbe(t *testing.T) {
	p := &fakePinger{}
	log, hook := test.NewNullLogger()
	h := NewHealthServer(p, time.Hour, log)
	c := dial(t, h)

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c, ""))

	h.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, c, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, c, ServiceName))

	p.fail.Store(true)
	h.Check(context.Background())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, c, ServiceName))
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "[grpc] health probe failed", hook.LastEntry().Message)
}

func TestWatch_StopsWithContext(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := NewHealthServer(&fakePinger{}, 5*time.Millisecond, log)
	c := dial(t, h)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		res, err := c.Check(context.Background(), &healthpb.HealthCheckRequest{})
		return err == nil && res.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
