// Package grpcx serves the standard gRPC health service for the store API.
package grpcx

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported next to the overall ("") status.
const ServiceName = "store.api"

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	srv      *grpc.Server
	health   *health.Server
	pinger   Pinger
	interval time.Duration
	log      logrus.FieldLogger
}

func NewHealthServer(p Pinger, interval time.Duration, log logrus.FieldLogger) *HealthServer {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	h := &HealthServer{
		srv:      grpc.NewServer(),
		health:   health.NewServer(),
		pinger:   p,
		interval: interval,
		log:      log,
	}
	healthpb.RegisterHealthServer(h.srv, h.health)
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

func (h *HealthServer) Serve(lis net.Listener) error {
	return h.srv.Serve(lis)
}

// Watch probes the database until ctx is done and mirrors the result in the
// health status.
func (h *HealthServer) Watch(ctx context.Context) {
	h.Check(ctx)
	t := time.NewTicker(h.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			h.Check(ctx)
		}
	}
}

// Check runs one probe.
func (h *HealthServer) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.pinger.Ping(ctx); err != nil {
		h.log.WithError(err).Warn("[grpc] health probe failed")
		h.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	h.set(healthpb.HealthCheckResponse_SERVING)
}

func (h *HealthServer) set(s healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", s)
	h.health.SetServingStatus(ServiceName, s)
}

func (h *HealthServer) Stop() {
	h.health.Shutdown()
	h.srv.GracefulStop()
}
