// Package grpc предоставляет gRPC сервер проверки состояния сервиса блогов.
package grpc

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"bloglist/internal/config"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

// ServiceName - имя сервиса в протоколе grpc.health.v1.
const ServiceName = "bloglist"

// Константы для логирования.
const (
	LogServerStarting = "Starting gRPC server"
	LogServerStarted  = "gRPC server started"
	LogServerStopping = "Stopping gRPC server"
	LogServerStopped  = "gRPC server stopped"
	LogHealthChanged  = "health status changed"
	ErrServerStart    = "failed to start gRPC server"
	ErrServerServe    = "gRPC server stopped with error"

	pingTimeout     = 2 * time.Second
	defaultInterval = 10 * time.Second
)

// Server представляет gRPC сервер со службой health.
type Server struct {
	cfg    *config.GRPCConfig
	server *grpc.Server
	health *health.Server

	mu       sync.Mutex
	listener net.Listener
}

// New создает новый экземпляр gRPC сервера.
func New(cfg *config.GRPCConfig) *Server {
	s := &Server{
		cfg:    cfg,
		server: grpc.NewServer(),
		health: health.NewServer(),
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Start запускает gRPC сервер.
func (s *Server) Start(ctx context.Context) error {
	log := logger.Log(ctx)
	address := s.cfg.GetAddress()

	log.Info(ctx, LogServerStarting, zap.String("address", address))

	listener, err := net.Listen("tcp", address)
	if err != nil {
		log.Error(ctx, ErrServerStart, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrServerStart, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil {
			log.Error(ctx, ErrServerServe, zap.Error(err))
		}
	}()

	log.Info(ctx, LogServerStarted, zap.String("address", listener.Addr().String()))
	return nil
}

// Addr возвращает адрес, на котором слушает сервер, или пустую строку до Start.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SetServing выставляет статус сервиса.
func (s *Server) SetServing(ctx context.Context, serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
	logger.Log(ctx).Debug(ctx, LogHealthChanged, zap.String("status", status.String()))
}

// MonitorHealth проверяет хранилище каждые interval и обновляет статус до отмены ctx.
func (s *Server) MonitorHealth(ctx context.Context, pinger repositories.Pinger, interval time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		err := pinger.Ping(pingCtx)
		if err != nil {
			logger.Log(ctx).Warn(ctx, LogHealthChanged, zap.Error(err))
		}
		s.SetServing(ctx, err == nil)
	}

	check()

	if interval <= 0 {
		interval = defaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Stop переводит сервис в NOT_SERVING и останавливает сервер.
func (s *Server) Stop(ctx context.Context) {
	log := logger.Log(ctx)

	log.Info(ctx, LogServerStopping)
	s.health.Shutdown()
	s.server.GracefulStop()
	log.Info(ctx, LogServerStopped)
}
