// Package main реализует точку входа API блогов.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"bloglist/internal/adapters/cache"
	"bloglist/internal/adapters/grpc"
	httpServer "bloglist/internal/adapters/http"
	"bloglist/internal/adapters/services"
	"bloglist/internal/app"
	"bloglist/internal/config"
	"bloglist/internal/db"
	portcache "bloglist/internal/ports/cache"
	"bloglist/pkg/db/redis"
	"bloglist/pkg/logger"
	"bloglist/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "BLOGLIST_LOGGER_MODE"
	EnvLoggerLevel = "BLOGLIST_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrInitStorage          = "failed to initialize storage"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrStartGRPC            = "failed to start gRPC health server"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "bloglist service started"
	LogServiceShutdownDone = "bloglist service shutdown complete"
	LogInitStorage         = "initializing storage"
	LogInitCache           = "initializing identity cache"
	LogCacheDisabled       = "identity cache disabled"
	LogInitServices        = "initializing services"
	LogInitUseCases        = "initializing use cases"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStartingGRPC        = "starting gRPC health server"
	LogTestingRoutes       = "testing routes enabled"
	LogStoppingHTTP        = "stopping HTTP server"
	LogStoppingGRPC        = "stopping gRPC health server"
	LogClosingStorage      = "closing storage"
	LogClosingCache        = "closing Redis connection"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitStorage)
		storage, err := db.Open(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrInitStorage, zap.Error(err))
			exitCode = 1
			return
		}

		var identityCache portcache.IdentityCache
		if cfg.Redis.Enabled {
			log.Info(ctx, LogInitCache)
			client, err := redis.NewClient(ctx, cfg.Redis.ClientConfig())
			if err != nil {
				log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
				storage.Close(ctx)
				exitCode = 1
				return
			}
			identityCache = cache.NewIdentityCache(client, cfg.Redis.TTL)
		} else {
			log.Info(ctx, LogCacheDisabled)
		}

		log.Info(ctx, LogInitServices)
		serviceFactory := services.NewServiceFactory(cfg.JWT.SecretKey, cfg.JWT.BCryptCost)

		log.Info(ctx, LogInitUseCases)
		deps := httpServer.Deps{
			Auth:  app.NewAuthUseCase(storage.Users, serviceFactory.PasswordService(), serviceFactory.TokenService()),
			Users: app.NewUserUseCase(storage.Users, serviceFactory.TokenService(), identityCache),
			Blogs: app.NewBlogUseCase(storage.Blogs, storage.Users, storage.Tx),
		}
		if cfg.Testing.Enabled {
			log.Warn(ctx, LogTestingRoutes)
			deps.Resetter = app.NewResetUseCase(storage.Resetter, identityCache)
		}

		log.Info(ctx, LogStartingGRPC)
		grpcServer := grpc.New(&cfg.GRPC)
		if err := grpcServer.Start(ctx); err != nil {
			log.Error(ctx, ErrStartGRPC, zap.Error(err))
			storage.Close(ctx)
			exitCode = 1
			return
		}

		monitorCtx, stopMonitor := context.WithCancel(ctx)
		go grpcServer.MonitorHealth(monitorCtx, storage.Pinger, cfg.GRPC.HealthInterval)

		log.Info(ctx, LogInitHTTPServer)
		fiberApp := httpServer.NewApp(&cfg.HTTP)
		httpServer.SetupRouter(fiberApp, deps)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.ShutdownWithContext(ctx)
			},
			// Остановка gRPC сервера и проверки состояния.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingGRPC)
				stopMonitor()
				grpcServer.Stop(ctx)
				return nil
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				if identityCache == nil {
					return nil
				}
				log.Info(ctx, LogClosingCache)
				return identityCache.Close()
			},
		)

		// Хранилище закрывается после остановки серверов.
		log.Info(ctx, LogClosingStorage)
		storage.Close(ctx)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
