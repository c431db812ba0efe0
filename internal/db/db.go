// Package db открывает хранилище блогов, выбранное в конфигурации.
package db

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"bloglist/internal/adapters/memory"
	pgadapter "bloglist/internal/adapters/postgres"
	"bloglist/internal/config"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/db/postgres"
	"bloglist/pkg/logger"
	"bloglist/pkg/resilience"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing bloglist storage"
	LogDBInitialized     = "bloglist storage initialized successfully"
	LogMigrationStarting = "starting database migrations"
	LogMemoryStorage     = "using in-memory storage, data is lost on restart"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations = "failed to apply bloglist database migrations"
	ErrDBConnection = "failed to connect to bloglist database"
	ErrGetPath      = "failed to get path"
	ErrDBDriver     = "failed to select storage driver"
)

const filePrefix = "file://"

// Storage объединяет репозитории и служебные операции одного хранилища.
type Storage struct {
	Users    repositories.UserRepository
	Blogs    repositories.BlogRepository
	Tx       repositories.Transactor
	Resetter repositories.Resetter
	Pinger   repositories.Pinger

	closeFn func(ctx context.Context)
}

// Open открывает хранилище по cfg.Storage.Driver.
// Для postgres сначала применяются миграции, затем создается пул соединений.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	log := logger.Log(ctx).With(zap.String("driver", cfg.Storage.Driver))
	log.Info(ctx, LogDBInitializing)

	if err := cfg.Storage.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBDriver, err)
	}

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn(ctx, LogMemoryStorage)
		return NewMemory(), nil
	}

	migrationsPath, err := migrationsURL(cfg.Storage.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	log.Info(ctx, LogMigrationStarting,
		zap.String("migrations_path", migrationsPath),
		zap.String("host", cfg.Postgres.Host),
		zap.Int("port", cfg.Postgres.Port),
		zap.String("database", cfg.Postgres.Database))

	retry := resilience.NewRetry("postgres-connect", connectRetryConfig(&cfg.Postgres))

	err = retry.Execute(ctx, func(ctx context.Context) error {
		return postgres.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	var database *postgres.Database
	err = retry.Execute(ctx, func(ctx context.Context) error {
		var err error
		database, err = postgres.New(ctx, cfg.Postgres.GetDSN(), postgres.PoolOptions{
			MinConn: cfg.Postgres.MinConn,
			MaxConn: cfg.Postgres.MaxConn,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	storage := FromFactory(pgadapter.NewRepositoryFactory(database.Pool()))
	storage.closeFn = database.Close
	return storage, nil
}

// FromFactory собирает Storage из фабрики postgres репозиториев.
func FromFactory(factory *pgadapter.RepositoryFactory) *Storage {
	return &Storage{
		Users:    factory.UserRepository(),
		Blogs:    factory.BlogRepository(),
		Tx:       factory.Transactor(),
		Resetter: factory,
		Pinger:   factory,
	}
}

// NewMemory возвращает Storage поверх нового хранилища в памяти.
func NewMemory() *Storage {
	store := memory.New()
	return &Storage{
		Users:    store.Users(),
		Blogs:    store.Blogs(),
		Tx:       store,
		Resetter: store,
		Pinger:   store,
	}
}

// Close освобождает соединения хранилища.
func (s *Storage) Close(ctx context.Context) {
	if s.closeFn != nil {
		s.closeFn(ctx)
	}
}

func connectRetryConfig(cfg *config.PostgresConfig) resilience.RetryConfig {
	retryCfg := resilience.DefaultRetryConfig()
	retryCfg.MaxAttempts = cfg.ConnectAttempts
	if cfg.ConnectBackoff > 0 {
		retryCfg.InitialBackoff = cfg.ConnectBackoff
		retryCfg.MaxBackoff = 8 * cfg.ConnectBackoff
	}
	return retryCfg
}

func migrationsURL(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return filePrefix + dir, nil
	}
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrGetPath, err)
	}
	return filePrefix + absPath, nil
}
