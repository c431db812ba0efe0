package config

import (
	"errors"
	"fmt"
)

// Поддерживаемые драйверы хранилища.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// ErrUnknownStorageDriver возвращается для неподдерживаемого драйвера.
var ErrUnknownStorageDriver = errors.New("unknown storage driver")

// StorageConfig выбирает реализацию хранилища.
type StorageConfig struct {
	Driver        string `yaml:"driver" env:"BLOGLIST_STORAGE_DRIVER" env-default:"postgres"`
	MigrationsDir string `yaml:"migrations_dir" env:"BLOGLIST_MIGRATIONS_DIR" env-default:"migrations/bloglist"`
}

// Validate проверяет, что драйвер известен.
func (s *StorageConfig) Validate() error {
	switch s.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, s.Driver)
	}
}
