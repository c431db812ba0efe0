package config

import (
	"time"
)

// ShutdownConfig содержит настройки для graceful shutdown.
type ShutdownConfig struct {
	Timeout int `yaml:"timeout" env:"BLOGLIST_GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"5"`
}

// GetTimeout возвращает timeout как time.Duration.
func (s *ShutdownConfig) GetTimeout() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// TestingConfig включает служебные маршруты для e2e тестов.
type TestingConfig struct {
	Enabled bool `yaml:"enabled" env:"BLOGLIST_TESTING_ROUTES" env-default:"false"`
}
