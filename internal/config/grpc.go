package config

import (
	"fmt"
	"time"
)

// GRPCConfig конфигурация gRPC сервера проверки состояния.
type GRPCConfig struct {
	Host           string        `yaml:"host" env:"BLOGLIST_GRPC_HOST" env-default:"0.0.0.0"`
	Port           int           `yaml:"port" env:"BLOGLIST_GRPC_PORT" env-default:"50051"`
	HealthInterval time.Duration `yaml:"health_interval" env:"BLOGLIST_GRPC_HEALTH_INTERVAL" env-default:"10s"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
