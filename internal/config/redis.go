package config

import (
	"time"

	"bloglist/pkg/db/redis"
)

// RedisConfig содержит настройки кэша идентичностей.
type RedisConfig struct {
	Enabled  bool          `yaml:"enabled" env:"BLOGLIST_REDIS_ENABLED" env-default:"false"`
	Host     string        `yaml:"host" env:"BLOGLIST_REDIS_HOST" env-default:"localhost"`
	Port     int           `yaml:"port" env:"BLOGLIST_REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"BLOGLIST_REDIS_PASSWORD" env-default:""`
	DB       int           `yaml:"db" env:"BLOGLIST_REDIS_DB" env-default:"0"`
	PoolSize int           `yaml:"pool_size" env:"BLOGLIST_REDIS_POOL_SIZE" env-default:"10"`
	Timeout  time.Duration `yaml:"timeout" env:"BLOGLIST_REDIS_TIMEOUT" env-default:"3s"`
	TTL      time.Duration `yaml:"ttl" env:"BLOGLIST_REDIS_IDENTITY_TTL" env-default:"5m"`
}

// ClientConfig преобразует настройки в конфигурацию клиента Redis.
func (r *RedisConfig) ClientConfig() *redis.Config {
	return &redis.Config{
		Host:     r.Host,
		Port:     r.Port,
		Password: r.Password,
		DB:       r.DB,
		PoolSize: r.PoolSize,
		Timeout:  r.Timeout,
	}
}
