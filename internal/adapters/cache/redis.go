// Package cache содержит кэш идентичностей на Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/cache"
	pkgredis "bloglist/pkg/db/redis"
	"bloglist/pkg/logger"
	"bloglist/pkg/resilience"
)

// Константы для логирования.
const (
	LogMethodGet   = "get"
	LogMethodSet   = "set"
	LogMethodClose = "close"
	LogMethodFlush = "flush"
	LogFlushed     = "identity cache flushed"

	ErrorFailedToGet    = "failed to get identity from redis"
	ErrorFailedToSet    = "failed to set identity in redis"
	ErrorFailedToDecode = "failed to decode cached identity"
	ErrorFailedToClose  = "failed to close redis connection"
	ErrorFailedToFlush  = "failed to flush identity cache"

	keyPrefix   = "bloglist:identity:"
	breakerName = "redis-identity-cache"
)

// cachedIdentity - публичные поля пользователя, которые попадают в кэш.
type cachedIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// IdentityCache реализует cache.IdentityCache поверх клиента Redis.
// После серии ошибок Redis вызовы отклоняются сразу с resilience.ErrCircuitOpen,
// и запросы обслуживаются хранилищем без ожидания таймаутов.
type IdentityCache struct {
	client  *pkgredis.Client
	ttl     time.Duration
	breaker *resilience.CircuitBreaker
}

// NewIdentityCache создает кэш с временем жизни записей ttl.
func NewIdentityCache(client *pkgredis.Client, ttl time.Duration) *IdentityCache {
	return &IdentityCache{
		client:  client,
		ttl:     ttl,
		breaker: resilience.NewCircuitBreaker(breakerName, resilience.DefaultCircuitBreakerConfig()),
	}
}

var _ cache.IdentityCache = (*IdentityCache)(nil)

// Get возвращает пользователя из кэша. Отсутствие записи - это false без ошибки.
func (c *IdentityCache) Get(ctx context.Context, userID string) (*entities.User, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodGet), zap.String("userID", userID))

	var raw string
	found := false
	err := c.breaker.Execute(ctx, func(ctx context.Context) error {
		value, err := c.client.Get(ctx, keyPrefix+userID)
		if pkgredis.IsNil(err) {
			return nil
		}
		if err != nil {
			return err
		}
		raw, found = value, true
		return nil
	})
	if err != nil {
		if !errors.Is(err, resilience.ErrCircuitOpen) {
			log.Error(ctx, ErrorFailedToGet, zap.Error(err))
		}
		return nil, false, fmt.Errorf("%s: %w", ErrorFailedToGet, err)
	}
	if !found {
		return nil, false, nil
	}

	var identity cachedIdentity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		log.Warn(ctx, ErrorFailedToDecode, zap.Error(err))
		return nil, false, fmt.Errorf("%s: %w", ErrorFailedToDecode, err)
	}

	return &entities.User{
		ID:       identity.ID,
		Username: identity.Username,
		Name:     identity.Name,
	}, true, nil
}

// Set сохраняет публичные поля пользователя.
func (c *IdentityCache) Set(ctx context.Context, user *entities.User) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSet), zap.String("userID", user.ID))

	payload, err := json.Marshal(cachedIdentity{ID: user.ID, Username: user.Username, Name: user.Name})
	if err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	err = c.breaker.Execute(ctx, func(ctx context.Context) error {
		return c.client.Set(ctx, keyPrefix+user.ID, payload, c.ttl)
	})
	if err != nil {
		log.Error(ctx, ErrorFailedToSet, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSet, err)
	}

	return nil
}

// Flush удаляет все закэшированные идентичности в обход Circuit Breaker.
func (c *IdentityCache) Flush(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodFlush))

	deleted, err := c.client.DeleteByPrefix(ctx, keyPrefix)
	if err != nil {
		log.Error(ctx, ErrorFailedToFlush, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToFlush, err)
	}

	log.Info(ctx, LogFlushed, zap.Int("deleted", deleted))
	return nil
}

// Close закрывает соединение с Redis.
func (c *IdentityCache) Close() error {
	if err := c.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}
