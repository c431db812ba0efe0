// Package cache определяет порт кэша идентичностей.
package cache

import (
	"context"

	"bloglist/internal/domain/entities"
)

// IdentityCache хранит пользователей, найденных по токену.
// Кэшируются только публичные поля, хэш пароля никогда не попадает в кэш.
type IdentityCache interface {
	Get(ctx context.Context, userID string) (*entities.User, bool, error)

	Set(ctx context.Context, user *entities.User) error

	// Flush удаляет все записи. Вызывается, когда пользователи удалены из хранилища.
	Flush(ctx context.Context) error

	Close() error
}
