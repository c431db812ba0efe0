// Package services определяет порты криптографических сервисов.
package services

import "context"

// PasswordService определяет операции для манипулирования паролем.
type PasswordService interface {
	Hash(ctx context.Context, password string) (string, error)

	// Verify сравнивает пароль с хэшем. Несовпадение - это false без ошибки.
	Verify(ctx context.Context, password, hash string) (bool, error)
}
