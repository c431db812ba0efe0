package services

import (
	"context"

	"bloglist/internal/domain/services"
)

// TokenService подписывает и проверяет bearer-токены.
type TokenService interface {
	GenerateToken(ctx context.Context, claims services.TokenClaims) (string, error)

	// ValidateToken возвращает claims или ошибку entities.ErrInvalidToken.
	ValidateToken(ctx context.Context, token string) (*services.TokenClaims, error)
}
