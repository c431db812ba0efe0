// Package services содержит доменные типы сервисов аутентификации.
package services

import "errors"

// Ошибки сервисов аутентификации.
var (
	ErrTokenGenerationFailed = errors.New("failed to generate authentication token")
	ErrHashingFailed         = errors.New("failed to hash password")
	ErrInvalidAlgorithm      = errors.New("invalid signing algorithm")
)

// Session - результат успешного входа.
type Session struct {
	Token    string `json:"token"`
	UserID   string `json:"-"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenClaims - содержимое токена в доменных терминах.
type TokenClaims struct {
	UserID   string
	Username string
}
