// Package api определяет порты прикладного уровня.
package api

import (
	"context"

	"bloglist/internal/domain/entities"
	"bloglist/internal/domain/services"
)

// RegisterInput - данные регистрации.
type RegisterInput struct {
	Username string
	Name     string
	Password string
}

// AuthUseCase определяет регистрацию и вход.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (*entities.User, error)

	Login(ctx context.Context, username, password string) (*services.Session, error)
}

// UserUseCase определяет операции чтения пользователей.
type UserUseCase interface {
	// ResolveIdentity проверяет токен и возвращает его владельца.
	ResolveIdentity(ctx context.Context, token string) (*entities.User, error)

	ListUsers(ctx context.Context) ([]*entities.UserProfile, error)
}
