// Package repositories определяет порты хранилищ пользователей и блогов.
package repositories

import (
	"context"

	"bloglist/internal/domain/entities"
)

// UserRepository определяет операции хранилища учетных данных.
type UserRepository interface {
	// Create сохраняет пользователя. Занятое имя возвращает entities.ErrUsernameTaken.
	Create(ctx context.Context, user *entities.User) (*entities.User, error)

	FindByID(ctx context.Context, id string) (*entities.User, error)

	FindByUsername(ctx context.Context, username string) (*entities.User, error)

	// AppendBlog добавляет блог в обратные ссылки пользователя.
	AppendBlog(ctx context.Context, userID, blogID string) error

	// FindAllProfiles возвращает пользователей с развернутыми блогами.
	FindAllProfiles(ctx context.Context) ([]*entities.UserProfile, error)
}
