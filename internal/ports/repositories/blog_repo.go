package repositories

import (
	"context"

	"bloglist/internal/domain/entities"
)

// BlogRepository определяет операции хранилища блогов.
// Методы чтения возвращают блоги с заполненным владельцем.
// Отсутствующая запись возвращает entities.ErrBlogNotFound.
type BlogRepository interface {
	Create(ctx context.Context, blog *entities.Blog) (*entities.Blog, error)

	FindByID(ctx context.Context, id string) (*entities.Blog, error)

	FindAll(ctx context.Context) ([]*entities.Blog, error)

	Update(ctx context.Context, id string, fields entities.BlogFields) (*entities.Blog, error)

	AppendComment(ctx context.Context, id, comment string) (*entities.Blog, error)

	Delete(ctx context.Context, id string) error
}
