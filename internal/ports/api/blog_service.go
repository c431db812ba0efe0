package api

import (
	"context"

	"bloglist/internal/domain/entities"
)

// CreateBlogInput - поля нового блога. nil означает, что поле не передано.
type CreateBlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// UpdateBlogInput - поля полной замены блога. UserID переназначает владельца.
type UpdateBlogInput struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
	UserID *string
}

// BlogUseCase определяет жизненный цикл блогов.
type BlogUseCase interface {
	ListAll(ctx context.Context) ([]*entities.Blog, error)

	Get(ctx context.Context, blogID string) (*entities.Blog, error)

	Create(ctx context.Context, identity *entities.User, in CreateBlogInput) (*entities.Blog, error)

	Update(ctx context.Context, blogID string, in UpdateBlogInput) (*entities.Blog, error)

	Delete(ctx context.Context, identity *entities.User, blogID string) error

	AddComment(ctx context.Context, blogID, comment string) (*entities.Blog, error)
}
