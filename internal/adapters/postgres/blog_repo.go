package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

// blogColumns выбирает блог вместе с публичными полями владельца.
const blogColumns = `
        b.id::text, b.title, b.author, b.url, b.likes, b.user_id::text, b.comments,
        b.created_at, b.updated_at,
        COALESCE(u.id::text, ''), COALESCE(u.name, ''), COALESCE(u.username, '')
`

const (
	createBlogQuery = `
        INSERT INTO blogs (title, author, url, likes, user_id, comments)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id::text, created_at, updated_at
    `

	findBlogQuery = `SELECT` + blogColumns + `
        FROM blogs b LEFT JOIN users u ON u.id = b.user_id
        WHERE b.id = $1
    `

	findAllBlogsQuery = `SELECT` + blogColumns + `
        FROM blogs b LEFT JOIN users u ON u.id = b.user_id
        ORDER BY b.created_at, b.id
    `

	updateBlogQuery = `
        WITH b AS (
            UPDATE blogs
            SET title = $2, author = $3, url = $4, likes = $5,
                user_id = COALESCE($6::uuid, user_id), updated_at = now()
            WHERE id = $1
            RETURNING *
        )
        SELECT` + blogColumns + `
        FROM b LEFT JOIN users u ON u.id = b.user_id
    `

	appendCommentQuery = `
        WITH b AS (
            UPDATE blogs
            SET comments = array_append(comments, $2), updated_at = now()
            WHERE id = $1
            RETURNING *
        )
        SELECT` + blogColumns + `
        FROM b LEFT JOIN users u ON u.id = b.user_id
    `

	deleteBlogQuery = `
        DELETE FROM blogs
        WHERE id = $1
    `
)

// BlogRepository реализует интерфейс repositories.BlogRepository для работы с Postgres.
type BlogRepository struct {
	pool PgxPoolInterface
}

// NewBlogRepository создает новый экземпляр репозитория блогов.
func NewBlogRepository(pool PgxPoolInterface) repositories.BlogRepository {
	return &BlogRepository{pool: pool}
}

// Create сохраняет блог. Владелец должен существовать.
func (r *BlogRepository) Create(ctx context.Context, blog *entities.Blog) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "Create"))

	if _, err := uuid.Parse(blog.UserID); err != nil {
		return nil, entities.ErrUserNotFound
	}

	created := blog.Clone()
	if created.Comments == nil {
		created.Comments = []string{}
	}
	err := querier(ctx, r.pool).QueryRow(ctx, createBlogQuery,
		blog.Title,
		blog.Author,
		blog.URL,
		blog.Likes,
		blog.UserID,
		created.Comments,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			log.Debug(ctx, "owner not found", zap.String("userID", blog.UserID))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error creating blog", zap.Error(err))
		return nil, fmt.Errorf("error creating blog: %w", err)
	}

	return created, nil
}

// FindByID находит блог по ID.
func (r *BlogRepository) FindByID(ctx context.Context, id string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "FindByID"))

	if _, err := uuid.Parse(id); err != nil {
		log.Debug(ctx, "malformed blog id", zap.String("id", id))
		return nil, entities.ErrBlogNotFound
	}

	blog, err := scanBlog(querier(ctx, r.pool).QueryRow(ctx, findBlogQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "blog not found", zap.String("id", id))
			return nil, entities.ErrBlogNotFound
		}
		log.Error(ctx, "error finding blog", zap.Error(err))
		return nil, fmt.Errorf("error querying blog by id: %w", err)
	}

	return blog, nil
}

// FindAll возвращает все блоги в порядке создания.
func (r *BlogRepository) FindAll(ctx context.Context) ([]*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "FindAll"))

	rows, err := querier(ctx, r.pool).Query(ctx, findAllBlogsQuery)
	if err != nil {
		log.Error(ctx, "error listing blogs", zap.Error(err))
		return nil, fmt.Errorf("error listing blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]*entities.Blog, 0)
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			log.Error(ctx, "error scanning blog", zap.Error(err))
			return nil, fmt.Errorf("error scanning blog: %w", err)
		}
		blogs = append(blogs, blog)
	}
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating blogs", zap.Error(err))
		return nil, fmt.Errorf("error iterating blogs: %w", err)
	}

	return blogs, nil
}

// Update заменяет поля блога. Несуществующий новый владелец возвращает entities.ErrUserNotFound.
func (r *BlogRepository) Update(ctx context.Context, id string, fields entities.BlogFields) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "Update"))

	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrBlogNotFound
	}

	var owner interface{}
	if fields.UserID != nil {
		if _, err := uuid.Parse(*fields.UserID); err != nil {
			return nil, entities.ErrUserNotFound
		}
		owner = *fields.UserID
	}

	blog, err := scanBlog(querier(ctx, r.pool).QueryRow(ctx, updateBlogQuery,
		id,
		fields.Title,
		fields.Author,
		fields.URL,
		fields.Likes,
		owner,
	))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			log.Debug(ctx, "blog not found for update", zap.String("id", id))
			return nil, entities.ErrBlogNotFound
		case hasPgCode(err, pgForeignKeyViolation):
			log.Debug(ctx, "new owner not found", zap.Any("userID", owner))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error updating blog", zap.Error(err))
		return nil, fmt.Errorf("error updating blog: %w", err)
	}

	return blog, nil
}

// AppendComment добавляет комментарий в конец списка.
func (r *BlogRepository) AppendComment(ctx context.Context, id, comment string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "AppendComment"))

	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrBlogNotFound
	}

	blog, err := scanBlog(querier(ctx, r.pool).QueryRow(ctx, appendCommentQuery, id, comment))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "blog not found for comment", zap.String("id", id))
			return nil, entities.ErrBlogNotFound
		}
		log.Error(ctx, "error appending comment", zap.Error(err))
		return nil, fmt.Errorf("error appending comment: %w", err)
	}

	return blog, nil
}

// Delete удаляет блог по ID.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	log := logger.Log(ctx).With(zap.String("repository", "blog"), zap.String("method", "Delete"))

	if _, err := uuid.Parse(id); err != nil {
		return entities.ErrBlogNotFound
	}

	result, err := querier(ctx, r.pool).Exec(ctx, deleteBlogQuery, id)
	if err != nil {
		log.Error(ctx, "error deleting blog", zap.Error(err))
		return fmt.Errorf("error deleting blog: %w", err)
	}

	if result.RowsAffected() == 0 {
		log.Debug(ctx, "blog not found for deletion", zap.String("id", id))
		return entities.ErrBlogNotFound
	}

	return nil
}

func scanBlog(row pgx.Row) (*entities.Blog, error) {
	var blog entities.Blog
	var owner entities.Owner
	err := row.Scan(
		&blog.ID,
		&blog.Title,
		&blog.Author,
		&blog.URL,
		&blog.Likes,
		&blog.UserID,
		&blog.Comments,
		&blog.CreatedAt,
		&blog.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Username,
	)
	if err != nil {
		return nil, err
	}
	if blog.Comments == nil {
		blog.Comments = []string{}
	}
	if owner.ID != "" {
		blog.User = &owner
	}
	return &blog, nil
}
