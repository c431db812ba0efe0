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

const (
	createUserQuery = `
        INSERT INTO users (username, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id::text, created_at
    `

	selectUserQuery = `
        SELECT u.id::text, u.username, u.name, u.password_hash, u.created_at,
               ARRAY(SELECT ub.blog_id::text FROM user_blogs ub WHERE ub.user_id = u.id ORDER BY ub.position)
        FROM users u
    `

	appendBlogQuery = `
        INSERT INTO user_blogs (user_id, blog_id)
        VALUES ($1, $2)
    `

	listUsersQuery = `
        SELECT u.id::text, u.username, u.name
        FROM users u
        ORDER BY u.created_at, u.id
    `

	listUserBlogsQuery = `
        SELECT ub.user_id::text, b.id::text, b.title, b.author, b.url
        FROM user_blogs ub
        JOIN blogs b ON b.id = ub.blog_id
        ORDER BY ub.position
    `
)

// UserRepository реализует интерфейс repositories.UserRepository для работы с Postgres.
type UserRepository struct {
	pool PgxPoolInterface
}

// NewUserRepository создает новый экземпляр репозитория пользователей.
func NewUserRepository(pool PgxPoolInterface) repositories.UserRepository {
	return &UserRepository{pool: pool}
}

// Create создает нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "Create"))

	created := &entities.User{
		Username:     user.Username,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		Blogs:        []string{},
	}
	err := querier(ctx, r.pool).QueryRow(ctx, createUserQuery,
		user.Username,
		user.Name,
		user.PasswordHash,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if hasPgCode(err, pgUniqueViolation) {
			log.Debug(ctx, "username already taken", zap.String("username", user.Username))
			return nil, entities.ErrUsernameTaken
		}
		log.Error(ctx, "error creating user", zap.Error(err))
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// FindByID находит пользователя по ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, entities.ErrUserNotFound
	}
	return r.findOne(ctx, "FindByID", "WHERE u.id = $1", id)
}

// FindByUsername находит пользователя по имени.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, "FindByUsername", "WHERE u.username = $1", username)
}

func (r *UserRepository) findOne(ctx context.Context, method, where string, arg string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", method))

	var user entities.User
	err := querier(ctx, r.pool).QueryRow(ctx, selectUserQuery+where, arg).Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.Blogs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Debug(ctx, "user not found", zap.String("key", arg))
			return nil, entities.ErrUserNotFound
		}
		log.Error(ctx, "error finding user", zap.Error(err))
		return nil, fmt.Errorf("error querying user: %w", err)
	}
	if user.Blogs == nil {
		user.Blogs = []string{}
	}

	return &user, nil
}

// AppendBlog добавляет блог в конец обратных ссылок пользователя.
func (r *UserRepository) AppendBlog(ctx context.Context, userID, blogID string) error {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "AppendBlog"))

	if _, err := uuid.Parse(userID); err != nil {
		return entities.ErrUserNotFound
	}

	if _, err := querier(ctx, r.pool).Exec(ctx, appendBlogQuery, userID, blogID); err != nil {
		if hasPgCode(err, pgForeignKeyViolation) {
			log.Debug(ctx, "user not found", zap.String("id", userID))
			return entities.ErrUserNotFound
		}
		log.Error(ctx, "error linking blog to user", zap.Error(err))
		return fmt.Errorf("error linking blog to user: %w", err)
	}

	return nil
}

// FindAllProfiles возвращает пользователей в порядке регистрации с их блогами.
// Ссылки на удаленные блоги пропускаются.
func (r *UserRepository) FindAllProfiles(ctx context.Context) ([]*entities.UserProfile, error) {
	log := logger.Log(ctx).With(zap.String("repository", "user"), zap.String("method", "FindAllProfiles"))
	q := querier(ctx, r.pool)

	rows, err := q.Query(ctx, listUsersQuery)
	if err != nil {
		log.Error(ctx, "error listing users", zap.Error(err))
		return nil, fmt.Errorf("error listing users: %w", err)
	}

	profiles := make([]*entities.UserProfile, 0)
	byID := make(map[string]*entities.UserProfile)
	for rows.Next() {
		profile := &entities.UserProfile{Blogs: []entities.BlogSummary{}}
		if err := rows.Scan(&profile.ID, &profile.Username, &profile.Name); err != nil {
			rows.Close()
			log.Error(ctx, "error scanning user", zap.Error(err))
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		profiles = append(profiles, profile)
		byID[profile.ID] = profile
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		log.Error(ctx, "error iterating users", zap.Error(err))
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	blogRows, err := q.Query(ctx, listUserBlogsQuery)
	if err != nil {
		log.Error(ctx, "error listing user blogs", zap.Error(err))
		return nil, fmt.Errorf("error listing user blogs: %w", err)
	}
	defer blogRows.Close()

	for blogRows.Next() {
		var userID string
		var summary entities.BlogSummary
		if err := blogRows.Scan(&userID, &summary.ID, &summary.Title, &summary.Author, &summary.URL); err != nil {
			log.Error(ctx, "error scanning user blog", zap.Error(err))
			return nil, fmt.Errorf("error scanning user blog: %w", err)
		}
		if profile, ok := byID[userID]; ok {
			profile.Blogs = append(profile.Blogs, summary)
		}
	}
	if err := blogRows.Err(); err != nil {
		log.Error(ctx, "error iterating user blogs", zap.Error(err))
		return nil, fmt.Errorf("error iterating user blogs: %w", err)
	}

	return profiles, nil
}
