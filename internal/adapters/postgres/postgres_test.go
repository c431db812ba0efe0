package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloglist/internal/adapters/postgres"
	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	userID  = "7f0c2a4e-1b1d-4c55-9a61-5b7f1f0e9a01"
	userID2 = "7f0c2a4e-1b1d-4c55-9a61-5b7f1f0e9a02"
	blogID  = "3d7b5f0c-8e2a-4b8f-9c3e-2a1f4e6d7b01"
	blogID2 = "3d7b5f0c-8e2a-4b8f-9c3e-2a1f4e6d7b02"
)

var (
	errDatabase = errors.New("database connection error")
	blogCols    = []string{
		"id", "title", "author", "url", "likes", "user_id", "comments",
		"created_at", "updated_at", "owner_id", "owner_name", "owner_username",
	}
)

func testContext(t *testing.T) context.Context {
	t.Helper()
	testLogger, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)
	return logger.NewContext(context.Background(), testLogger)
}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func blogRow(rows *pgxmock.Rows, id string, likes int, comments []string) *pgxmock.Rows {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return rows.AddRow(id, "React patterns", "Michael Chan", "https://reactpatterns.com/", likes, userID,
		comments, now, now, userID, "Superuser", "root")
}

func TestRepositoryFactory(t *testing.T) {
	mock := newMock(t)
	factory := postgres.NewRepositoryFactory(mock)

	assert.Implements(t, (*repositories.UserRepository)(nil), factory.UserRepository())
	assert.Implements(t, (*repositories.BlogRepository)(nil), factory.BlogRepository())
	assert.Implements(t, (*repositories.Transactor)(nil), factory.Transactor())

	mock.ExpectExec("TRUNCATE user_blogs, blogs, users").WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))
	require.NoError(t, factory.Reset(context.Background()))

	mock.ExpectPing().WillReturnError(errDatabase)
	require.ErrorIs(t, factory.Ping(context.Background()), errDatabase)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create(t *testing.T) {
	ctx := testContext(t)
	input := &entities.User{Username: "root", Name: "Superuser", PasswordHash: "hash"}

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		created := time.Now().UTC().Truncate(time.Microsecond)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("root", "Superuser", "hash").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(userID, created))

		user, err := postgres.NewUserRepository(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)
		assert.Equal(t, "root", user.Username)
		assert.Equal(t, []string{}, user.Blogs)
		assert.Equal(t, created, user.CreatedAt)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate username", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").
			WithArgs("root", "Superuser", "hash").
			WillReturnError(&pgconn.PgError{Code: "23505"})

		user, err := postgres.NewUserRepository(mock).Create(ctx, input)

		assert.Nil(t, user)
		require.ErrorIs(t, err, entities.ErrUsernameTaken)
	})

	t.Run("database failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO users").WillReturnError(errDatabase)

		_, err := postgres.NewUserRepository(mock).Create(ctx, input)

		require.ErrorIs(t, err, errDatabase)
		assert.Contains(t, err.Error(), "error creating user")
	})
}

func TestUserRepository_Find(t *testing.T) {
	ctx := testContext(t)
	cols := []string{"id", "username", "name", "password_hash", "created_at", "blogs"}

	t.Run("by id with back-references", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE u.id = \$1`).
			WithArgs(userID).
			WillReturnRows(pgxmock.NewRows(cols).
				AddRow(userID, "root", "Superuser", "hash", time.Now(), []string{blogID, blogID2}))

		user, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.NoError(t, err)
		assert.Equal(t, []string{blogID, blogID2}, user.Blogs)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("by username not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE u.username = \$1`).
			WithArgs("nobody").
			WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewUserRepository(mock).FindByUsername(ctx, "nobody")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})

	t.Run("malformed id skips the query", func(t *testing.T) {
		mock := newMock(t)

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, "not-a-uuid")

		require.ErrorIs(t, err, entities.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure is not not-found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE u.id = \$1`).WithArgs(userID).WillReturnError(errDatabase)

		_, err := postgres.NewUserRepository(mock).FindByID(ctx, userID)

		require.ErrorIs(t, err, errDatabase)
		assert.False(t, errors.Is(err, entities.ErrUserNotFound))
	})
}

func TestUserRepository_AppendBlog(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectExec("INSERT INTO user_blogs").
		WithArgs(userID, blogID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO user_blogs").
		WithArgs(userID2, blogID).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	repo := postgres.NewUserRepository(mock)
	require.NoError(t, repo.AppendBlog(ctx, userID, blogID))
	require.ErrorIs(t, repo.AppendBlog(ctx, userID2, blogID), entities.ErrUserNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAllProfiles(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectQuery("SELECT u.id::text, u.username, u.name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "name"}).
			AddRow(userID, "root", "Superuser").
			AddRow(userID2, "hellas", "Arto Hellas"))
	mock.ExpectQuery("FROM user_blogs ub").
		WillReturnRows(pgxmock.NewRows([]string{"user_id", "id", "title", "author", "url"}).
			AddRow(userID, blogID, "First", "A", "http://a").
			AddRow(userID, blogID2, "Second", "B", "http://b"))

	profiles, err := postgres.NewUserRepository(mock).FindAllProfiles(ctx)

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, []entities.BlogSummary{
		{ID: blogID, Title: "First", Author: "A", URL: "http://a"},
		{ID: blogID2, Title: "Second", Author: "B", URL: "http://b"},
	}, profiles[0].Blogs)
	assert.Empty(t, profiles[1].Blogs)
	assert.NotNil(t, profiles[1].Blogs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Create(t *testing.T) {
	ctx := testContext(t)
	input := &entities.Blog{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 7, UserID: userID}

	t.Run("success", func(t *testing.T) {
		mock := newMock(t)
		now := time.Now().UTC().Truncate(time.Microsecond)
		mock.ExpectQuery("INSERT INTO blogs").
			WithArgs("React patterns", "Michael Chan", "https://reactpatterns.com/", 7, userID, []string{}).
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(blogID, now, now))

		blog, err := postgres.NewBlogRepository(mock).Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, blogID, blog.ID)
		assert.Equal(t, 7, blog.Likes)
		assert.Empty(t, input.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("INSERT INTO blogs").WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := postgres.NewBlogRepository(mock).Create(ctx, input)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestBlogRepository_FindByID(t *testing.T) {
	ctx := testContext(t)

	t.Run("populates owner", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE b.id = \$1`).
			WithArgs(blogID).
			WillReturnRows(blogRow(pgxmock.NewRows(blogCols), blogID, 5, []string{"nice"}))

		blog, err := postgres.NewBlogRepository(mock).FindByID(ctx, blogID)

		require.NoError(t, err)
		assert.Equal(t, &entities.Owner{ID: userID, Name: "Superuser", Username: "root"}, blog.User)
		assert.Equal(t, userID, blog.UserID)
		assert.Equal(t, []string{"nice"}, blog.Comments)
	})

	t.Run("missing", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`WHERE b.id = \$1`).WithArgs(blogID).WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewBlogRepository(mock).FindByID(ctx, blogID)

		require.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		mock := newMock(t)

		_, err := postgres.NewBlogRepository(mock).FindByID(ctx, "12345")

		require.ErrorIs(t, err, entities.ErrBlogNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBlogRepository_FindAll(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	rows := pgxmock.NewRows(blogCols)
	blogRow(rows, blogID, 1, []string{})
	blogRow(rows, blogID2, 2, []string{})
	mock.ExpectQuery("ORDER BY b.created_at").WillReturnRows(rows)

	blogs, err := postgres.NewBlogRepository(mock).FindAll(ctx)

	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, blogID, blogs[0].ID)
	assert.Equal(t, blogID2, blogs[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Update(t *testing.T) {
	ctx := testContext(t)
	fields := entities.BlogFields{Title: "React patterns", Author: "Michael Chan", URL: "https://reactpatterns.com/", Likes: 9}

	t.Run("keeps owner when not overridden", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE blogs").
			WithArgs(blogID, fields.Title, fields.Author, fields.URL, 9, nil).
			WillReturnRows(blogRow(pgxmock.NewRows(blogCols), blogID, 9, []string{}))

		blog, err := postgres.NewBlogRepository(mock).Update(ctx, blogID, fields)

		require.NoError(t, err)
		assert.Equal(t, 9, blog.Likes)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing blog", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery("UPDATE blogs").WillReturnError(pgx.ErrNoRows)

		_, err := postgres.NewBlogRepository(mock).Update(ctx, blogID, fields)

		require.ErrorIs(t, err, entities.ErrBlogNotFound)
	})

	t.Run("unknown new owner", func(t *testing.T) {
		mock := newMock(t)
		override := fields
		override.UserID = func() *string { s := userID2; return &s }()
		mock.ExpectQuery("UPDATE blogs").
			WithArgs(blogID, fields.Title, fields.Author, fields.URL, 9, userID2).
			WillReturnError(&pgconn.PgError{Code: "23503"})

		_, err := postgres.NewBlogRepository(mock).Update(ctx, blogID, override)

		require.ErrorIs(t, err, entities.ErrUserNotFound)
	})
}

func TestBlogRepository_AppendComment(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectQuery("array_append").
		WithArgs(blogID, "second").
		WillReturnRows(blogRow(pgxmock.NewRows(blogCols), blogID, 0, []string{"first", "second"}))
	mock.ExpectQuery("array_append").
		WithArgs(blogID2, "hello").
		WillReturnError(pgx.ErrNoRows)

	repo := postgres.NewBlogRepository(mock)
	blog, err := repo.AppendComment(ctx, blogID, "second")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, blog.Comments)

	_, err = repo.AppendComment(ctx, blogID2, "hello")
	require.ErrorIs(t, err, entities.ErrBlogNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBlogRepository_Delete(t *testing.T) {
	ctx := testContext(t)

	mock := newMock(t)
	mock.ExpectExec("DELETE FROM blogs").WithArgs(blogID).WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM blogs").WithArgs(blogID).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM blogs").WithArgs(blogID2).WillReturnError(errDatabase)

	repo := postgres.NewBlogRepository(mock)
	require.NoError(t, repo.Delete(ctx, blogID))
	require.ErrorIs(t, repo.Delete(ctx, blogID), entities.ErrNotFound)

	err := repo.Delete(ctx, blogID2)
	require.ErrorIs(t, err, errDatabase)
	assert.False(t, errors.Is(err, entities.ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager(t *testing.T) {
	ctx := testContext(t)

	t.Run("commits both writes", func(t *testing.T) {
		mock := newMock(t)
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO blogs").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(blogID, now, now))
		mock.ExpectExec("INSERT INTO user_blogs").
			WithArgs(userID, blogID).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		factory := postgres.NewRepositoryFactory(mock)
		err := factory.Transactor().WithinTransaction(ctx, func(ctx context.Context) error {
			blog, err := factory.BlogRepository().Create(ctx, &entities.Blog{Title: "t", Author: "a", URL: "u", UserID: userID})
			if err != nil {
				return err
			}
			return factory.UserRepository().AppendBlog(ctx, userID, blog.ID)
		})

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		mock := newMock(t)
		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO blogs").
			WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(blogID, now, now))
		mock.ExpectExec("INSERT INTO user_blogs").WillReturnError(errDatabase)
		mock.ExpectRollback()

		factory := postgres.NewRepositoryFactory(mock)
		err := factory.Transactor().WithinTransaction(ctx, func(ctx context.Context) error {
			blog, err := factory.BlogRepository().Create(ctx, &entities.Blog{Title: "t", Author: "a", URL: "u", UserID: userID})
			if err != nil {
				return err
			}
			return factory.UserRepository().AppendBlog(ctx, userID, blog.ID)
		})

		require.ErrorIs(t, err, errDatabase)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectBegin().WillReturnError(errDatabase)

		called := false
		err := postgres.NewTxManager(mock).WithinTransaction(ctx, func(context.Context) error {
			called = true
			return nil
		})

		require.ErrorIs(t, err, errDatabase)
		assert.False(t, called)
	})
}
