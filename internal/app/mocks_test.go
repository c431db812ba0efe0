package app_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bloglist/internal/domain/entities"
	"bloglist/internal/domain/services"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entities.User) (*entities.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *mockUserRepository) AppendBlog(ctx context.Context, userID, blogID string) error {
	return m.Called(ctx, userID, blogID).Error(0)
}

func (m *mockUserRepository) FindAllProfiles(ctx context.Context) ([]*entities.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.UserProfile), args.Error(1)
}

type mockBlogRepository struct {
	mock.Mock
}

func (m *mockBlogRepository) Create(ctx context.Context, blog *entities.Blog) (*entities.Blog, error) {
	args := m.Called(ctx, blog)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blog), args.Error(1)
}

func (m *mockBlogRepository) FindByID(ctx context.Context, id string) (*entities.Blog, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blog), args.Error(1)
}

func (m *mockBlogRepository) FindAll(ctx context.Context) ([]*entities.Blog, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Blog), args.Error(1)
}

func (m *mockBlogRepository) Update(ctx context.Context, id string, fields entities.BlogFields) (*entities.Blog, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blog), args.Error(1)
}

func (m *mockBlogRepository) AppendComment(ctx context.Context, id, comment string) (*entities.Blog, error) {
	args := m.Called(ctx, id, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Blog), args.Error(1)
}

func (m *mockBlogRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockPasswordService struct {
	mock.Mock
}

func (m *mockPasswordService) Hash(ctx context.Context, password string) (string, error) {
	args := m.Called(ctx, password)
	return args.String(0), args.Error(1)
}

func (m *mockPasswordService) Verify(ctx context.Context, password, hash string) (bool, error) {
	args := m.Called(ctx, password, hash)
	return args.Bool(0), args.Error(1)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) GenerateToken(ctx context.Context, claims services.TokenClaims) (string, error) {
	args := m.Called(ctx, claims)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) ValidateToken(ctx context.Context, token string) (*services.TokenClaims, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.TokenClaims), args.Error(1)
}

type mockIdentityCache struct {
	mock.Mock
}

func (m *mockIdentityCache) Get(ctx context.Context, userID string) (*entities.User, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*entities.User), args.Bool(1), args.Error(2)
}

func (m *mockIdentityCache) Set(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockIdentityCache) Flush(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockIdentityCache) Close() error {
	return m.Called().Error(0)
}

// inlineTransactor выполняет функцию без настоящей транзакции и считает вызовы.
type inlineTransactor struct {
	calls int
}

func (t *inlineTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func ptr[T any](v T) *T {
	return &v
}

type mockResetter struct {
	mock.Mock
}

func (m *mockResetter) Reset(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
