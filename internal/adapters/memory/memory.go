// Package memory реализует хранилище в памяти для разработки и e2e тестов.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/repositories"
)

// Store хранит пользователей и блоги в порядке добавления под одним мьютексом.
// Значения копируются на входе и выходе и не разделяются с вызывающим кодом.
type Store struct {
	mu        sync.Mutex
	users     map[string]*entities.User
	userOrder []string
	blogs     map[string]*entities.Blog
	blogOrder []string
	now       func() time.Time
}

// New создает пустое хранилище.
func New() *Store {
	return &Store{
		users: make(map[string]*entities.User),
		blogs: make(map[string]*entities.Blog),
		now:   time.Now,
	}
}

// UserRepo - представление Store как repositories.UserRepository.
type UserRepo struct{ s *Store }

// BlogRepo - представление Store как repositories.BlogRepository.
type BlogRepo struct{ s *Store }

// Проверка реализации интерфейсов.
var (
	_ repositories.UserRepository = (*UserRepo)(nil)
	_ repositories.BlogRepository = (*BlogRepo)(nil)
	_ repositories.Transactor     = (*Store)(nil)
	_ repositories.Resetter       = (*Store)(nil)
	_ repositories.Pinger         = (*Store)(nil)
)

// Users возвращает репозиторий пользователей.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Blogs возвращает репозиторий блогов.
func (s *Store) Blogs() *BlogRepo { return &BlogRepo{s: s} }

// WithinTransaction просто вызывает fn. Записи применяются по одной и не откатываются.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Reset удаляет все данные.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[string]*entities.User)
	s.userOrder = nil
	s.blogs = make(map[string]*entities.Blog)
	s.blogOrder = nil
	return nil
}

// Ping всегда успешен.
func (s *Store) Ping(_ context.Context) error {
	return nil
}

// --- UserRepository ---

// Create сохраняет пользователя с новым id.
func (r *UserRepo) Create(_ context.Context, user *entities.User) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return nil, entities.ErrUsernameTaken
		}
	}

	stored := copyUser(user)
	stored.ID = uuid.NewString()
	stored.Blogs = []string{}
	stored.CreatedAt = s.now().UTC()

	s.users[stored.ID] = stored
	s.userOrder = append(s.userOrder, stored.ID)
	return copyUser(stored), nil
}

// FindByID возвращает пользователя по id.
func (r *UserRepo) FindByID(_ context.Context, id string) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return copyUser(user), nil
}

// FindByUsername возвращает пользователя по имени.
func (r *UserRepo) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.userOrder {
		if user := s.users[id]; user.Username == username {
			return copyUser(user), nil
		}
	}
	return nil, entities.ErrUserNotFound
}

// AppendBlog добавляет blogID в обратные ссылки пользователя.
func (r *UserRepo) AppendBlog(_ context.Context, userID, blogID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return entities.ErrUserNotFound
	}
	user.Blogs = append(user.Blogs, blogID)
	return nil
}

// FindAllProfiles возвращает пользователей в порядке регистрации с развернутыми блогами.
// Ссылки на удаленные блоги пропускаются.
func (r *UserRepo) FindAllProfiles(_ context.Context) ([]*entities.UserProfile, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	profiles := make([]*entities.UserProfile, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		user := s.users[id]
		profile := &entities.UserProfile{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
			Blogs:    make([]entities.BlogSummary, 0, len(user.Blogs)),
		}
		for _, blogID := range user.Blogs {
			blog, ok := s.blogs[blogID]
			if !ok {
				continue
			}
			profile.Blogs = append(profile.Blogs, entities.BlogSummary{
				ID:     blog.ID,
				Title:  blog.Title,
				Author: blog.Author,
				URL:    blog.URL,
			})
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// --- BlogRepository ---

// Create сохраняет блог с новым id. Владелец должен существовать.
func (r *BlogRepo) Create(_ context.Context, blog *entities.Blog) (*entities.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[blog.UserID]; !ok {
		return nil, entities.ErrUserNotFound
	}

	stored := blog.Clone()
	stored.ID = uuid.NewString()
	stored.User = nil
	now := s.now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.blogs[stored.ID] = stored
	s.blogOrder = append(s.blogOrder, stored.ID)
	return stored.Clone(), nil
}

// FindByID возвращает блог с заполненным владельцем.
func (r *BlogRepo) FindByID(_ context.Context, id string) (*entities.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok {
		return nil, entities.ErrBlogNotFound
	}
	return s.populate(blog), nil
}

// FindAll возвращает все блоги в порядке создания.
func (r *BlogRepo) FindAll(_ context.Context) ([]*entities.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	blogs := make([]*entities.Blog, 0, len(s.blogOrder))
	for _, id := range s.blogOrder {
		blogs = append(blogs, s.populate(s.blogs[id]))
	}
	return blogs, nil
}

// Update заменяет поля блога.
func (r *BlogRepo) Update(_ context.Context, id string, fields entities.BlogFields) (*entities.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok {
		return nil, entities.ErrBlogNotFound
	}
	if fields.UserID != nil {
		if _, ok := s.users[*fields.UserID]; !ok {
			return nil, entities.ErrUserNotFound
		}
		blog.UserID = *fields.UserID
	}

	blog.Title = fields.Title
	blog.Author = fields.Author
	blog.URL = fields.URL
	blog.Likes = fields.Likes
	blog.UpdatedAt = s.now().UTC()
	return s.populate(blog), nil
}

// AppendComment добавляет комментарий к блогу.
func (r *BlogRepo) AppendComment(_ context.Context, id, comment string) (*entities.Blog, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	blog, ok := s.blogs[id]
	if !ok {
		return nil, entities.ErrBlogNotFound
	}
	blog.Comments = append(blog.Comments, comment)
	blog.UpdatedAt = s.now().UTC()
	return s.populate(blog), nil
}

// Delete удаляет блог. Обратная ссылка у владельца остается.
func (r *BlogRepo) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return entities.ErrBlogNotFound
	}
	delete(s.blogs, id)
	for i, blogID := range s.blogOrder {
		if blogID == id {
			s.blogOrder = append(s.blogOrder[:i], s.blogOrder[i+1:]...)
			break
		}
	}
	return nil
}

// populate возвращает копию блога с публичными полями владельца. Вызывается под mu.
func (s *Store) populate(blog *entities.Blog) *entities.Blog {
	c := blog.Clone()
	if owner, ok := s.users[blog.UserID]; ok {
		c.User = owner.Owner()
	}
	return c
}

func copyUser(u *entities.User) *entities.User {
	c := *u
	c.Blogs = append([]string{}, u.Blogs...)
	return &c
}
