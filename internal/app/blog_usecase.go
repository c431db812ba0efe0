package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/api"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	methodListBlogs  = "ListAll"
	methodGetBlog    = "Get"
	methodCreateBlog = "Create"
	methodUpdateBlog = "Update"
	methodDeleteBlog = "Delete"
	methodAddComment = "AddComment"

	msgNoIdentity       = "operation requires an identity"
	msgInvalidBlogInput = "blog input rejected"
	msgBlogCreated      = "blog created"
	msgBlogUpdated      = "blog updated"
	msgBlogDeleted      = "blog deleted"
	msgBlogMissing      = "blog not found"
	msgNotOwner         = "identity is not the blog owner"
	msgCommentAdded     = "comment added"

	msgErrListBlogs  = "failed to list blogs"
	msgErrLoadBlog   = "failed to load blog"
	msgErrCreateBlog = "failed to create blog"
	msgErrUpdateBlog = "failed to update blog"
	msgErrDeleteBlog = "failed to delete blog"
	msgErrAddComment = "failed to add comment"

	errCtxListingBlogs    = "listing blogs"
	errCtxLoadingBlog     = "loading blog"
	errCtxCreatingBlog    = "creating blog"
	errCtxValidatingBlog  = "validating blog"
	errCtxUpdatingBlog    = "updating blog"
	errCtxDeletingBlog    = "deleting blog"
	errCtxCommentingBlog  = "commenting blog"
	errCtxAppendingOwner  = "linking blog to owner"
	errCtxCheckingOwner   = "checking ownership"
	errCtxRequireIdentity = "resolving identity"
)

// BlogUseCaseImpl реализует жизненный цикл блогов.
// Удаление разрешено только владельцу; обновление и комментарии доступны всем.
type BlogUseCaseImpl struct {
	blogRepo repositories.BlogRepository
	userRepo repositories.UserRepository
	tx       repositories.Transactor
}

// NewBlogUseCase создает новый экземпляр BlogUseCaseImpl.
func NewBlogUseCase(
	blogRepo repositories.BlogRepository,
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
) *BlogUseCaseImpl {
	return &BlogUseCaseImpl{
		blogRepo: blogRepo,
		userRepo: userRepo,
		tx:       tx,
	}
}

var _ api.BlogUseCase = (*BlogUseCaseImpl)(nil)

// ListAll возвращает все блоги с владельцами.
func (uc *BlogUseCaseImpl) ListAll(ctx context.Context) ([]*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListBlogs))

	blogs, err := uc.blogRepo.FindAll(ctx)
	if err != nil {
		log.Error(ctx, msgErrListBlogs, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingBlogs, err)
	}
	return blogs, nil
}

// Get возвращает блог по ID.
func (uc *BlogUseCaseImpl) Get(ctx context.Context, blogID string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodGetBlog), zap.String("blogID", blogID))

	blog, err := uc.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		logStoreError(ctx, log, msgErrLoadBlog, err)
		return nil, fmt.Errorf("%s: %w", errCtxLoadingBlog, err)
	}
	return blog, nil
}

// Create создает блог от имени identity и добавляет его в обратные ссылки владельца.
func (uc *BlogUseCaseImpl) Create(ctx context.Context, identity *entities.User, in api.CreateBlogInput) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodCreateBlog))

	if identity == nil || identity.ID == "" {
		log.Debug(ctx, msgNoIdentity)
		return nil, fmt.Errorf("%s: %w", errCtxRequireIdentity, entities.ErrUnauthorized)
	}
	log = log.With(zap.String("userID", identity.ID))

	fields, err := requiredBlogFields(in.Title, in.Author, in.URL)
	if err != nil {
		log.Debug(ctx, msgInvalidBlogInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingBlog, err)
	}

	blog := &entities.Blog{
		Title:    fields.Title,
		Author:   fields.Author,
		URL:      fields.URL,
		Likes:    likesOrZero(in.Likes),
		UserID:   identity.ID,
		Comments: []string{},
	}

	var blogID string
	err = uc.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		created, err := uc.blogRepo.Create(ctx, blog)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtxCreatingBlog, err)
		}
		if err := uc.userRepo.AppendBlog(ctx, identity.ID, created.ID); err != nil {
			return fmt.Errorf("%s: %w", errCtxAppendingOwner, err)
		}
		blogID = created.ID
		return nil
	})
	if err != nil {
		log.Error(ctx, msgErrCreateBlog, zap.Error(err))
		return nil, err
	}

	created, err := uc.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		log.Error(ctx, msgErrLoadBlog, zap.Error(err), zap.String("blogID", blogID))
		return nil, fmt.Errorf("%s: %w", errCtxLoadingBlog, err)
	}

	log.Info(ctx, msgBlogCreated, zap.String("blogID", blogID))
	return created, nil
}

// Update заменяет поля блога. Проверка владельца не выполняется.
func (uc *BlogUseCaseImpl) Update(ctx context.Context, blogID string, in api.UpdateBlogInput) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodUpdateBlog), zap.String("blogID", blogID))

	fields, err := requiredBlogFields(in.Title, in.Author, in.URL)
	if err != nil {
		log.Debug(ctx, msgInvalidBlogInput, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxValidatingBlog, err)
	}
	fields.Likes = likesOrZero(in.Likes)
	if in.UserID != nil {
		if *in.UserID == "" {
			err := entities.NewValidationError("must not be empty", "user")
			log.Debug(ctx, msgInvalidBlogInput, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxValidatingBlog, err)
		}
		fields.UserID = in.UserID
	}

	updated, err := uc.blogRepo.Update(ctx, blogID, fields)
	if err != nil {
		switch {
		case errors.Is(err, entities.ErrBlogNotFound):
			log.Debug(ctx, msgBlogMissing)
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingBlog,
				entities.NewValidationError("no blog with this id", "id"))
		case errors.Is(err, entities.ErrUserNotFound):
			log.Debug(ctx, msgInvalidBlogInput, zap.Error(err))
			return nil, fmt.Errorf("%s: %w", errCtxUpdatingBlog,
				entities.NewValidationError("no user with this id", "user"))
		}
		log.Error(ctx, msgErrUpdateBlog, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxUpdatingBlog, err)
	}

	log.Info(ctx, msgBlogUpdated)
	return updated, nil
}

// Delete удаляет блог, если identity - его владелец.
// Обратная ссылка у владельца не очищается.
func (uc *BlogUseCaseImpl) Delete(ctx context.Context, identity *entities.User, blogID string) error {
	log := logger.Log(ctx).With(zap.String("method", methodDeleteBlog), zap.String("blogID", blogID))

	if identity == nil || identity.ID == "" {
		log.Debug(ctx, msgNoIdentity)
		return fmt.Errorf("%s: %w", errCtxRequireIdentity, entities.ErrUnauthorized)
	}
	log = log.With(zap.String("userID", identity.ID))

	blog, err := uc.blogRepo.FindByID(ctx, blogID)
	if err != nil {
		logStoreError(ctx, log, msgErrLoadBlog, err)
		return fmt.Errorf("%s: %w", errCtxLoadingBlog, err)
	}

	if !blog.OwnedBy(identity.ID) {
		log.Debug(ctx, msgNotOwner, zap.String("ownerID", blog.UserID))
		return fmt.Errorf("%s: %w", errCtxCheckingOwner, entities.ErrForbidden)
	}

	if err := uc.blogRepo.Delete(ctx, blogID); err != nil {
		logStoreError(ctx, log, msgErrDeleteBlog, err)
		return fmt.Errorf("%s: %w", errCtxDeletingBlog, err)
	}

	log.Info(ctx, msgBlogDeleted)
	return nil
}

// AddComment добавляет комментарий в конец списка комментариев блога.
func (uc *BlogUseCaseImpl) AddComment(ctx context.Context, blogID, comment string) (*entities.Blog, error) {
	log := logger.Log(ctx).With(zap.String("method", methodAddComment), zap.String("blogID", blogID))

	blog, err := uc.blogRepo.AppendComment(ctx, blogID, comment)
	if err != nil {
		logStoreError(ctx, log, msgErrAddComment, err)
		return nil, fmt.Errorf("%s: %w", errCtxCommentingBlog, err)
	}

	log.Info(ctx, msgCommentAdded, zap.Int("comments", len(blog.Comments)))
	return blog, nil
}

// requiredBlogFields проверяет наличие title, author и url.
func requiredBlogFields(title, author, url *string) (entities.BlogFields, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", title},
		{"author", author},
		{"url", url},
	} {
		if f.value == nil || *f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return entities.BlogFields{}, entities.NewValidationError("", missing...)
	}
	return entities.BlogFields{Title: *title, Author: *author, URL: *url}, nil
}

func likesOrZero(likes *int) int {
	if likes == nil {
		return 0
	}
	return *likes
}

// logStoreError пишет отсутствие записи в debug, а сбои хранилища в error.
func logStoreError(ctx context.Context, log *logger.Logger, msg string, err error) {
	if errors.Is(err, entities.ErrNotFound) {
		log.Debug(ctx, msgBlogMissing)
		return
	}
	log.Error(ctx, msg, zap.Error(err))
}
