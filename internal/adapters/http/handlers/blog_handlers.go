package handlers

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/adapters/http/dto"
	"bloglist/internal/adapters/http/middleware"
	"bloglist/internal/ports/api"
	"bloglist/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerListBlogs  = "blog handler: list"
	LogHandlerGetBlog    = "blog handler: get"
	LogHandlerCreateBlog = "blog handler: create"
	LogHandlerUpdateBlog = "blog handler: update"
	LogHandlerDeleteBlog = "blog handler: delete"
	LogHandlerComment    = "blog handler: comment"
)

// BlogHandler содержит HTTP обработчики блогов.
type BlogHandler struct {
	blogs api.BlogUseCase
}

// NewBlogHandler создает новый экземпляр обработчика блогов.
func NewBlogHandler(blogs api.BlogUseCase) *BlogHandler {
	return &BlogHandler{blogs: blogs}
}

// List обрабатывает GET /api/blogs.
func (h *BlogHandler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListBlogs)

	blogs, err := h.blogs.ListAll(requestCtx)
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, blogs)
}

// Get обрабатывает GET /api/blogs/:id.
func (h *BlogHandler) Get(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerGetBlog, zap.String("blogID", ctx.Params("id")))

	blog, err := h.blogs.Get(requestCtx, ctx.Params("id"))
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, blog)
}

// Create обрабатывает POST /api/blogs. Пользователь берется из токена.
func (h *BlogHandler) Create(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerCreateBlog)

	var req dto.CreateBlogRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	blog, err := h.blogs.Create(requestCtx, middleware.CurrentUser(ctx), req.ToInput())
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusCreated, blog)
}

// Update обрабатывает PUT /api/blogs/:id.
func (h *BlogHandler) Update(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerUpdateBlog, zap.String("blogID", ctx.Params("id")))

	var req dto.UpdateBlogRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	blog, err := h.blogs.Update(requestCtx, ctx.Params("id"), req.ToInput())
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, blog)
}

// Delete обрабатывает DELETE /api/blogs/:id.
func (h *BlogHandler) Delete(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerDeleteBlog, zap.String("blogID", ctx.Params("id")))

	if err := h.blogs.Delete(requestCtx, middleware.CurrentUser(ctx), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// AddComment обрабатывает POST /api/blogs/:id/comments.
func (h *BlogHandler) AddComment(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerComment, zap.String("blogID", ctx.Params("id")))

	var req dto.CommentRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	blog, err := h.blogs.AddComment(requestCtx, ctx.Params("id"), req.Comment)
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusCreated, blog)
}
