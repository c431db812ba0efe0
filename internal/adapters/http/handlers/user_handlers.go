package handlers

import (
	"github.com/gofiber/fiber/v3"

	"bloglist/internal/adapters/http/dto"
	"bloglist/internal/adapters/http/middleware"
	"bloglist/internal/ports/api"
	"bloglist/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerRegister  = "user handler: register"
	LogHandlerListUsers = "user handler: list"
	LogHandlerLogin     = "user handler: login"
)

// UserHandler содержит HTTP обработчики пользователей и входа.
type UserHandler struct {
	auth  api.AuthUseCase
	users api.UserUseCase
}

// NewUserHandler создает новый экземпляр обработчика пользователей.
func NewUserHandler(auth api.AuthUseCase, users api.UserUseCase) *UserHandler {
	return &UserHandler{auth: auth, users: users}
}

// Register обрабатывает POST /api/users.
func (h *UserHandler) Register(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	user, err := h.auth.Register(requestCtx, req.ToInput())
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusCreated, user)
}

// List обрабатывает GET /api/users.
func (h *UserHandler) List(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerListUsers)

	profiles, err := h.users.ListUsers(requestCtx)
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, profiles)
}

// Login обрабатывает POST /api/login.
func (h *UserHandler) Login(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerLogin)

	var req dto.LoginRequest
	if err := bindJSON(ctx, &req); err != nil {
		return err
	}

	session, err := h.auth.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		return err
	}

	return sendJSON(ctx, fiber.StatusOK, session)
}
