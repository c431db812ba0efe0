package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"bloglist/internal/adapters/http/middleware"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

// LogHandlerReset - сообщение об очистке хранилища.
const LogHandlerReset = "testing handler: storage reset"

// TestingHandler очищает хранилище между e2e прогонами.
type TestingHandler struct {
	resetter repositories.Resetter
}

// NewTestingHandler создает обработчик служебных маршрутов.
func NewTestingHandler(resetter repositories.Resetter) *TestingHandler {
	return &TestingHandler{resetter: resetter}
}

// Reset обрабатывает POST /api/testing/reset.
func (h *TestingHandler) Reset(ctx fiber.Ctx) error {
	requestCtx := middleware.RequestContext(ctx)

	if err := h.resetter.Reset(requestCtx); err != nil {
		return fmt.Errorf("resetting storage: %w", err)
	}

	logger.Log(requestCtx).Info(requestCtx, LogHandlerReset)
	return ctx.SendStatus(fiber.StatusNoContent)
}
