// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"bloglist/internal/domain/entities"
	"bloglist/pkg/logger"
)

// Ключи ctx.Locals.
const (
	LocalsRequestContext = "requestContext"
	LocalsToken          = "token"
	LocalsUser           = "user"

	HeaderRequestID = "X-Request-ID"
)

// RequestContext возвращает контекст запроса с request id.
func RequestContext(ctx fiber.Ctx) context.Context {
	if requestCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return requestCtx
	}
	return ctx.Context()
}

// CurrentUser возвращает пользователя, найденного по токену, или nil.
func CurrentUser(ctx fiber.Ctx) *entities.User {
	user, _ := ctx.Locals(LocalsUser).(*entities.User)
	return user
}

// NewRequestIDMiddleware кладет в контекст запроса request id из заголовка
// или новый, если заголовок пуст или некорректен.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := logger.NormalizeRequestID(ctx.Get(HeaderRequestID))
		requestCtx := logger.NewRequestIDContext(ctx.Context(), requestID)
		ctx.Locals(LocalsRequestContext, requestCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
