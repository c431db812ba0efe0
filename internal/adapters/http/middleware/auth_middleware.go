package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/ports/api"
	"bloglist/pkg/logger"
)

// Константы для логирования.
const (
	LogTokenExtracted = "bearer token extracted"
	LogIdentityFound  = "identity resolved"
	LogTokenRejected  = "token rejected"

	bearerPrefix = "bearer "
)

// ExtractToken возвращает токен из заголовка Authorization со схемой Bearer.
// Схема сравнивается без учета регистра. Отсутствие токена - не ошибка.
func ExtractToken(authorization string) (string, bool) {
	if len(authorization) < len(bearerPrefix) ||
		!strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	return token, token != ""
}

// NewTokenExtractor сохраняет bearer-токен запроса в ctx.Locals.
func NewTokenExtractor() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if token, ok := ExtractToken(ctx.Get(fiber.HeaderAuthorization)); ok {
			requestCtx := RequestContext(ctx)
			logger.Log(requestCtx).Debug(requestCtx, LogTokenExtracted)
			ctx.Locals(LocalsToken, token)
		}
		return ctx.Next()
	}
}

// NewUserExtractor находит владельца токена. Запрос без токена проходит без пользователя,
// запрос с недействительным токеном отклоняется.
func NewUserExtractor(users api.UserUseCase) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		token, ok := ctx.Locals(LocalsToken).(string)
		if !ok || token == "" {
			return ctx.Next()
		}

		requestCtx := RequestContext(ctx)
		log := logger.Log(requestCtx).With(zap.String("middleware", "user_extractor"))

		user, err := users.ResolveIdentity(requestCtx, token)
		if err != nil {
			log.Debug(requestCtx, LogTokenRejected, zap.Error(err))
			return err
		}

		log.Debug(requestCtx, LogIdentityFound, zap.String("userID", user.ID))
		ctx.Locals(LocalsUser, user)
		return ctx.Next()
	}
}
