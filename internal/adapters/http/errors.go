package http

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"bloglist/internal/adapters/http/dto"
	"bloglist/internal/adapters/http/middleware"
	"bloglist/internal/domain/entities"
	"bloglist/pkg/logger"
)

// Константы для сообщений об ошибках.
const (
	ErrorInternal        = "internal server error"
	ErrorUnknownEndpoint = "unknown endpoint"
	LogRequestError      = "request failed"
)

var kindStatus = map[entities.Kind]int{
	entities.KindValidation:         fiber.StatusBadRequest,
	entities.KindUnauthorized:       fiber.StatusUnauthorized,
	entities.KindForbidden:          fiber.StatusForbidden,
	entities.KindInvalidCredentials: fiber.StatusUnauthorized,
	entities.KindInvalidToken:       fiber.StatusUnauthorized,
	entities.KindNotFound:           fiber.StatusNotFound,
	entities.KindUserNotFound:       fiber.StatusUnauthorized,
	entities.KindInternal:           fiber.StatusInternalServerError,
}

var kindMessage = map[entities.Kind]error{
	entities.KindUnauthorized:       entities.ErrUnauthorized,
	entities.KindForbidden:          entities.ErrForbidden,
	entities.KindInvalidCredentials: entities.ErrInvalidCredentials,
	entities.KindInvalidToken:       entities.ErrInvalidToken,
	entities.KindUserNotFound:       entities.ErrUserNotFound,
}

// ErrorHandler превращает ошибку обработчика в ответ {"error", "kind"}.
func ErrorHandler(ctx fiber.Ctx, err error) error {
	requestCtx := middleware.RequestContext(ctx)
	log := logger.Log(requestCtx).With(zap.String("path", ctx.Path()))

	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		log.Error(requestCtx, LogRequestError, zap.Error(err))
	} else {
		log.Debug(requestCtx, LogRequestError, zap.Error(err), zap.String("kind", body.Kind))
	}

	return ctx.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		kind := entities.KindInternal
		switch fiberErr.Code {
		case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
			kind = entities.KindNotFound
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			kind = entities.KindValidation
		}
		return fiberErr.Code, dto.ErrorResponse{Error: fiberErr.Message, Kind: string(kind)}
	}

	kind := entities.KindOf(err)
	return kindStatus[kind], dto.ErrorResponse{Error: publicMessage(kind, err), Kind: string(kind)}
}

// publicMessage не раскрывает детали внутренних ошибок.
func publicMessage(kind entities.Kind, err error) string {
	switch kind {
	case entities.KindValidation:
		var verr *entities.ValidationError
		if errors.As(err, &verr) {
			return verr.Error()
		}
		if errors.Is(err, entities.ErrUsernameTaken) {
			return entities.ErrUsernameTaken.Error()
		}
		return entities.ErrValidation.Error()
	case entities.KindNotFound:
		if errors.Is(err, entities.ErrBlogNotFound) {
			return entities.ErrBlogNotFound.Error()
		}
		return entities.ErrNotFound.Error()
	case entities.KindInternal:
		return ErrorInternal
	default:
		return kindMessage[kind].Error()
	}
}
