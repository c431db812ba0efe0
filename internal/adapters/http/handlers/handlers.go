// Package handlers содержит HTTP обработчики API блогов.
package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"bloglist/internal/domain/entities"
)

// Константы для сообщений об ошибках.
const (
	ErrorInvalidRequest = "malformed JSON body"

	errCtxBindingBody    = "binding JSON"
	errCtxSendingReponse = "sending response"
)

// bindJSON разбирает тело запроса. Пустое тело оставляет out без изменений.
func bindJSON(ctx fiber.Ctx, out any) error {
	if len(ctx.Body()) == 0 {
		return nil
	}
	if err := ctx.Bind().JSON(out); err != nil {
		return fmt.Errorf("%s: %w: %w", errCtxBindingBody,
			entities.NewValidationError(ErrorInvalidRequest, "body"), err)
	}
	return nil
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("%s: %w", errCtxSendingReponse, err)
	}
	return nil
}
