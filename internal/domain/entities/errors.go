package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Ошибки домена. Каждая соответствует одному виду отказа.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("authentication required")
	ErrForbidden          = errors.New("operation not permitted for this user")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("token missing or invalid")
	ErrNotFound           = errors.New("resource not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrBlogNotFound       = fmt.Errorf("blog %w", ErrNotFound)
	ErrUsernameTaken      = fmt.Errorf("%w: username must be unique", ErrValidation)
)

// Kind - стабильная метка вида ошибки, видимая клиенту.
type Kind string

// Виды ошибок.
const (
	KindValidation         Kind = "ValidationError"
	KindUnauthorized       Kind = "Unauthorized"
	KindForbidden          Kind = "Forbidden"
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindInvalidToken       Kind = "InvalidToken"
	KindNotFound           Kind = "NotFound"
	KindUserNotFound       Kind = "UserNotFound"
	KindInternal           Kind = "Internal"
)

// KindOf возвращает вид ошибки. Неизвестные ошибки считаются внутренними.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrInvalidToken):
		return KindInvalidToken
	case errors.Is(err, ErrUserNotFound):
		return KindUserNotFound
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}

// ValidationError перечисляет поля, не прошедшие проверку.
type ValidationError struct {
	Fields []string
	Reason string
}

// NewValidationError создает ошибку валидации для полей.
func NewValidationError(reason string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Reason: reason}
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing or empty"
	}
	return fmt.Sprintf("%s: %s: %s", ErrValidation, strings.Join(e.Fields, ", "), reason)
}

// Unwrap позволяет сравнивать с ErrValidation через errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Field возвращает первое поле с ошибкой.
func (e *ValidationError) Field() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0]
}
