package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// maxRequestIDLength ограничивает длину request id, пришедшего от клиента.
const maxRequestIDLength = 128

type requestIDKey struct{}

// NewRequestIDContext кладет в контекст нормализованный request id.
// Пустой или некорректный идентификатор заменяется сгенерированным.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, NormalizeRequestID(requestID))
}

// GetRequestID возвращает request id из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

// GenerateRequestID генерирует новый request id.
func GenerateRequestID() string {
	return uuid.NewString()
}

// NormalizeRequestID возвращает requestID без пробелов по краям, если он
// допустим для записи в лог и заголовок ответа, иначе новый идентификатор.
func NormalizeRequestID(requestID string) string {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" || len(requestID) > maxRequestIDLength {
		return GenerateRequestID()
	}
	for i := 0; i < len(requestID); i++ {
		// только видимые ASCII символы
		if c := requestID[i]; c <= ' ' || c > '~' {
			return GenerateRequestID()
		}
	}
	return requestID
}
