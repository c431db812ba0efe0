package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"bloglist/internal/domain/entities"
	"bloglist/internal/domain/services"
	svc "bloglist/internal/ports/services"
	"bloglist/pkg/logger"
)

const (
	methodGenerateToken = "GenerateToken"
	methodValidateToken = "ValidateToken"
	msgGeneratingToken  = "generating token"
	msgValidatingToken  = "validating token"
	msgTokenGenerated   = "token generated successfully"
	msgTokenValidated   = "token validated successfully"
	msgInvalidToken     = "invalid token"
	msgEmptyUserID      = "id claim is empty"
	msgEmptySecretKey   = "empty secret key provided"
	//nolint:gosec
	errSigningToken = "error signing token"
	//nolint:gosec
	errParsingToken       = "error parsing token"
	errCtxGeneratingToken = "generating token"
	errCtxParsingToken    = "parsing token"
	errCtxValidatingToken = "validating token"
)

// Claims - содержимое токена в формате библиотеки JWT.
// Идентификатор пользователя подписывается и читается под именем id.
type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// ServiceJWT реализует интерфейс TokenService. Токены подписываются HS256 и не истекают.
type ServiceJWT struct {
	secretKey []byte
	now       func() time.Time
}

// NewJWT создает новый экземпляр сервиса JWT.
func NewJWT(secretKey string) svc.TokenService {
	return &ServiceJWT{
		secretKey: []byte(secretKey),
		now:       time.Now,
	}
}

// GenerateToken подписывает токен с id и username пользователя.
func (s *ServiceJWT) GenerateToken(ctx context.Context, claims services.TokenClaims) (string, error) {
	log := logger.Log(ctx).With(
		zap.String("method", methodGenerateToken),
		zap.String("userID", claims.UserID),
	)
	log.Debug(ctx, msgGeneratingToken)

	if len(s.secretKey) == 0 {
		log.Error(ctx, msgEmptySecretKey)
		return "", fmt.Errorf("%s: %w: empty secret key", errCtxGeneratingToken, services.ErrTokenGenerationFailed)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:   claims.UserID,
		Username: claims.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(s.now()),
		},
	})

	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		log.Error(ctx, errSigningToken, zap.Error(err))
		return "", fmt.Errorf("%s: %w: %w", errCtxGeneratingToken, services.ErrTokenGenerationFailed, err)
	}

	log.Debug(ctx, msgTokenGenerated)
	return signed, nil
}

// ValidateToken проверяет подпись и возвращает claims.
func (s *ServiceJWT) ValidateToken(ctx context.Context, tokenString string) (*services.TokenClaims, error) {
	log := logger.Log(ctx).With(zap.String("method", methodValidateToken))
	log.Debug(ctx, msgValidatingToken)

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", services.ErrInvalidAlgorithm, token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		log.Debug(ctx, errParsingToken, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", errCtxParsingToken, entities.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		log.Debug(ctx, msgInvalidToken)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	if claims.UserID == "" {
		log.Debug(ctx, msgEmptyUserID)
		return nil, fmt.Errorf("%s: %w: empty id", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	log.Debug(ctx, msgTokenValidated, zap.String("userID", claims.UserID))
	return &services.TokenClaims{UserID: claims.UserID, Username: claims.Username}, nil
}
