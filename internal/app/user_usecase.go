package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"bloglist/internal/domain/entities"
	"bloglist/internal/ports/api"
	"bloglist/internal/ports/cache"
	"bloglist/internal/ports/repositories"
	svc "bloglist/internal/ports/services"
	"bloglist/pkg/logger"
)

const (
	methodResolveIdentity = "ResolveIdentity"
	methodListUsers       = "ListUsers"

	msgResolvingIdentity = "resolving identity from token"
	msgIdentityCached    = "identity served from cache"
	msgIdentityResolved  = "identity resolved"
	msgTokenRejected     = "token rejected"
	msgTokenOwnerMissing = "token owner no longer exists"
	msgErrCacheRead      = "identity cache read failed"
	msgErrCacheWrite     = "identity cache write failed"
	msgErrListUsers      = "failed to list users"

	errCtxValidatingToken = "validating token"
	errCtxLoadingIdentity = "loading identity"
	errCtxListingUsers    = "listing users"
)

// UserUseCaseImpl реализует интерфейс api.UserUseCase.
type UserUseCaseImpl struct {
	userRepo repositories.UserRepository
	tokenSvc svc.TokenService
	cache    cache.IdentityCache
}

// NewUserUseCase создает сервис пользователей. identityCache может быть nil.
func NewUserUseCase(
	userRepo repositories.UserRepository,
	tokenSvc svc.TokenService,
	identityCache cache.IdentityCache,
) *UserUseCaseImpl {
	return &UserUseCaseImpl{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
		cache:    identityCache,
	}
}

var _ api.UserUseCase = (*UserUseCaseImpl)(nil)

// ResolveIdentity проверяет подпись токена и находит его владельца.
func (u *UserUseCaseImpl) ResolveIdentity(ctx context.Context, token string) (*entities.User, error) {
	log := logger.Log(ctx).With(zap.String("method", methodResolveIdentity))
	log.Debug(ctx, msgResolvingIdentity)

	if token == "" {
		log.Debug(ctx, msgTokenRejected)
		return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, entities.ErrInvalidToken)
	}

	claims, err := u.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		log.Debug(ctx, msgTokenRejected, zap.Error(err))
		if errors.Is(err, entities.ErrInvalidToken) {
			return nil, fmt.Errorf("%s: %w", errCtxValidatingToken, err)
		}
		return nil, fmt.Errorf("%s: %w: %w", errCtxValidatingToken, entities.ErrInvalidToken, err)
	}

	log = log.With(zap.String("userID", claims.UserID))

	if u.cache != nil {
		cached, ok, err := u.cache.Get(ctx, claims.UserID)
		if err != nil {
			log.Warn(ctx, msgErrCacheRead, zap.Error(err))
		} else if ok {
			log.Debug(ctx, msgIdentityCached)
			return cached, nil
		}
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, entities.ErrUserNotFound) {
			log.Debug(ctx, msgTokenOwnerMissing)
		}
		return nil, fmt.Errorf("%s: %w", errCtxLoadingIdentity, err)
	}

	if u.cache != nil {
		if err := u.cache.Set(ctx, user); err != nil {
			log.Warn(ctx, msgErrCacheWrite, zap.Error(err))
		}
	}

	log.Debug(ctx, msgIdentityResolved)
	return user, nil
}

// ListUsers возвращает всех пользователей с развернутыми блогами.
func (u *UserUseCaseImpl) ListUsers(ctx context.Context) ([]*entities.UserProfile, error) {
	log := logger.Log(ctx).With(zap.String("method", methodListUsers))

	profiles, err := u.userRepo.FindAllProfiles(ctx)
	if err != nil {
		log.Error(ctx, msgErrListUsers, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", errCtxListingUsers, err)
	}
	return profiles, nil
}
