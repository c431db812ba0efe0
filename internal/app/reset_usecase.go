package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bloglist/internal/ports/cache"
	"bloglist/internal/ports/repositories"
	"bloglist/pkg/logger"
)

const (
	methodReset = "Reset"

	msgStorageReset   = "storage and identity cache reset"
	msgErrResetStore  = "failed to reset storage"
	msgErrFlushCache  = "failed to flush identity cache"
	errCtxResetting   = "resetting storage"
	errCtxFlushingIDs = "flushing identity cache"
)

// ResetUseCase очищает хранилище вместе с кэшем идентичностей.
type ResetUseCase struct {
	store repositories.Resetter
	cache cache.IdentityCache
}

// NewResetUseCase создает сервис очистки. identityCache может быть nil.
func NewResetUseCase(store repositories.Resetter, identityCache cache.IdentityCache) *ResetUseCase {
	return &ResetUseCase{store: store, cache: identityCache}
}

var _ repositories.Resetter = (*ResetUseCase)(nil)

// Reset очищает хранилище, затем кэш.
func (uc *ResetUseCase) Reset(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", methodReset))

	if err := uc.store.Reset(ctx); err != nil {
		log.Error(ctx, msgErrResetStore, zap.Error(err))
		return fmt.Errorf("%s: %w", errCtxResetting, err)
	}

	if uc.cache != nil {
		if err := uc.cache.Flush(ctx); err != nil {
			log.Error(ctx, msgErrFlushCache, zap.Error(err))
			return fmt.Errorf("%s: %w", errCtxFlushingIDs, err)
		}
	}

	log.Info(ctx, msgStorageReset)
	return nil
}
