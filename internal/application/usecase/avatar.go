package usecase

import (
	"context"
	"log/slog"
	"strings"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/cache"
	"streamflix/internal/infrastructure/repository"
)

type AvatarUseCase struct {
	log   *slog.Logger
	store *repository.Store
	cache *cache.AvatarCache
}

func NewAvatarUseCase(log *slog.Logger, store *repository.Store, c *cache.AvatarCache) *AvatarUseCase {
	return &AvatarUseCase{log: log, store: store, cache: c}
}

// ListPredefined читает каталог через redis. Недоступный redis не ломает
// ответ: данные берутся из базы.
func (uc *AvatarUseCase) ListPredefined(ctx context.Context, category string) ([]domain.PredefinedAvatar, error) {
	const op = "usecase.AvatarUseCase.ListPredefined"
	category = strings.TrimSpace(category)
	if category == "" {
		category = domain.DefaultAvatarCategory
	}
	log := uc.log.With("op", op, "category", category)

	avatars, hit, err := uc.cache.Get(ctx, category)
	if err != nil {
		log.Warn("avatar cache read failed", "err", err)
	}
	if hit {
		return avatars, nil
	}

	avatars, err = uc.store.Avatars.ListActive(ctx, category)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, category, avatars); err != nil {
		log.Warn("avatar cache write failed", "err", err)
	}
	return avatars, nil
}
