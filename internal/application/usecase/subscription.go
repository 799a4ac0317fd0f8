package usecase

import (
	"context"
	"log/slog"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/repository"
)

type SubscriptionUseCase struct {
	log   *slog.Logger
	store *repository.Store
}

func NewSubscriptionUseCase(log *slog.Logger, store *repository.Store) *SubscriptionUseCase {
	return &SubscriptionUseCase{log: log, store: store}
}

func (uc *SubscriptionUseCase) Plans() []domain.Plan {
	return domain.Plans()
}

// UpdatePlan: сначала 404 на неизвестного пользователя, потом проверка тарифа.
func (uc *SubscriptionUseCase) UpdatePlan(ctx context.Context, userID uint, plan string) (string, error) {
	const op = "usecase.SubscriptionUseCase.UpdatePlan"
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.Users.GetByID(ctx, userID); err != nil {
			return err
		}
		if !domain.IsValidPlan(plan) {
			return domain.ErrInvalidPlan
		}
		return tx.Users.UpdateSubscription(ctx, userID, plan)
	})
	if err != nil {
		return "", err
	}
	uc.log.Info("subscription changed", "op", op, "user_id", userID, "plan", plan)
	return plan, nil
}
