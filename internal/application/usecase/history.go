package usecase

import (
	"context"
	"log/slog"
	"math"
	"time"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/repository"
)

type HistoryUseCase struct {
	log   *slog.Logger
	store *repository.Store
	now   func() time.Time
}

func NewHistoryUseCase(log *slog.Logger, store *repository.Store) *HistoryUseCase {
	return &HistoryUseCase{
		log:   log,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// List - от последнего просмотра к первому.
func (uc *HistoryUseCase) List(ctx context.Context, profileID uint) ([]domain.ViewingHistory, error) {
	if err := requireProfile(ctx, uc.store, profileID); err != nil {
		return nil, err
	}
	return uc.store.History.ListByProfile(ctx, profileID)
}

// Record создает запись или обновляет watched_at и прогресс существующей.
func (uc *HistoryUseCase) Record(ctx context.Context, profileID uint, movie MovieInput, progress float64) error {
	const op = "usecase.HistoryUseCase.Record"
	if err := movie.normalize(); err != nil {
		return err
	}
	if math.IsNaN(progress) || progress < 0 || progress > 100 {
		return domain.NewValidationError("", "progress_percent must be between 0 and 100")
	}

	entry := &domain.ViewingHistory{
		ProfileID:       profileID,
		MovieID:         movie.MovieID,
		MovieTitle:      movie.Title,
		MoviePoster:     movie.Poster,
		MovieType:       movie.Type,
		WatchedAt:       uc.now(),
		ProgressPercent: progress,
	}
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfile(ctx, tx, profileID); err != nil {
			return err
		}
		return tx.History.Upsert(ctx, entry)
	})
	if err != nil {
		return err
	}
	uc.log.Debug("viewing recorded", "op", op, "profile_id", profileID, "movie_id", movie.MovieID, "progress", progress)
	return nil
}
