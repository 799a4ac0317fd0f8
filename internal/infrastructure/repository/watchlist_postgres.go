package repository

import (
	"context"
	"fmt"

	"streamflix/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

func (r *WatchlistRepository) ListByProfile(ctx context.Context, profileID uint) ([]domain.WatchlistItem, error) {
	items := []domain.WatchlistItem{}
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}

// AddIfAbsent вставляет запись одним INSERT ... ON CONFLICT DO NOTHING.
// created == false, если фильм уже был в списке.
func (r *WatchlistRepository) AddIfAbsent(ctx context.Context, item *domain.WatchlistItem) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "movie_id"}},
			DoNothing: true,
		}).
		Create(item)
	if result.Error != nil {
		return false, fmt.Errorf("add to watchlist: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *WatchlistRepository) Remove(ctx context.Context, profileID uint, movieID string) error {
	result := r.db.WithContext(ctx).
		Where("profile_id = ? AND movie_id = ?", profileID, movieID).
		Delete(&domain.WatchlistItem{})
	if result.Error != nil {
		return fmt.Errorf("remove from watchlist: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrWatchlistItemNotFound
	}
	return nil
}

func (r *WatchlistRepository) DeleteByProfile(ctx context.Context, profileID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&domain.WatchlistItem{}).Error
	if err != nil {
		return fmt.Errorf("clear watchlist: %w", err)
	}
	return nil
}
