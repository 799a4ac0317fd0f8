package repository

import (
	"context"
	"fmt"

	"streamflix/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) ListByProfile(ctx context.Context, profileID uint) ([]domain.ViewingHistory, error) {
	items := []domain.ViewingHistory{}
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("watched_at desc, id desc"). // Сначала последние просмотренные
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return items, nil
}

// Upsert: повторный просмотр обновляет watched_at и progress_percent,
// название и постер остаются от первой записи.
func (r *HistoryRepository) Upsert(ctx context.Context, item *domain.ViewingHistory) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}, {Name: "movie_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"watched_at", "progress_percent"}),
		}).
		Create(item).Error
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) DeleteByProfile(ctx context.Context, profileID uint) error {
	err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&domain.ViewingHistory{}).Error
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
