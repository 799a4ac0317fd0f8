package repository

import (
	"context"
	"fmt"

	"streamflix/internal/domain"

	"gorm.io/gorm"
)

type AvatarRepository struct {
	db *gorm.DB
}

func NewAvatarRepository(db *gorm.DB) *AvatarRepository {
	return &AvatarRepository{db: db}
}

func (r *AvatarRepository) ListActive(ctx context.Context, category string) ([]domain.PredefinedAvatar, error) {
	avatars := []domain.PredefinedAvatar{}
	err := r.db.WithContext(ctx).
		Where("category = ? AND is_active = ?", category, true).
		Order("id asc").
		Find(&avatars).Error
	if err != nil {
		return nil, fmt.Errorf("list avatars: %w", err)
	}
	return avatars, nil
}
