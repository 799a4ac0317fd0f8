package repository

import (
	"context"
	"errors"
	"fmt"

	"streamflix/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Omit("Profiles").Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", result.Error)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(r.db.WithContext(ctx), "email = ?", email)
}

// GetByIDWithProfiles подгружает профили в порядке создания.
func (r *UserRepository) GetByIDWithProfiles(ctx context.Context, id uint) (*domain.User, error) {
	return r.first(r.withProfiles(ctx), "id = ?", id)
}

func (r *UserRepository) GetByEmailWithProfiles(ctx context.Context, email string) (*domain.User, error) {
	return r.first(r.withProfiles(ctx), "email = ?", email)
}

func (r *UserRepository) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Profiles", func(db *gorm.DB) *gorm.DB {
		return db.Order("id asc")
	})
}

func (r *UserRepository) first(q *gorm.DB, cond string, arg any) (*domain.User, error) {
	var user domain.User
	err := q.Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.update(ctx, id, "password", hash)
}

func (r *UserRepository) UpdateSubscription(ctx context.Context, id uint, plan string) error {
	return r.update(ctx, id, "subscription_plan", plan)
}

func (r *UserRepository) update(ctx context.Context, id uint, column string, value any) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).
		Where("id = ?", id).
		Update(column, value)
	if result.Error != nil {
		return fmt.Errorf("update user %s: %w", column, result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
