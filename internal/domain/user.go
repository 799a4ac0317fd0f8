package domain

import "time"

type User struct {
	ID               uint   `gorm:"primaryKey"`
	Email            string `gorm:"uniqueIndex;not null;size:120"`
	Password         string `gorm:"not null"`
	SubscriptionPlan string `gorm:"size:20;default:'basic'"`
	CreatedAt        time.Time

	// Профили удаляются вместе с аккаунтом
	Profiles []Profile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (User) TableName() string {
	return "users"
}
