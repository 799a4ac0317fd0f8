package domain

import "time"

const DefaultAvatarCategory = "default"

// PredefinedAvatar is filled by an offline seed step and only read at request time.
type PredefinedAvatar struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null;size:100"`
	ImageURL  string `gorm:"type:text;not null"`
	Category  string `gorm:"size:50;default:'default';index"`
	IsActive  bool   `gorm:"default:true"`
	CreatedAt time.Time
}

func (PredefinedAvatar) TableName() string {
	return "predefined_avatars"
}
