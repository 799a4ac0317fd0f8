package domain

import "time"

type Profile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Name      string `gorm:"not null;size:50"`
	AvatarURL string `gorm:"type:text"` // URL или data:image/png;base64,...
	IsKids    bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	WatchlistItems []WatchlistItem  `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;"`
	History        []ViewingHistory `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE;"`
}

func (Profile) TableName() string {
	return "profile"
}

// ProfilePatch - явный список полей, которые клиент может менять.
// nil означает "не трогать".
type ProfilePatch struct {
	Name      *string
	AvatarURL *string
	IsKids    *bool
}
