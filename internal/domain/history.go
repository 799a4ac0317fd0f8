package domain

import "time"

type ViewingHistory struct {
	ID              uint      `gorm:"primaryKey"`
	ProfileID       uint      `gorm:"not null;uniqueIndex:idx_history_profile_movie"`
	MovieID         string    `gorm:"not null;size:20;uniqueIndex:idx_history_profile_movie"`
	MovieTitle      string    `gorm:"not null;size:200"`
	MoviePoster     string    `gorm:"size:500"`
	MovieType       string    `gorm:"size:20;default:'movie'"`
	WatchedAt       time.Time `gorm:"index"`
	ProgressPercent float64
}

func (ViewingHistory) TableName() string {
	return "viewing_history"
}
