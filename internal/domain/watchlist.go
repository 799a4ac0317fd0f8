package domain

import "time"

const DefaultMovieType = "movie"

type WatchlistItem struct {
	ID          uint   `gorm:"primaryKey"`
	ProfileID   uint   `gorm:"not null;uniqueIndex:idx_watchlist_profile_movie"`
	MovieID     string `gorm:"not null;size:20;uniqueIndex:idx_watchlist_profile_movie"` // ID из внешнего каталога
	MovieTitle  string `gorm:"not null;size:200"`
	MoviePoster string `gorm:"size:500"`
	MovieType   string `gorm:"size:20;default:'movie'"`
	AddedAt     time.Time
}

func (WatchlistItem) TableName() string {
	return "watchlist_item"
}
