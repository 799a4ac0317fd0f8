package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store - единица работы: набор репозиториев поверх одного *gorm.DB
// (соединения или открытой транзакции).
type Store struct {
	db *gorm.DB

	Users     *UserRepository
	Profiles  *ProfileRepository
	Watchlist *WatchlistRepository
	History   *HistoryRepository
	Avatars   *AvatarRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Users:     NewUserRepository(db),
		Profiles:  NewProfileRepository(db),
		Watchlist: NewWatchlistRepository(db),
		History:   NewHistoryRepository(db),
		Avatars:   NewAvatarRepository(db),
	}
}

// Transaction коммитит, если fn вернула nil, иначе откатывает.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
