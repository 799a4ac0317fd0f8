package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/repository"
)

const maxMovieIDLen = 20

type WatchlistUseCase struct {
	log   *slog.Logger
	store *repository.Store
	now   func() time.Time
}

// MovieInput - данные фильма из внешнего каталога, как их прислал клиент.
type MovieInput struct {
	MovieID string
	Title   string
	Poster  string
	Type    string
}

func (m *MovieInput) normalize() error {
	m.MovieID = strings.TrimSpace(m.MovieID)
	if m.MovieID == "" {
		return domain.NewValidationError("", "Missing required field: movie_id")
	}
	if utf8.RuneCountInString(m.MovieID) > maxMovieIDLen {
		return domain.NewValidationError("movie_id", "must be at most 20 characters")
	}
	if m.Type == "" {
		m.Type = domain.DefaultMovieType
	}
	return nil
}

func NewWatchlistUseCase(log *slog.Logger, store *repository.Store) *WatchlistUseCase {
	return &WatchlistUseCase{
		log:   log,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (uc *WatchlistUseCase) List(ctx context.Context, profileID uint) ([]domain.WatchlistItem, error) {
	if err := requireProfile(ctx, uc.store, profileID); err != nil {
		return nil, err
	}
	return uc.store.Watchlist.ListByProfile(ctx, profileID)
}

// Add идемпотентен: повторное добавление возвращает added=false и nil item.
func (uc *WatchlistUseCase) Add(ctx context.Context, profileID uint, movie MovieInput) (*domain.WatchlistItem, bool, error) {
	const op = "usecase.WatchlistUseCase.Add"
	if err := movie.normalize(); err != nil {
		return nil, false, err
	}

	item := &domain.WatchlistItem{
		ProfileID:   profileID,
		MovieID:     movie.MovieID,
		MovieTitle:  movie.Title,
		MoviePoster: movie.Poster,
		MovieType:   movie.Type,
		AddedAt:     uc.now(),
	}
	var added bool
	err := uc.store.Transaction(ctx, func(tx *repository.Store) error {
		if err := requireProfile(ctx, tx, profileID); err != nil {
			return err
		}
		var err error
		added, err = tx.Watchlist.AddIfAbsent(ctx, item)
		return err
	})
	if err != nil {
		return nil, false, err
	}
	if !added {
		return nil, false, nil
	}
	uc.log.Debug("movie added to watchlist", "op", op, "profile_id", profileID, "movie_id", movie.MovieID)
	return item, true, nil
}

func (uc *WatchlistUseCase) Remove(ctx context.Context, profileID uint, movieID string) error {
	return uc.store.Watchlist.Remove(ctx, profileID, strings.TrimSpace(movieID))
}

func requireProfile(ctx context.Context, store *repository.Store, profileID uint) error {
	ok, err := store.Profiles.Exists(ctx, profileID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProfileNotFound
	}
	return nil
}
