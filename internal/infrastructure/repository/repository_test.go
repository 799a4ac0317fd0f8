package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"streamflix/internal/domain"
	"streamflix/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(testutil.NewTestDB(t))
}

func seedUser(t *testing.T, s *Store, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Password: "hash", SubscriptionPlan: domain.DefaultPlan}
	require.NoError(t, s.Users.Create(context.Background(), u))
	return u
}

func seedProfile(t *testing.T, s *Store, userID uint, name string) *domain.Profile {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Profile{UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Profiles.Create(context.Background(), p))
	return p
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	u := seedUser(t, s, "a@test.io")
	assert.NotZero(t, u.ID)

	t.Run("duplicate email", func(t *testing.T) {
		err := s.Users.Create(ctx, &domain.User{Email: "a@test.io", Password: "x"})
		assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)
	})

	t.Run("lookups", func(t *testing.T) {
		byEmail, err := s.Users.GetByEmail(ctx, "a@test.io")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byEmail.ID)
		assert.Equal(t, domain.PlanBasic, byEmail.SubscriptionPlan)

		_, err = s.Users.GetByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)

		ok, err := s.Users.Exists(ctx, u.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("profiles preloaded in order", func(t *testing.T) {
		seedProfile(t, s, u.ID, "Mum")
		seedProfile(t, s, u.ID, "Kids")

		got, err := s.Users.GetByEmailWithProfiles(ctx, "a@test.io")
		require.NoError(t, err)
		require.Len(t, got.Profiles, 2)
		assert.Equal(t, "Mum", got.Profiles[0].Name)
		assert.Equal(t, "Kids", got.Profiles[1].Name)
	})

	t.Run("update subscription", func(t *testing.T) {
		require.NoError(t, s.Users.UpdateSubscription(ctx, u.ID, domain.PlanPremium))
		got, err := s.Users.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PlanPremium, got.SubscriptionPlan)

		assert.ErrorIs(t, s.Users.UpdateSubscription(ctx, 999, domain.PlanPremium), domain.ErrUserNotFound)
	})
}

func TestProfileRepositoryUpdateAppliesOnlyPatchedFields(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "p@test.io")
	p := seedProfile(t, s, u.ID, "Dad")

	later := p.UpdatedAt.Add(time.Hour)
	kids := true
	require.NoError(t, s.Profiles.Update(ctx, p.ID, domain.ProfilePatch{IsKids: &kids}, later))

	got, err := s.Profiles.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dad", got.Name)
	assert.True(t, got.IsKids)
	assert.WithinDuration(t, later, got.UpdatedAt, time.Second)
	assert.WithinDuration(t, p.CreatedAt, got.CreatedAt, time.Second)

	assert.ErrorIs(t, s.Profiles.Update(ctx, 999, domain.ProfilePatch{IsKids: &kids}, later), domain.ErrProfileNotFound)
}

func TestWatchlistAddIfAbsentIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "w@test.io")
	p := seedProfile(t, s, u.ID, "Me")

	item := func() *domain.WatchlistItem {
		return &domain.WatchlistItem{ProfileID: p.ID, MovieID: "603", MovieTitle: "The Matrix", MovieType: "movie", AddedAt: time.Now().UTC()}
	}

	created, err := s.Watchlist.AddIfAbsent(ctx, item())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = s.Watchlist.AddIfAbsent(ctx, item())
	require.NoError(t, err)
	assert.False(t, created)

	items, err := s.Watchlist.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	require.NoError(t, s.Watchlist.Remove(ctx, p.ID, "603"))
	assert.ErrorIs(t, s.Watchlist.Remove(ctx, p.ID, "603"), domain.ErrWatchlistItemNotFound)
}

func TestHistoryUpsertKeepsOneRow(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "h@test.io")
	p := seedProfile(t, s, u.ID, "Me")

	first := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, s.History.Upsert(ctx, &domain.ViewingHistory{
		ProfileID: p.ID, MovieID: "1", MovieTitle: "Heat", MovieType: "movie", WatchedAt: first, ProgressPercent: 10,
	}))
	require.NoError(t, s.History.Upsert(ctx, &domain.ViewingHistory{
		ProfileID: p.ID, MovieID: "2", MovieTitle: "Ronin", MovieType: "movie", WatchedAt: first.Add(time.Minute), ProgressPercent: 5,
	}))
	require.NoError(t, s.History.Upsert(ctx, &domain.ViewingHistory{
		ProfileID: p.ID, MovieID: "1", MovieTitle: "ignored", MovieType: "movie", WatchedAt: second, ProgressPercent: 75,
	}))

	items, err := s.History.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "1", items[0].MovieID)
	assert.Equal(t, "Heat", items[0].MovieTitle)
	assert.Equal(t, 75.0, items[0].ProgressPercent)
	assert.WithinDuration(t, second, items[0].WatchedAt, time.Second)
	assert.Equal(t, "2", items[1].MovieID)
}

func TestTransactionCascadeAndRollback(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	u := seedUser(t, s, "c@test.io")
	p := seedProfile(t, s, u.ID, "Me")

	_, err := s.Watchlist.AddIfAbsent(ctx, &domain.WatchlistItem{ProfileID: p.ID, MovieID: "1", MovieTitle: "A", AddedAt: time.Now().UTC()})
	require.NoError(t, err)
	require.NoError(t, s.History.Upsert(ctx, &domain.ViewingHistory{ProfileID: p.ID, MovieID: "1", MovieTitle: "A", WatchedAt: time.Now().UTC()}))

	boom := errors.New("boom")
	err = s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Watchlist.DeleteByProfile(ctx, p.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	items, err := s.Watchlist.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1, "rolled back delete must keep the row")

	err = s.Transaction(ctx, func(tx *Store) error {
		if err := tx.Watchlist.DeleteByProfile(ctx, p.ID); err != nil {
			return err
		}
		if err := tx.History.DeleteByProfile(ctx, p.ID); err != nil {
			return err
		}
		return tx.Profiles.Delete(ctx, p.ID)
	})
	require.NoError(t, err)

	_, err = s.Profiles.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	items, err = s.Watchlist.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
	history, err := s.History.ListByProfile(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAvatarListActive(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	s := NewStore(db)

	require.NoError(t, db.Create(&[]domain.PredefinedAvatar{
		{Name: "Red", ImageURL: "https://img/red.jpg", Category: "default"},
		{Name: "Blue", ImageURL: "https://img/blue.jpg", Category: "default"},
		{Name: "Kid", ImageURL: "https://img/kid.jpg", Category: "kids"},
	}).Error)
	require.NoError(t, db.Model(&domain.PredefinedAvatar{}).Where("name = ?", "Blue").Update("is_active", false).Error)

	avatars, err := s.Avatars.ListActive(ctx, "default")
	require.NoError(t, err)
	require.Len(t, avatars, 1)
	assert.Equal(t, "Red", avatars[0].Name)

	none, err := s.Avatars.ListActive(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
