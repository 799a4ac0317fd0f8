package usecase

import (
	"context"
	"testing"
	"time"

	"streamflix/internal/domain"
	"streamflix/internal/infrastructure/cache"
	"streamflix/internal/infrastructure/repository"
	"streamflix/internal/infrastructure/security"
	"streamflix/internal/logger"
	"streamflix/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type env struct {
	db     *gorm.DB
	store  *repository.Store
	redis  *redis.Client
	mr     *miniredis.Miniredis
	tokens *security.TokenManager
	hasher *security.PasswordHasher
}

func newEnv(t *testing.T) *env {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	db := testutil.NewTestDB(t)
	return &env{
		db:     db,
		store:  repository.NewStore(db),
		redis:  rdb,
		mr:     mr,
		tokens: security.NewTokenManager("test-secret", time.Hour),
		hasher: security.NewPasswordHasherWithCost(bcrypt.MinCost),
	}
}

func (e *env) auth(t *testing.T) *AuthUseCase {
	t.Helper()
	uc, err := NewAuthUseCase(logger.Discard(), e.store, e.hasher, e.tokens, cache.NewTokenCache(e.redis))
	require.NoError(t, err)
	return uc
}

func (e *env) user(t *testing.T, email string) *domain.User {
	t.Helper()
	u := &domain.User{Email: email, Password: "x", SubscriptionPlan: domain.DefaultPlan}
	require.NoError(t, e.store.Users.Create(context.Background(), u))
	return u
}

func (e *env) profile(t *testing.T, userID uint, name string) *domain.Profile {
	t.Helper()
	p, err := NewProfileUseCase(logger.Discard(), e.store).Create(context.Background(), CreateProfileInput{UserID: userID, Name: name})
	require.NoError(t, err)
	return p
}

// fixedClock возвращает часы, которые сдвигаются только вручную.
func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}
