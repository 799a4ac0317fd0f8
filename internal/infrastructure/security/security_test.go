package security

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

func TestPasswordHasherBcrypt(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)

	hashed, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.False(t, h.NeedsRehash(hashed))

	assert.NoError(t, h.Compare(hashed, "s3cret"))
	assert.ErrorIs(t, h.Compare(hashed, "wrong"), ErrMismatch)

	again, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hashed, again, "salted hashes must differ")
}

func TestPasswordHasherLongPasswords(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)
	long := strings.Repeat("p", 73)

	hashed, err := h.Hash(long)
	require.NoError(t, err)
	assert.NoError(t, h.Compare(hashed, long))

	// Отличие после 72-го байта тоже учитывается
	assert.ErrorIs(t, h.Compare(hashed, strings.Repeat("p", 72)+"q"), ErrMismatch)
	assert.ErrorIs(t, h.Compare(hashed, strings.Repeat("p", 72)), ErrMismatch)
}

func TestPasswordHasherLegacyPBKDF2(t *testing.T) {
	h := NewPasswordHasherWithCost(bcrypt.MinCost)
	salt := "Xk2lQ9"
	digest := pbkdf2.Key([]byte("hunter2"), []byte(salt), 1000, sha256.Size, sha256.New)
	legacy := "pbkdf2:sha256:1000$" + salt + "$" + hex.EncodeToString(digest)

	assert.True(t, h.NeedsRehash(legacy))
	assert.NoError(t, h.Compare(legacy, "hunter2"))
	assert.ErrorIs(t, h.Compare(legacy, "hunter3"), ErrMismatch)

	assert.Error(t, h.Compare("pbkdf2:sha256$"+salt+"$00", "hunter2"))
	assert.Error(t, h.Compare("pbkdf2:md5:1000$"+salt+"$00", "hunter2"))
}

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.Generate(42)
	require.NoError(t, err)
	assert.False(t, strings.HasPrefix(token, "netflix_token_"))

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)

	other, err := m.Generate(42)
	require.NoError(t, err)
	otherClaims, err := m.ValidateAccessToken(other)
	require.NoError(t, err)
	assert.NotEqual(t, claims.TokenID, otherClaims.TokenID)
}

func TestTokenManagerRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenManager("other", time.Hour).Generate(1)
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		past := NewTokenManager("secret", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-time.Hour) }
		token, err := past.Generate(1)
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(token)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("placeholder token", func(t *testing.T) {
		_, err := m.ValidateAccessToken("netflix_token_1")
		assert.Error(t, err)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "admin",
			ID:        "x",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		})
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)
		_, err = m.ValidateAccessToken(signed)
		assert.Error(t, err)
	})
}
