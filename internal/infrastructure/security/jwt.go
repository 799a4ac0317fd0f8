package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

type TokenManager struct {
	accessSecret []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewTokenManager(accessSecret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret: []byte(accessSecret),
		ttl:          ttl,
		now:          time.Now,
	}
}

func (m *TokenManager) Generate(userID uint) (string, error) {
	now := m.now()
	at := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	})
	return at.SignedString(m.accessSecret)
}

func (m *TokenManager) ValidateAccessToken(tokenStr string) (*Claims, error) {
	var rc jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &rc, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.accessSecret, nil
	}, jwt.WithExpirationRequired(), jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID, err := strconv.ParseUint(rc.Subject, 10, 64)
	if err != nil || userID == 0 {
		return nil, errors.New("invalid subject")
	}
	if rc.ID == "" {
		return nil, errors.New("missing token id")
	}
	return &Claims{
		UserID:    uint(userID),
		TokenID:   rc.ID,
		ExpiresAt: rc.ExpiresAt.Time,
	}, nil
}
