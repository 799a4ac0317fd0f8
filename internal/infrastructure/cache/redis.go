package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenCache struct {
	client *redis.Client
}

func NewTokenCache(client *redis.Client) *TokenCache {
	return &TokenCache{client: client}
}

// Revoke кладет id токена в стоп-лист до истечения его срока.
func (c *TokenCache) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // токен и так уже протух
	}
	return c.client.Set(ctx, "revoked_token:"+tokenID, 1, ttl).Err()
}

func (c *TokenCache) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := c.client.Get(ctx, "revoked_token:"+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
