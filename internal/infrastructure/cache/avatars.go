package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"streamflix/internal/domain"

	"github.com/redis/go-redis/v9"
)

type AvatarCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAvatarCache(client *redis.Client, ttl time.Duration) *AvatarCache {
	return &AvatarCache{client: client, ttl: ttl}
}

func avatarsKey(category string) string {
	return "avatars:" + category
}

// Get возвращает ok == false при промахе.
func (c *AvatarCache) Get(ctx context.Context, category string) ([]domain.PredefinedAvatar, bool, error) {
	val, err := c.client.Get(ctx, avatarsKey(category)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var avatars []domain.PredefinedAvatar
	if err := json.Unmarshal(val, &avatars); err != nil {
		return nil, false, err
	}
	return avatars, true, nil
}

func (c *AvatarCache) Set(ctx context.Context, category string, avatars []domain.PredefinedAvatar) error {
	data, err := json.Marshal(avatars)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, avatarsKey(category), data, c.ttl).Err()
}
