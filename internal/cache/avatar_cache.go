package cache

import (
	"context"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"
)

type AvatarCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewAvatarCache(client *redisv9.Client, ttl time.Duration) *AvatarCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvatarCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *AvatarCache) Get(ctx context.Context, userID uint) ([]byte, bool, error) {
	raw, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get avatar failed: %w", err)
	}
	return raw, true, nil
}

func (c *AvatarCache) Set(ctx context.Context, userID uint, data []byte) error {
	if err := c.client.Set(ctx, c.key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set avatar failed: %w", err)
	}
	return nil
}

func (c *AvatarCache) Delete(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("redis delete avatar failed: %w", err)
	}
	return nil
}

func (c *AvatarCache) key(userID uint) string {
	return fmt.Sprintf("user:avatar:%d", userID)
}
