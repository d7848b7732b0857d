// Package cache keeps the latest notification status in redis so the
// status endpoint can answer without touching postgres mid-dispatch.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spacecadet3008/Kristo-mfalme/internal/domain"
)

var ErrMiss = errors.New("status not cached")

const (
	keyPrefix  = "notification:status:"
	defaultTTL = 24 * time.Hour
)

// StatusCache is a best-effort write-through cache. A nil *StatusCache
// is valid and disables caching entirely.
type StatusCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(ctx context.Context, redisURL string) (*StatusCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 2 * time.Second
	opts.WriteTimeout = 2 * time.Second

	rdb := redis.NewClient(opts)

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &StatusCache{rdb: rdb, ttl: defaultTTL}, nil
}

func (c *StatusCache) Set(ctx context.Context, id string, status domain.NotificationStatus) error {
	if c == nil {
		return nil
	}
	if err := c.rdb.Set(ctx, keyPrefix+id, string(status), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache notification status: %w", err)
	}
	return nil
}

func (c *StatusCache) Get(ctx context.Context, id string) (domain.NotificationStatus, error) {
	if c == nil {
		return "", ErrMiss
	}
	status, err := c.rdb.Get(ctx, keyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrMiss
		}
		return "", fmt.Errorf("get notification status: %w", err)
	}
	return domain.NotificationStatus(status), nil
}

func (c *StatusCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
