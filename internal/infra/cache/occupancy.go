// Package cache keeps short-lived copies of occupied intervals for the availability read
// path. The booking path never consults it.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"booking-engine/internal/pkg/config"
	"booking-engine/internal/pkg/errs"
	"booking-engine/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "occupancy"

type RedisOccupancyCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisOccupancyCache(rdb redis.Cmdable, ttl time.Duration) *RedisOccupancyCache {
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	return &RedisOccupancyCache{rdb: rdb, ttl: ttl}
}

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func Key(k shared.BookingKey) string {
	return keyPrefix + ":" + k.String()
}

func (c *RedisOccupancyCache) Get(ctx context.Context, key shared.BookingKey) ([]shared.Occupancy, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(err, "occupancy cache get")
	}
	var occ []shared.Occupancy
	if err := json.Unmarshal(raw, &occ); err != nil {
		return nil, false, errs.Wrap(err, "occupancy cache decode")
	}
	return occ, true, nil
}

func (c *RedisOccupancyCache) Set(ctx context.Context, key shared.BookingKey, occ []shared.Occupancy) error {
	if occ == nil {
		occ = []shared.Occupancy{}
	}
	raw, err := json.Marshal(occ)
	if err != nil {
		return errs.Wrap(err, "occupancy cache encode")
	}
	if err := c.rdb.Set(ctx, Key(key), raw, c.ttl).Err(); err != nil {
		return errs.Wrap(err, "occupancy cache set")
	}
	return nil
}

func (c *RedisOccupancyCache) Invalidate(ctx context.Context, keys ...shared.BookingKey) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = Key(k)
	}
	if err := c.rdb.Del(ctx, names...).Err(); err != nil {
		return errs.Wrap(err, "occupancy cache invalidate")
	}
	return nil
}
