package kpi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const rollupKey = "kpi:rollup"

// Cache keeps the latest rollup snapshot in Redis so dashboard refreshes
// do not re-scan the record set on every request.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache creates a Redis-backed rollup cache.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		panic("kpi: redis client cannot be nil")
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached rollup, or ok=false on a miss. A corrupted cache
// entry counts as a miss; the caller recomputes and overwrites it.
func (c *Cache) Get(ctx context.Context) (*Rollup, bool, error) {
	raw, err := c.client.Get(ctx, rollupKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("kpi: read rollup cache: %w", err)
	}
	var r Rollup
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, nil
	}
	return &r, true, nil
}

// Set stores a rollup snapshot with the configured TTL.
func (c *Cache) Set(ctx context.Context, r Rollup) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("kpi: encode rollup: %w", err)
	}
	if err := c.client.Set(ctx, rollupKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("kpi: write rollup cache: %w", err)
	}
	return nil
}
