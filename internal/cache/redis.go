package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/spread-sim/internal/models"
)

// RedisSeasonCache shares season tables between processes through Redis
type RedisSeasonCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisSeasonCache creates a cache writing keys under prefix
func NewRedisSeasonCache(client *redis.Client, prefix string, ttl time.Duration) *RedisSeasonCache {
	return &RedisSeasonCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Key returns the Redis key of a season table
func (c *RedisSeasonCache) Key(season int) string {
	return fmt.Sprintf("%s:season:%d:teams", c.prefix, season)
}

// Get reads and decodes a season table
func (c *RedisSeasonCache) Get(ctx context.Context, season int) ([]*models.TeamStatsRecord, bool, error) {
	data, err := c.client.Get(ctx, c.Key(season)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading season %d: %w", season, err)
	}

	var records []*models.TeamStatsRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, false, fmt.Errorf("unmarshaling season %d: %w", season, err)
	}
	return records, true, nil
}

// Set encodes and stores a season table
func (c *RedisSeasonCache) Set(ctx context.Context, season int, records []*models.TeamStatsRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling season %d: %w", season, err)
	}
	return c.client.Set(ctx, c.Key(season), data, c.ttl).Err()
}

// Invalidate deletes a season table
func (c *RedisSeasonCache) Invalidate(ctx context.Context, season int) error {
	return c.client.Del(ctx, c.Key(season)).Err()
}

// Backend names the cache implementation
func (c *RedisSeasonCache) Backend() string {
	return "redis"
}

// Close releases the Redis connection pool
func (c *RedisSeasonCache) Close() error {
	return c.client.Close()
}

// Ping checks the Redis connection
func (c *RedisSeasonCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
