// Package cache keeps normalized season tables between provider loads.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/spread-sim/internal/config"
	"github.com/yourusername/spread-sim/internal/models"
)

// SeasonCache stores the team table of a season
type SeasonCache interface {
	// Get returns the cached table and whether it was present
	Get(ctx context.Context, season int) ([]*models.TeamStatsRecord, bool, error)
	Set(ctx context.Context, season int, records []*models.TeamStatsRecord) error
	Invalidate(ctx context.Context, season int) error
	Backend() string
}

// New builds the configured cache backend
func New(ctx context.Context, cfg *config.Config) (SeasonCache, error) {
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second

	switch cfg.Cache.Backend {
	case config.CacheBackendMemory, "":
		return NewMemorySeasonCache(ttl), nil
	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddr,
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
		}
		return NewRedisSeasonCache(client, cfg.CacheKeyPrefix(), ttl), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}
