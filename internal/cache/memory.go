package cache

import (
	"context"
	"slices"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/spread-sim/internal/models"
)

// MemorySeasonCache keeps season tables in process memory
type MemorySeasonCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemorySeasonCache creates an in-memory cache whose entries live for ttl
func NewMemorySeasonCache(ttl time.Duration) *MemorySeasonCache {
	return &MemorySeasonCache{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get returns a copy of the cached table
func (c *MemorySeasonCache) Get(ctx context.Context, season int) ([]*models.TeamStatsRecord, bool, error) {
	item, found := c.cache.Get(seasonKey(season))
	if !found {
		return nil, false, nil
	}
	records, ok := item.([]*models.TeamStatsRecord)
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(records), true, nil
}

// Set stores a copy of records
func (c *MemorySeasonCache) Set(ctx context.Context, season int, records []*models.TeamStatsRecord) error {
	c.cache.Set(seasonKey(season), slices.Clone(records), c.ttl)
	return nil
}

// Invalidate drops a season
func (c *MemorySeasonCache) Invalidate(ctx context.Context, season int) error {
	c.cache.Delete(seasonKey(season))
	return nil
}

// Backend names the cache implementation
func (c *MemorySeasonCache) Backend() string {
	return "memory"
}

// ItemCount returns the number of cached seasons
func (c *MemorySeasonCache) ItemCount() int {
	return c.cache.ItemCount()
}

func seasonKey(season int) string {
	return strconv.Itoa(season)
}
