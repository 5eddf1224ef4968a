package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"designvault/api/internal/models"
)

const statsKey = "components:stats:overview"

var ErrStatsMiss = errors.New("stats cache miss")

// StatsCache holds the aggregated component overview so that the stats
// endpoint does not hit the aggregate query on every call. A nil client
// degrades every operation to a miss.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStatsCache(client *redis.Client, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

func (c *StatsCache) Get(ctx context.Context) (models.ComponentStats, error) {
	if c == nil || c.client == nil {
		return models.ComponentStats{}, ErrStatsMiss
	}

	raw, err := c.client.Get(ctx, statsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.ComponentStats{}, ErrStatsMiss
		}
		return models.ComponentStats{}, err
	}

	var stats models.ComponentStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return models.ComponentStats{}, ErrStatsMiss
	}
	return stats, nil
}

func (c *StatsCache) Set(ctx context.Context, stats models.ComponentStats) error {
	if c == nil || c.client == nil {
		return nil
	}

	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, statsKey, raw, c.ttl).Err()
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Del(ctx, statsKey).Err()
}
