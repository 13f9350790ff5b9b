package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"zonewatch/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const (
	zoneCacheKey = "zones:global"
	zoneCacheTTL = 30 * time.Second
)

// ZoneCache keeps global zone listings in one hash, one field per query, so a
// single DEL drops every variant after a transition.
type ZoneCache struct {
	client *goredis.Client
	key    string
	ttl    time.Duration
}

func NewZoneCache(r *Redis) *ZoneCache {
	return &ZoneCache{
		client: r.Client,
		key:    zoneCacheKey,
		ttl:    zoneCacheTTL,
	}
}

func (c *ZoneCache) Get(ctx context.Context, field string) ([]domain.Zone, bool, error) {
	data, err := c.client.HGet(ctx, c.key, field).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cached []domain.CachedZone
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, err
	}
	zones, err := domain.FromCachedZones(cached)
	if err != nil {
		return nil, false, err
	}
	return zones, true, nil
}

func (c *ZoneCache) Set(ctx context.Context, field string, zones []domain.Zone) error {
	b, err := json.Marshal(domain.ToCachedZones(zones))
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.key, field, b)
	pipe.Expire(ctx, c.key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *ZoneCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}
