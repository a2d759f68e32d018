package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hakwonhub/dashboard-gateway/internal/api/metrics"
	"github.com/hakwonhub/dashboard-gateway/internal/core/domain"
)

const defaultLookupTTL = time.Minute

// LookupCache caches normalized lookup sequences as JSON under
// lookup:<resource>. A short TTL keeps reference labels fresh without a
// lookup refetch on every list render. Best effort throughout: any redis or
// decode failure reads as a miss.
type LookupCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLookupCache(client *redis.Client, ttl time.Duration) *LookupCache {
	if ttl <= 0 {
		ttl = defaultLookupTTL
	}
	return &LookupCache{client: client, ttl: ttl}
}

func (c *LookupCache) Get(ctx context.Context, resource domain.Resource) ([]any, bool) {
	b, err := c.client.Get(ctx, c.key(resource)).Bytes()
	if err != nil {
		metrics.LookupCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	var records []any
	if err := json.Unmarshal(b, &records); err != nil {
		metrics.LookupCacheTotal.WithLabelValues("miss").Inc()
		return nil, false
	}
	metrics.LookupCacheTotal.WithLabelValues("hit").Inc()
	return records, true
}

func (c *LookupCache) Set(ctx context.Context, resource domain.Resource, records []any) {
	b, err := json.Marshal(records)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(resource), b, c.ttl).Err()
}

func (c *LookupCache) Invalidate(ctx context.Context, resource domain.Resource) {
	_ = c.client.Del(ctx, c.key(resource)).Err()
}

func (c *LookupCache) key(resource domain.Resource) string {
	return "lookup:" + string(resource)
}
