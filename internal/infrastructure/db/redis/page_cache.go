package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/usermgmt/user-management-api/internal/api/metrics"
	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const genKey = "users:gen"

// PageCache caches serialized listing pages in Redis. Every cache key
// embeds a generation counter that Invalidate bumps on mutation, so a
// stale page is never served after a write; superseded entries simply age
// out via TTL.
//
// Key format: users:page:<gen>:<page>:<size>:<sort_field>:<asc|desc>
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache wraps the given Redis client. A non-positive ttl defaults
// to 30 seconds.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PageCache{client: client, ttl: ttl}
}

// GetPage returns the cached page, or (nil, nil) on a miss.
func (c *PageCache) GetPage(ctx context.Context, q ports.PageQuery) (*ports.PageResult, error) {
	key, err := c.key(ctx, q)
	if err != nil {
		return nil, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.PageCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("page cache get: %w", err)
	}

	var page ports.PageResult
	if err := json.Unmarshal(raw, &page); err != nil {
		// treat a corrupt entry as a miss
		metrics.PageCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}

	metrics.PageCacheTotal.WithLabelValues("hit").Inc()
	return &page, nil
}

// SetPage stores the page under the current generation (expires after ttl).
func (c *PageCache) SetPage(ctx context.Context, q ports.PageQuery, page *ports.PageResult) error {
	key, err := c.key(ctx, q)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("page cache marshal: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// Invalidate bumps the generation counter, orphaning every cached page.
func (c *PageCache) Invalidate(ctx context.Context) error {
	return c.client.Incr(ctx, genKey).Err()
}

func (c *PageCache) key(ctx context.Context, q ports.PageQuery) (string, error) {
	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("page cache generation: %w", err)
	}

	dir := "desc"
	if q.SortAsc {
		dir = "asc"
	}
	return fmt.Sprintf("users:page:%d:%d:%d:%s:%s", gen, q.Page, q.Size, q.SortField, dir), nil
}
