package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/newsphere/content-service/internal/api/metrics"
	"github.com/newsphere/content-service/internal/core/domain"
)

const (
	trendingKey = "trending:articles"
	trendingTTL = time.Minute
)

// TrendingCache caches the trending listing for trendingTTL. A stale window
// of one minute is acceptable; view counters keep accumulating in the store.
type TrendingCache struct {
	client *redis.Client
}

func NewTrendingCache(client *redis.Client) *TrendingCache {
	return &TrendingCache{client: client}
}

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *TrendingCache) Get(ctx context.Context) ([]*domain.Article, error) {
	payload, err := c.client.Get(ctx, trendingKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.TrendingCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("trending cache get: %w", err)
	}

	var articles []*domain.Article
	if err := json.Unmarshal(payload, &articles); err != nil {
		return nil, fmt.Errorf("trending cache decode: %w", err)
	}

	metrics.TrendingCacheTotal.WithLabelValues("hit").Inc()
	return articles, nil
}

// Set stores the listing with the cache TTL.
func (c *TrendingCache) Set(ctx context.Context, articles []*domain.Article) error {
	payload, err := json.Marshal(articles)
	if err != nil {
		return fmt.Errorf("trending cache encode: %w", err)
	}
	return c.client.Set(ctx, trendingKey, payload, trendingTTL).Err()
}
