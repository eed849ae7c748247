package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Trending responses are cheap to recompute, so TTLs stay short: a stale
// list is worse than a recomputed one.
const (
	TrendingCacheTTL = time.Minute
	InsightsCacheTTL = 5 * time.Minute

	trendingKeyPrefix = "trending:"
	insightsKey       = "trending:insights"
)

// CacheService provides a Redis cache-aside layer for rendered trending
// lists and insights.
type CacheService struct {
	rdb *redis.Client
}

// NewCacheService creates a new CacheService. If redisURL is empty or the
// connection fails, it returns a CacheService with a nil client and all
// cache operations become no-ops.
func NewCacheService(redisURL string) *CacheService {
	if redisURL == "" {
		log.Println("redis: no URL configured, caching disabled")
		return &CacheService{}
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("redis: invalid URL %q, caching disabled: %v", redisURL, err)
		return &CacheService{}
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis: connection failed, caching disabled: %v", err)
		return &CacheService{}
	}

	log.Println("redis: connected, caching enabled")
	return &CacheService{rdb: rdb}
}

// Client returns the underlying Redis client (for health checks). May be nil.
func (c *CacheService) Client() *redis.Client {
	return c.rdb
}

// GetTrending retrieves a cached trending response. Returns nil if not
// cached or cache is disabled.
func (c *CacheService) GetTrending(ctx context.Context, category, period string, limit int, withInsights bool) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, trendingKey(category, period, limit, withInsights)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetTrending stores a rendered trending response.
func (c *CacheService) SetTrending(ctx context.Context, category, period string, limit int, withInsights bool, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, trendingKey(category, period, limit, withInsights), b, TrendingCacheTTL).Err()
}

// GetInsights retrieves the cached insights summary. Returns nil if not cached.
func (c *CacheService) GetInsights(ctx context.Context) ([]byte, error) {
	if c.rdb == nil {
		return nil, nil
	}
	data, err := c.rdb.Get(ctx, insightsKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// SetInsights stores the insights summary.
func (c *CacheService) SetInsights(ctx context.Context, data interface{}) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, insightsKey, b, InsightsCacheTTL).Err()
}

// InvalidateTrending removes every cached trending list and the insights
// summary (called after engagement counters change).
func (c *CacheService) InvalidateTrending(ctx context.Context) error {
	if c.rdb == nil {
		return nil
	}

	iter := c.rdb.Scan(ctx, 0, trendingKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// Close shuts down the Redis connection.
func (c *CacheService) Close() error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

func trendingKey(category, period string, limit int, withInsights bool) string {
	return fmt.Sprintf("%s%s:%s:%d:%t", trendingKeyPrefix, category, period, limit, withInsights)
}
