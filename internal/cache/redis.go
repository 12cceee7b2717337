// file: internal/cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisCache implements Cache on a Redis server. Values are stored as
// JSON; Get returns json.RawMessage, so callers that share a Redis
// cache must decode what they read (the service layer does).
type redisCache struct {
	client    *redis.Client
	logger    *zap.Logger
	mu        sync.Mutex // guards stats
	stats     Stats
	startTime time.Time
}

func (c *redisCache) count(update func(*Stats)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	update(&c.stats)
}

// NewRedisCache connects to Redis and verifies the connection.
func NewRedisCache(config *Config, logger *zap.Logger) (Cache, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if config.RedisPassword != "" {
		opts.Password = config.RedisPassword
	}
	if config.RedisDB != 0 {
		opts.DB = config.RedisDB
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("Connected to Redis cache", zap.String("addr", opts.Addr))
	return &redisCache{client: client, logger: logger, startTime: time.Now()}, nil
}

func (c *redisCache) Get(ctx context.Context, key string) (interface{}, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.count(func(s *Stats) { s.Misses++ })
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Redis get failed", zap.String("key", key), zap.Error(err))
		c.count(func(s *Stats) { s.Misses++ })
		return nil, false
	}
	c.count(func(s *Stats) { s.Hits++ })

	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return json.RawMessage(data), true
	}
	if s, ok := value.(string); ok {
		return s, true
	}
	return json.RawMessage(data), true
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	c.count(func(s *Stats) { s.Sets++ })
	return nil
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	c.count(func(s *Stats) { s.Deletes++ })
	return nil
}

func (c *redisCache) Exists(ctx context.Context, key string) bool {
	n, err := c.client.Exists(ctx, key).Result()
	return err == nil && n > 0
}

func (c *redisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *redisCache) Stats(ctx context.Context) (*Stats, error) {
	c.mu.Lock()
	stats := c.stats
	c.mu.Unlock()
	stats.Uptime = time.Since(c.startTime)
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(total)
	}
	if size, err := c.client.DBSize(ctx).Result(); err == nil {
		stats.Keys = size
	}
	return &stats, nil
}

func (c *redisCache) Health(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check: %w", err)
	}
	return nil
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
