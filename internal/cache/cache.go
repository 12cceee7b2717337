// file: internal/cache/cache.go
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ===============================
// CACHE INTERFACE
// ===============================

// Cache is the read-through cache behind the domain services (rating
// categories, university and department lists, search results and
// suggestions) and, optionally, the persisted auth token.
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*Stats, error)
	Health(ctx context.Context) error
	Close() error
}

// Stats holds cache counters.
type Stats struct {
	Hits     int64         `json:"hits"`
	Misses   int64         `json:"misses"`
	Sets     int64         `json:"sets"`
	Deletes  int64         `json:"deletes"`
	Keys     int64         `json:"keys"`
	HitRatio float64       `json:"hit_ratio"`
	Uptime   time.Duration `json:"uptime"`
}

// Config holds cache configuration.
type Config struct {
	Provider        string        `json:"provider"` // "memory", "redis"
	TTL             time.Duration `json:"ttl"`
	MaxKeys         int           `json:"max_keys"`
	CleanupInterval time.Duration `json:"cleanup_interval"`

	RedisURL      string `json:"redis_url"`
	RedisDB       int    `json:"redis_db"`
	RedisPassword string `json:"redis_password"`
	PoolSize      int    `json:"pool_size"`
}

// DefaultConfig returns the memory-provider defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:        "memory",
		TTL:             5 * time.Minute,
		MaxKeys:         10000,
		CleanupInterval: time.Minute,
		PoolSize:        10,
	}
}

// New creates a cache for the configured provider.
func New(config *Config, logger *zap.Logger) (Cache, error) {
	if config == nil {
		config = DefaultConfig()
	}
	switch config.Provider {
	case "", "memory":
		return NewMemoryCache(config, logger), nil
	case "redis":
		return NewRedisCache(config, logger)
	default:
		return nil, fmt.Errorf("unknown cache provider %q", config.Provider)
	}
}

// ===============================
// MEMORY CACHE IMPLEMENTATION
// ===============================

type memoryCache struct {
	mu              sync.RWMutex
	items           map[string]*cacheItem
	maxKeys         int
	cleanupInterval time.Duration
	logger          *zap.Logger
	stats           Stats
	startTime       time.Time
	stopCh          chan struct{}
	closeOnce       sync.Once
}

type cacheItem struct {
	value      interface{}
	expiresAt  time.Time
	accessedAt time.Time
}

// NewMemoryCache creates an in-memory cache with periodic expiry sweeps.
func NewMemoryCache(config *Config, logger *zap.Logger) Cache {
	c := &memoryCache{
		items:           make(map[string]*cacheItem),
		maxKeys:         config.MaxKeys,
		cleanupInterval: config.CleanupInterval,
		logger:          logger,
		startTime:       time.Now(),
		stopCh:          make(chan struct{}),
	}
	if c.cleanupInterval <= 0 {
		c.cleanupInterval = time.Minute
	}
	go c.cleanup()
	return c
}

func (c *memoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, exists := c.items[key]
	if !exists {
		c.stats.Misses++
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		c.stats.Misses++
		return nil, false
	}

	item.accessedAt = time.Now()
	c.stats.Hits++
	return item.value, true
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 365 * 24 * time.Hour
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxKeys > 0 && len(c.items) >= c.maxKeys {
		c.evictOldest()
	}

	now := time.Now()
	c.items[key] = &cacheItem{
		value:      value,
		expiresAt:  now.Add(ttl),
		accessedAt: now,
	}
	c.stats.Sets++
	c.stats.Keys = int64(len(c.items))
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.items[key]; exists {
		delete(c.items, key)
		c.stats.Deletes++
		c.stats.Keys = int64(len(c.items))
	}
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) bool {
	_, found := c.Get(ctx, key)
	return found
}

func (c *memoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*cacheItem)
	c.stats.Keys = 0
	return nil
}

func (c *memoryCache) Stats(ctx context.Context) (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Keys = int64(len(c.items))
	stats.Uptime = time.Since(c.startTime)
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(total)
	}
	return &stats, nil
}

func (c *memoryCache) Health(ctx context.Context) error {
	key := "__health_check__"
	value := time.Now().UnixNano()
	if err := c.Set(ctx, key, value, time.Minute); err != nil {
		return fmt.Errorf("cache health check: set: %w", err)
	}
	got, found := c.Get(ctx, key)
	if !found || got != value {
		return fmt.Errorf("cache health check: readback mismatch")
	}
	return nil
}

func (c *memoryCache) Close() error {
	c.closeOnce.Do(func() { close(c.stopCh) })
	return nil
}

// evictOldest drops the least recently accessed item. Caller holds the
// write lock.
func (c *memoryCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	for key, item := range c.items {
		if oldestKey == "" || item.accessedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.accessedAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
		c.stats.Deletes++
	}
}

func (c *memoryCache) cleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, item := range c.items {
				if now.After(item.expiresAt) {
					delete(c.items, key)
				}
			}
			c.stats.Keys = int64(len(c.items))
			c.mu.Unlock()
		}
	}
}
