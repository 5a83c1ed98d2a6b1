package di

import (
	"context"
	"sync"
	"time"
)

// counterSink receives cache hit and miss counts
type counterSink interface {
	IncrementCounter(name string, tags map[string]string)
}

// InMemoryCache is the query result cache. Entries expire after their TTL
// and are swept once a minute until Close is called.
type InMemoryCache struct {
	mu      sync.RWMutex
	items   map[string]cacheItem
	metrics counterSink
	stop    chan struct{}
	once    sync.Once
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// NewInMemoryCache creates a new in-memory cache. metrics may be nil.
func NewInMemoryCache(metrics counterSink) *InMemoryCache {
	cache := &InMemoryCache{
		items:   make(map[string]cacheItem),
		metrics: metrics,
		stop:    make(chan struct{}),
	}

	go cache.cleanupExpired(time.Minute)

	return cache
}

// Get retrieves a value from cache
func (c *InMemoryCache) Get(ctx context.Context, key string) (interface{}, bool) {
	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(item.expiresAt) {
		c.count("cache_misses")
		return nil, false
	}

	c.count("cache_hits")
	return item.value, true
}

// Set stores a value in cache with TTL in seconds
func (c *InMemoryCache) Set(ctx context.Context, key string, value interface{}, ttl int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = cacheItem{
		value:     value,
		expiresAt: time.Now().Add(time.Duration(ttl) * time.Second),
	}

	return nil
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Clear removes all values from cache
func (c *InMemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]cacheItem)
	return nil
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (c *InMemoryCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *InMemoryCache) count(name string) {
	if c.metrics != nil {
		c.metrics.IncrementCounter(name, nil)
	}
}

// cleanupExpired periodically removes expired items
func (c *InMemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.removeExpired(time.Now())
		}
	}
}

func (c *InMemoryCache) removeExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
