package forecast

import (
	"fmt"
	"sync"
	"time"

	"steel-procurement/internal/model"
)

type cacheEntry struct {
	points    []model.ForecastPoint
	expiresAt time.Time
}

// Cache holds forecast responses in memory for a fixed TTL.
// A nil *Cache is valid and never hits.
type Cache struct {
	mu    sync.RWMutex
	store map[string]cacheEntry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewCache returns nil when ttl <= 0, which disables caching.
// The cleanup goroutine runs until Close.
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return nil
	}
	c := &Cache{
		store: make(map[string]cacheEntry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	interval := 5 * time.Minute
	if ttl < interval {
		interval = ttl
	}
	go c.cleanup(interval)
	return c
}

func cacheKey(scenario model.Scenario, months int) string {
	return fmt.Sprintf("%s:%d", scenario, months)
}

// Get retrieves a cached forecast if available and not expired
func (c *Cache) Get(key string) ([]model.ForecastPoint, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return append([]model.ForecastPoint(nil), entry.points...), true
}

func (c *Cache) Set(key string, points []model.ForecastPoint) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = cacheEntry{
		points:    append([]model.ForecastPoint(nil), points...),
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

// cleanup periodically removes expired entries
func (c *Cache) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.purgeExpired()
		}
	}
}

func (c *Cache) purgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
		}
	}
}
