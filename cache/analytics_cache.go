package analytics_cache

import (
	"sync"
	"time"

	"github.com/shitiandmw/e-commerce-sub001/models"
	"golang.org/x/sync/singleflight"
)

const DefaultTTL = 60 * time.Second

// Clock abstracts time.Now so staleness is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the wall clock.
func SystemClock() Clock { return systemClock{} }

// Key builds the cache key for an analytics query: granularity plus the
// serialized date range.
func Key(q models.AnalyticsQuery) string {
	return q.Granularity + ":" + q.From.UTC().Format(time.RFC3339) + ":" + q.To.UTC().Format(time.RFC3339)
}

type entry struct {
	data      *models.AnalyticsData
	fetchedAt time.Time
}

// Cache holds computed analytics aggregates with a fixed TTL. Concurrent
// lookups for the same key share a single computation.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	clock   Clock
	entries map[string]entry
	group   singleflight.Group
}

func New(ttl time.Duration, clock Clock) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Cache{
		ttl:     ttl,
		clock:   clock,
		entries: make(map[string]entry),
	}
}

// Get returns the cached aggregate for key if it is still fresh.
func (c *Cache) Get(key string) (*models.AnalyticsData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || c.clock.Now().Sub(e.fetchedAt) >= c.ttl {
		return nil, false
	}
	return e.data, true
}

// Set stores an aggregate under key, timestamped with the injected clock.
func (c *Cache) Set(key string, data *models.AnalyticsData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{data: data, fetchedAt: c.clock.Now()}
}

// GetOrCompute returns the fresh cached value for key, or runs compute once
// for all concurrent callers and caches the result. Errors are not cached.
func (c *Cache) GetOrCompute(key string, compute func() (*models.AnalyticsData, error)) (*models.AnalyticsData, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// re-check: another caller may have populated the entry while this
		// one waited on the flight group
		if data, ok := c.Get(key); ok {
			return data, nil
		}
		data, err := compute()
		if err != nil {
			return nil, err
		}
		c.Set(key, data)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AnalyticsData), nil
}

// Invalidate drops every cached aggregate.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}
