package services

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"orderplan-go-api/internal/config"
	"orderplan-go-api/internal/forecast"
	"orderplan-go-api/internal/models"
)

// Generic in-memory cache with type safety
type Cache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]*cacheItem[V]
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

type cacheItem[V any] struct {
	value      V
	expiration time.Time
}

func NewCache[K comparable, V any](ttl time.Duration) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]*cacheItem[V]),
		ttl:   ttl,
		done:  make(chan struct{}),
	}

	// Start cleanup goroutine
	go c.cleanup()

	return c
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		var zero V
		return zero, false
	}

	return item.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &cacheItem[V]{
		value:      value,
		expiration: time.Now().Add(c.ttl),
	}
}

// size returns the number of entries, expired or not.
func (c *Cache[K, V]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Purge drops every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*cacheItem[V])
}

// Close stops the cleanup goroutine.
func (c *Cache[K, V]) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *Cache[K, V]) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, item := range c.items {
				if now.After(item.expiration) {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// ForecastCache memoizes engine results on (parameters, anchor). The engine
// is pure, so a hit is always equivalent to recomputing.
type ForecastCache struct {
	forecasts *Cache[string, []models.QuarterlyRecord]
}

func NewForecastCache(cfg *config.Config) *ForecastCache {
	return &ForecastCache{
		forecasts: NewCache[string, []models.QuarterlyRecord](cfg.CacheTTL()),
	}
}

// Forecast returns the projection for params and anchor, computing it on a miss.
// Callers get their own copy of the records.
func (s *ForecastCache) Forecast(params models.SimulationParameters, anchor *models.QuarterlyRecord) ([]models.QuarterlyRecord, bool) {
	key := generateCacheKey(params, anchor)

	if cached, found := s.forecasts.Get(key); found {
		return models.CloneRecords(cached), true
	}

	result := forecast.Forecast(params, anchor)
	s.forecasts.Set(key, models.CloneRecords(result))
	return result, false
}

// Purge drops every memoized forecast.
func (s *ForecastCache) Purge() {
	s.forecasts.Purge()
}

// Close stops background cleanup.
func (s *ForecastCache) Close() {
	s.forecasts.Close()
}

func generateCacheKey(params models.SimulationParameters, anchor *models.QuarterlyRecord) string {
	// Both types are plain data; marshalling cannot fail.
	raw, _ := json.Marshal(struct {
		Params models.SimulationParameters `json:"p"`
		Anchor *models.QuarterlyRecord     `json:"a"`
	}{params, anchor})
	return fmt.Sprintf("%x", md5.Sum(raw))
}
