package services

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/bobby-s-dev/weather-dashboard/internal/models"
)

// Payload is the latest pair of raw provider payloads fetched for a city.
// Either half may be nil when its fetch failed.
type Payload struct {
	City      string
	Current   *models.RawSnapshot
	Forecast  *models.RawForecast
	FetchedAt time.Time
}

type CacheItem struct {
	Payload   *Payload
	ExpiresAt time.Time
}

type PayloadCache struct {
	mu              sync.RWMutex
	items           map[string]CacheItem
	logger          *zap.Logger
	defaultDuration time.Duration
	maxSize         int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
	now             func() time.Time
}

func NewPayloadCache(defaultDuration time.Duration, maxSize int, logger *zap.Logger) *PayloadCache {
	cache := &PayloadCache{
		items:           make(map[string]CacheItem),
		logger:          logger,
		defaultDuration: defaultDuration,
		maxSize:         maxSize,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	go cache.startCleanup()

	return cache
}

func cacheKey(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

func (c *PayloadCache) Set(city string, payload *Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(city)
	if _, exists := c.items[key]; !exists && c.maxSize > 0 && len(c.items) >= c.maxSize {
		c.evictOldest()
	}

	expiresAt := c.now().Add(c.defaultDuration)
	c.items[key] = CacheItem{
		Payload:   payload,
		ExpiresAt: expiresAt,
	}

	c.logger.Debug("Payload cached",
		zap.String("city", city),
		zap.Time("expires_at", expiresAt))
}

func (c *PayloadCache) Get(city string) (*Payload, bool) {
	key := cacheKey(city)

	c.mu.RLock()
	item, exists := c.items[key]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if c.now().After(item.ExpiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}

	return item.Payload, true
}

func (c *PayloadCache) Delete(city string) {
	c.mu.Lock()
	delete(c.items, cacheKey(city))
	c.mu.Unlock()
}

func (c *PayloadCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, item := range c.items {
		if oldestKey == "" || item.ExpiresAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = item.ExpiresAt
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
		c.logger.Debug("Evicted oldest payload from cache",
			zap.String("city", oldestKey))
	}
}

func (c *PayloadCache) startCleanup() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *PayloadCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	expiredCount := 0

	for key, item := range c.items {
		if now.After(item.ExpiresAt) {
			delete(c.items, key)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired cache items",
			zap.Int("count", expiredCount))
	}
}

func (c *PayloadCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}

func (c *PayloadCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"items":            len(c.items),
		"max_size":         c.maxSize,
		"default_duration": c.defaultDuration.String(),
	}
}
