/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package memcache provides a bounded in-memory cache with LRU or LFU eviction and per-entry
// expiry. It serves as the memory tier in front of the disk cache.
package memcache

import (
	"container/list"
	"strings"
	"sync"
	"time"

	"github.com/asgardeo/diskcache/internal/system/config"
	"github.com/asgardeo/diskcache/internal/system/log"
)

// inMemoryCacheEntry represents an entry in the in-memory cache with additional metadata.
type inMemoryCacheEntry[T any] struct {
	*cacheEntry[T]
	listElement *list.Element
	frequency   *frequencyItem
}

// InMemoryCache is a bounded in-memory cache keyed by string.
type InMemoryCache[T any] struct {
	enabled        bool
	name           string
	cache          map[string]*inMemoryCacheEntry[T]
	accessOrder    *list.List
	frequencies    *frequencyQueue
	mu             sync.RWMutex
	size           int
	ttl            time.Duration
	evictionPolicy EvictionPolicy
	hitCount       int64
	missCount      int64
	evictCount     int64
	stopCleanup    chan struct{}
	closeOnce      sync.Once
	logger         *log.Logger
}

// NewInMemoryCache creates a new in-memory cache. A size or ttl of zero or less selects the
// default, and a positive cleanup interval starts a routine removing expired entries until the
// cache is closed.
func NewInMemoryCache[T any](name string, size int, ttl time.Duration, evictionPolicy EvictionPolicy,
	cleanupInterval time.Duration) *InMemoryCache[T] {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyCacheName, name))

	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if evictionPolicy != EvictionPolicyLFU {
		evictionPolicy = EvictionPolicyLRU
	}

	logger.Debug("Initializing In-memory cache", log.String("evictionPolicy", string(evictionPolicy)),
		log.Int("size", size), log.Any("ttl", ttl))

	c := &InMemoryCache[T]{
		enabled:        true,
		name:           name,
		cache:          make(map[string]*inMemoryCacheEntry[T]),
		accessOrder:    list.New(),
		frequencies:    newFrequencyQueue(),
		size:           size,
		ttl:            ttl,
		evictionPolicy: evictionPolicy,
		stopCleanup:    make(chan struct{}),
		logger:         logger,
	}
	if cleanupInterval > 0 {
		c.startCleanupRoutine(cleanupInterval)
	}

	return c
}

// NewInMemoryCacheFromConfig creates an in-memory cache from the memory tier configuration.
func NewInMemoryCacheFromConfig[T any](name string, cfg config.MemoryCacheConfig) *InMemoryCache[T] {
	if cfg.Disabled {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String(log.LoggerKeyCacheName, name)).Warn("In-memory cache is disabled, returning empty cache")
		return &InMemoryCache[T]{
			name:    name,
			enabled: false,
		}
	}

	cleanupInterval := DefaultCleanupInterval
	if cfg.CleanupInterval > 0 {
		cleanupInterval = time.Duration(cfg.CleanupInterval) * time.Second
	}

	return NewInMemoryCache[T](name, cfg.Size, time.Duration(cfg.TTL)*time.Second,
		EvictionPolicy(strings.ToUpper(cfg.EvictionPolicy)), cleanupInterval)
}

// Set adds or updates an entry. A negative ttl never expires and a zero ttl uses the default.
func (c *InMemoryCache[T]) Set(key string, value T, ttl time.Duration) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(key, value, c.expiryTime(time.Now(), ttl))
}

// SetWithExpiry adds or updates an entry expiring at the given time. A zero time never expires.
func (c *InMemoryCache[T]) SetWithExpiry(key string, value T, expiryTime time.Time) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.setLocked(key, value, expiryTime)
}

func (c *InMemoryCache[T]) setLocked(key string, value T, expiryTime time.Time) {
	// Update existing entry if an entry exists
	if existingEntry, exists := c.cache[key]; exists {
		existingEntry.Value = value
		existingEntry.ExpiryTime = expiryTime
		c.markAccessed(existingEntry)
		return
	}

	entry := &inMemoryCacheEntry[T]{
		cacheEntry: &cacheEntry[T]{
			Value:      value,
			ExpiryTime: expiryTime,
		},
		listElement: c.accessOrder.PushFront(key),
	}
	if c.evictionPolicy == EvictionPolicyLFU {
		entry.frequency = c.frequencies.add(key)
	}
	c.cache[key] = entry

	// Check if there's a requirement to evict an entry
	if len(c.cache) > c.size {
		c.logger.Debug("Cache size exceeded, evicting an entry")
		c.evict()
	}
}

// Get retrieves a value from the cache.
func (c *InMemoryCache[T]) Get(key string) (T, bool) {
	value, _, found := c.GetWithExpiry(key)
	return value, found
}

// GetWithExpiry retrieves a value together with its expiry time. A zero expiry time never expires.
func (c *InMemoryCache[T]) GetWithExpiry(key string) (T, time.Time, bool) {
	var zero T
	if !c.enabled {
		return zero, time.Time{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.cache[key]
	if !exists {
		c.missCount++
		return zero, time.Time{}, false
	}

	now := time.Now()
	if entry.expired(now) {
		c.deleteEntry(key, entry)
		c.missCount++
		return zero, time.Time{}, false
	}

	c.markAccessed(entry)
	c.hitCount++

	return entry.Value, entry.ExpiryTime, true
}

// Delete removes an entry from the cache.
func (c *InMemoryCache[T]) Delete(key string) {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
	}
}

// Clear removes all entries from the cache and resets the statistics.
func (c *InMemoryCache[T]) Clear() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]*inMemoryCacheEntry[T])
	c.accessOrder.Init()
	c.frequencies = newFrequencyQueue()
	c.hitCount = 0
	c.missCount = 0
	c.evictCount = 0

	c.logger.Debug("Cleared all entries in the cache")
}

// Len returns the number of entries, including expired entries not yet cleaned up.
func (c *InMemoryCache[T]) Len() int {
	if !c.enabled {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.cache)
}

// IsEnabled returns whether the cache is enabled.
func (c *InMemoryCache[T]) IsEnabled() bool {
	return c.enabled
}

// GetName returns the name of the cache.
func (c *InMemoryCache[T]) GetName() string {
	return c.name
}

// GetStats returns cache statistics.
func (c *InMemoryCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	totalOps := c.hitCount + c.missCount
	var hitRate float64
	if totalOps > 0 {
		hitRate = float64(c.hitCount) / float64(totalOps)
	}

	return CacheStat{
		Enabled:    true,
		Size:       len(c.cache),
		MaxSize:    c.size,
		HitCount:   c.hitCount,
		MissCount:  c.missCount,
		HitRate:    hitRate,
		EvictCount: c.evictCount,
	}
}

// CleanupExpired removes all expired entries from the cache.
func (c *InMemoryCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	cleaned := 0
	for key, entry := range c.cache {
		if entry.expired(now) {
			c.deleteEntry(key, entry)
			cleaned++
		}
	}

	if cleaned > 0 {
		c.logger.Debug("Expired cache entries cleaned", log.Int("count", cleaned))
	}
}

// Close stops the cleanup routine. It is safe to call more than once.
func (c *InMemoryCache[T]) Close() {
	if !c.enabled {
		return
	}
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
}

// startCleanupRoutine starts a background routine to clean up expired entries.
func (c *InMemoryCache[T]) startCleanupRoutine(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.CleanupExpired()
			case <-c.stopCleanup:
				return
			}
		}
	}()

	c.logger.Debug("Cache cleanup routine started", log.Any("interval", interval))
}

func (c *InMemoryCache[T]) expiryTime(now time.Time, ttl time.Duration) time.Time {
	switch {
	case ttl < 0:
		return time.Time{}
	case ttl == 0:
		return now.Add(c.ttl)
	default:
		return now.Add(ttl)
	}
}

// markAccessed moves the entry to the front of the access order and counts the use for LFU.
func (c *InMemoryCache[T]) markAccessed(entry *inMemoryCacheEntry[T]) {
	c.accessOrder.MoveToFront(entry.listElement)
	if entry.frequency != nil {
		c.frequencies.use(entry.frequency)
	}
}

// evict removes an entry based on the eviction policy.
func (c *InMemoryCache[T]) evict() {
	if c.evictionPolicy == EvictionPolicyLFU {
		c.evictLeastFrequent()
	} else {
		c.evictOldest()
	}
}

// evictOldest removes the least recently used entry.
func (c *InMemoryCache[T]) evictOldest() {
	oldest := c.accessOrder.Back()
	if oldest == nil {
		return
	}

	key := oldest.Value.(string)
	if entry, exists := c.cache[key]; exists {
		c.deleteEntry(key, entry)
		c.evictCount++
		c.logger.Debug("Cache entry evicted", log.String("key", key))
	}
}

// evictLeastFrequent removes the least frequently used entry.
func (c *InMemoryCache[T]) evictLeastFrequent() {
	item := c.frequencies.popLeast()
	if item == nil {
		return
	}
	if entry, exists := c.cache[item.key]; exists {
		c.deleteEntry(item.key, entry)
		c.evictCount++
		c.logger.Debug("Cache entry evicted (LFU)", log.String("key", item.key),
			log.Int64("accessCount", item.count))
	}
}

// deleteEntry removes an entry from the map, the access order list and the frequency queue.
func (c *InMemoryCache[T]) deleteEntry(key string, entry *inMemoryCacheEntry[T]) {
	delete(c.cache, key)
	c.accessOrder.Remove(entry.listElement)
	if entry.frequency != nil {
		c.frequencies.remove(entry.frequency)
	}
}
