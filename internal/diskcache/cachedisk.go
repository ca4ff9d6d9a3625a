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

// Package diskcache provides a typed, bounded and expiring key/value cache stored as one file
// per entry in a directory.
package diskcache

import (
	"errors"
	"image"
	"image/draw"
	"time"

	"go.uber.org/atomic"
	"google.golang.org/protobuf/proto"

	"github.com/asgardeo/diskcache/internal/diskcache/codec"
	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/diskcache/envelope"
	"github.com/asgardeo/diskcache/internal/diskcache/manager"
	"github.com/asgardeo/diskcache/internal/system/log"
)

const loggerComponentName = "CacheDisk"

// CacheDisk stores typed values in one cache directory. Every value type lives in its own key
// namespace, so values of different types stored under the same key never collide.
type CacheDisk struct {
	dir       string
	maxSize   int64
	maxCount  int64
	manager   manager.DiskCacheManagerInterface
	hitCount  atomic.Int64
	missCount atomic.Int64
	logger    *log.Logger
}

// newCacheDisk creates a cache over the given manager.
func newCacheDisk(dir string, maxSize, maxCount int64, mgr manager.DiskCacheManagerInterface) *CacheDisk {
	return &CacheDisk{
		dir:      dir,
		maxSize:  maxSize,
		maxCount: maxCount,
		manager:  mgr,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
			log.String(log.LoggerKeyCacheDir, dir)),
	}
}

// Dir returns the cache directory.
func (c *CacheDisk) Dir() string {
	return c.dir
}

// PutBytes stores a byte slice. A negative ttl never expires.
func (c *CacheDisk) PutBytes(key string, value []byte, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixBytes, key, value, ttl, codec.EncodeBytes)
}

// GetBytes returns the byte slice stored under the key, or the default value.
func (c *CacheDisk) GetBytes(key string, defaultValue []byte) []byte {
	return getValue(c, constants.TypePrefixBytes, key, defaultValue, codec.DecodeBytes)
}

// PutString stores a string. A negative ttl never expires.
func (c *CacheDisk) PutString(key, value string, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixString, key, value, ttl, func(v string) ([]byte, error) {
		return codec.EncodeString(v), nil
	})
}

// GetString returns the string stored under the key, or the default value.
func (c *CacheDisk) GetString(key, defaultValue string) string {
	return getValue(c, constants.TypePrefixString, key, defaultValue, codec.DecodeString)
}

// PutJSONObject stores a JSON object. A negative ttl never expires.
func (c *CacheDisk) PutJSONObject(key string, value map[string]interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixJSONObject, key, value, ttl, codec.EncodeJSONObject)
}

// GetJSONObject returns the JSON object stored under the key, or the default value.
func (c *CacheDisk) GetJSONObject(key string, defaultValue map[string]interface{}) map[string]interface{} {
	return getValue(c, constants.TypePrefixJSONObject, key, defaultValue, codec.DecodeJSONObject)
}

// PutJSONArray stores a JSON array. A negative ttl never expires.
func (c *CacheDisk) PutJSONArray(key string, value []interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixJSONArray, key, value, ttl, codec.EncodeJSONArray)
}

// GetJSONArray returns the JSON array stored under the key, or the default value.
func (c *CacheDisk) GetJSONArray(key string, defaultValue []interface{}) []interface{} {
	return getValue(c, constants.TypePrefixJSONArray, key, defaultValue, codec.DecodeJSONArray)
}

// PutBitmap stores an image as PNG. A negative ttl never expires.
func (c *CacheDisk) PutBitmap(key string, value image.Image, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixBitmap, key, value, ttl, codec.EncodeBitmap)
}

// GetBitmap returns the image stored under the key, or the default value.
func (c *CacheDisk) GetBitmap(key string, defaultValue image.Image) image.Image {
	return getValue(c, constants.TypePrefixBitmap, key, defaultValue, codec.DecodeBitmap)
}

// PutDrawable stores a drawable image. A negative ttl never expires.
func (c *CacheDisk) PutDrawable(key string, value draw.Image, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixDrawable, key, value, ttl, codec.EncodeDrawable)
}

// GetDrawable returns the drawable stored under the key, or the default value.
func (c *CacheDisk) GetDrawable(key string, defaultValue draw.Image) draw.Image {
	return getValue(c, constants.TypePrefixDrawable, key, defaultValue, codec.DecodeDrawable)
}

// PutParcelable stores a protobuf message. A negative ttl never expires.
func (c *CacheDisk) PutParcelable(key string, value proto.Message, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixParcelable, key, value, ttl, codec.EncodeParcelable)
}

// GetParcelable returns the message stored under the key decoded into a message produced by the
// creator, or the default value.
func (c *CacheDisk) GetParcelable(key string, creator codec.Creator, defaultValue proto.Message) proto.Message {
	return getValue(c, constants.TypePrefixParcelable, key, defaultValue, func(data []byte) (proto.Message, error) {
		return codec.DecodeParcelable(data, creator)
	})
}

// PutSerializable stores a gob-encodable value. A negative ttl never expires.
func (c *CacheDisk) PutSerializable(key string, value interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixSerializable, key, value, ttl, codec.EncodeSerializable)
}

// GetSerializable returns the value stored under the key, or the default value.
func (c *CacheDisk) GetSerializable(key string, defaultValue interface{}) interface{} {
	return getValue(c, constants.TypePrefixSerializable, key, defaultValue, codec.DecodeSerializable)
}

// Lookup returns the raw payload stored under the type prefix and key together with its due
// time. The due time is zero for entries that never expire. An expired entry is deleted.
func (c *CacheDisk) Lookup(typePrefix, key string) ([]byte, time.Time, bool) {
	compositeKey := typePrefix + key

	data, err := c.manager.ReadEntry(compositeKey)
	if err != nil {
		if !errors.Is(err, manager.ErrEntryNotFound) {
			c.logger.Warn("Failed to read cache entry", log.String("key", compositeKey), log.Error(err))
		}
		c.missCount.Inc()
		return nil, time.Time{}, false
	}

	if envelope.IsExpired(data) {
		c.logger.Debug("Cache entry expired", log.String("key", compositeKey))
		c.manager.RemoveByKey(compositeKey)
		c.missCount.Inc()
		return nil, time.Time{}, false
	}

	payload, err := envelope.Strip(data)
	if err != nil {
		c.logger.Debug("Discarding malformed cache entry", log.String("key", compositeKey), log.Error(err))
		c.manager.RemoveByKey(compositeKey)
		c.missCount.Inc()
		return nil, time.Time{}, false
	}

	c.manager.TouchEntry(compositeKey)
	c.hitCount.Inc()

	due, _ := envelope.DueTime(data)
	return payload, due, true
}

// Remove deletes the key under every type prefix. It returns true only if every removal succeeds.
func (c *CacheDisk) Remove(key string) bool {
	removed := true
	for _, prefix := range constants.TypePrefixes {
		if !c.manager.RemoveByKey(prefix + key) {
			removed = false
		}
	}
	return removed
}

// Clear deletes every entry of the cache.
func (c *CacheDisk) Clear() bool {
	return c.manager.Clear()
}

// CacheDiskSize returns the total size of the entries in bytes.
func (c *CacheDisk) CacheDiskSize() int64 {
	return c.manager.CacheSize()
}

// CacheDiskCount returns the number of entries.
func (c *CacheDisk) CacheDiskCount() int64 {
	return c.manager.CacheCount()
}

// GetStats returns cache statistics.
func (c *CacheDisk) GetStats() CacheStat {
	hits := c.hitCount.Load()
	misses := c.missCount.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return CacheStat{
		Dir:        c.dir,
		Size:       c.manager.CacheSize(),
		MaxSize:    c.maxSize,
		Count:      c.manager.CacheCount(),
		MaxCount:   c.maxCount,
		HitCount:   hits,
		MissCount:  misses,
		HitRate:    hitRate,
		EvictCount: c.manager.EvictCount(),
	}
}

// putValue encodes the value, wraps it with its due time and writes it under the composite key.
func putValue[T any](c *CacheDisk, prefix, key string, value T, ttl time.Duration,
	encode func(T) ([]byte, error)) bool {
	compositeKey := prefix + key

	payload, err := encode(value)
	if err != nil {
		if errors.Is(err, codec.ErrNilValue) {
			c.logger.Debug("Skipping nil cache value", log.String("key", compositeKey))
		} else {
			c.logger.Warn("Failed to encode cache value", log.String("key", compositeKey), log.Error(err))
		}
		return false
	}

	if err := c.manager.WriteEntry(compositeKey, envelope.Wrap(ttl, payload)); err != nil {
		c.logger.Warn("Failed to write cache entry", log.String("key", compositeKey), log.Error(err))
		return false
	}
	return true
}

// getValue looks up the composite key and decodes the payload, falling back to the default value.
func getValue[T any](c *CacheDisk, prefix, key string, defaultValue T, decode func([]byte) (T, error)) T {
	payload, _, ok := c.Lookup(prefix, key)
	if !ok {
		return defaultValue
	}

	value, err := decode(payload)
	if err != nil {
		c.logger.Debug("Failed to decode cache value", log.String("key", prefix+key), log.Error(err))
		return defaultValue
	}
	return value
}
