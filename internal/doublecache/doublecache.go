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

// Package doublecache layers the in-memory cache in front of the disk cache.
package doublecache

import (
	"image"
	"image/draw"
	"time"

	"google.golang.org/protobuf/proto"

	"github.com/asgardeo/diskcache/internal/diskcache"
	"github.com/asgardeo/diskcache/internal/diskcache/codec"
	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/diskcache/envelope"
	"github.com/asgardeo/diskcache/internal/memcache"
	"github.com/asgardeo/diskcache/internal/system/log"
)

// CacheDouble stores every value in both tiers and serves reads from memory when it can.
// Values served from memory are shared, so callers must not mutate them.
type CacheDouble struct {
	memory *memcache.InMemoryCache[any]
	disk   *diskcache.CacheDisk
	logger *log.Logger
}

// NewCacheDouble creates a two-level cache.
func NewCacheDouble(memory *memcache.InMemoryCache[any], disk *diskcache.CacheDisk) *CacheDouble {
	return &CacheDouble{
		memory: memory,
		disk:   disk,
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheDouble"),
			log.String(log.LoggerKeyCacheDir, disk.Dir())),
	}
}

// PutBytes stores a byte slice in both tiers.
func (c *CacheDouble) PutBytes(key string, value []byte, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixBytes, key, value, ttl, c.disk.PutBytes)
}

// GetBytes returns the byte slice stored under the key, or the default value.
func (c *CacheDouble) GetBytes(key string, defaultValue []byte) []byte {
	return getValue(c, constants.TypePrefixBytes, key, defaultValue, codec.DecodeBytes)
}

// PutString stores a string in both tiers.
func (c *CacheDouble) PutString(key, value string, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixString, key, value, ttl, c.disk.PutString)
}

// GetString returns the string stored under the key, or the default value.
func (c *CacheDouble) GetString(key, defaultValue string) string {
	return getValue(c, constants.TypePrefixString, key, defaultValue, codec.DecodeString)
}

// PutJSONObject stores a JSON object in both tiers.
func (c *CacheDouble) PutJSONObject(key string, value map[string]interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixJSONObject, key, value, ttl, c.disk.PutJSONObject)
}

// GetJSONObject returns the JSON object stored under the key, or the default value.
func (c *CacheDouble) GetJSONObject(key string, defaultValue map[string]interface{}) map[string]interface{} {
	return getValue(c, constants.TypePrefixJSONObject, key, defaultValue, codec.DecodeJSONObject)
}

// PutJSONArray stores a JSON array in both tiers.
func (c *CacheDouble) PutJSONArray(key string, value []interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixJSONArray, key, value, ttl, c.disk.PutJSONArray)
}

// GetJSONArray returns the JSON array stored under the key, or the default value.
func (c *CacheDouble) GetJSONArray(key string, defaultValue []interface{}) []interface{} {
	return getValue(c, constants.TypePrefixJSONArray, key, defaultValue, codec.DecodeJSONArray)
}

// PutBitmap stores an image in both tiers.
func (c *CacheDouble) PutBitmap(key string, value image.Image, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixBitmap, key, value, ttl, c.disk.PutBitmap)
}

// GetBitmap returns the image stored under the key, or the default value.
func (c *CacheDouble) GetBitmap(key string, defaultValue image.Image) image.Image {
	return getValue(c, constants.TypePrefixBitmap, key, defaultValue, codec.DecodeBitmap)
}

// PutDrawable stores a drawable in both tiers.
func (c *CacheDouble) PutDrawable(key string, value draw.Image, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixDrawable, key, value, ttl, c.disk.PutDrawable)
}

// GetDrawable returns the drawable stored under the key, or the default value.
func (c *CacheDouble) GetDrawable(key string, defaultValue draw.Image) draw.Image {
	return getValue(c, constants.TypePrefixDrawable, key, defaultValue, codec.DecodeDrawable)
}

// PutParcelable stores a protobuf message in both tiers.
func (c *CacheDouble) PutParcelable(key string, value proto.Message, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixParcelable, key, value, ttl, c.disk.PutParcelable)
}

// GetParcelable returns the message stored under the key, or the default value. The creator is
// only used when the value has to be read from disk.
func (c *CacheDouble) GetParcelable(key string, creator codec.Creator, defaultValue proto.Message) proto.Message {
	return getValue(c, constants.TypePrefixParcelable, key, defaultValue, func(data []byte) (proto.Message, error) {
		return codec.DecodeParcelable(data, creator)
	})
}

// PutSerializable stores a gob-encodable value in both tiers.
func (c *CacheDouble) PutSerializable(key string, value interface{}, ttl time.Duration) bool {
	return putValue(c, constants.TypePrefixSerializable, key, value, ttl, c.disk.PutSerializable)
}

// GetSerializable returns the value stored under the key, or the default value.
func (c *CacheDouble) GetSerializable(key string, defaultValue interface{}) interface{} {
	return getValue(c, constants.TypePrefixSerializable, key, defaultValue, codec.DecodeSerializable)
}

// Remove deletes the key under every type prefix from both tiers.
func (c *CacheDouble) Remove(key string) bool {
	for _, prefix := range constants.TypePrefixes {
		c.memory.Delete(prefix + key)
	}
	return c.disk.Remove(key)
}

// Clear deletes every entry from both tiers.
func (c *CacheDouble) Clear() bool {
	c.memory.Clear()
	return c.disk.Clear()
}

// CacheMemoryCount returns the number of entries in the memory tier.
func (c *CacheDouble) CacheMemoryCount() int {
	return c.memory.Len()
}

// CacheDiskSize returns the total size of the disk tier in bytes.
func (c *CacheDouble) CacheDiskSize() int64 {
	return c.disk.CacheDiskSize()
}

// CacheDiskCount returns the number of entries in the disk tier.
func (c *CacheDouble) CacheDiskCount() int64 {
	return c.disk.CacheDiskCount()
}

// putValue writes the value to disk first and mirrors it in memory only when the write succeeds.
// The memory entry expires at the due time recorded on disk.
func putValue[T any](c *CacheDouble, prefix, key string, value T, ttl time.Duration,
	diskPut func(string, T, time.Duration) bool) bool {
	compositeKey := prefix + key

	// Taken before the write so the memory entry never outlives the disk entry.
	due := envelope.DueTimeFor(ttl)
	if !diskPut(key, value, ttl) {
		c.memory.Delete(compositeKey)
		return false
	}

	if !due.IsZero() && !due.After(time.Now()) {
		c.memory.Delete(compositeKey)
		return true
	}
	c.memory.SetWithExpiry(compositeKey, value, due)
	return true
}

// getValue serves the value from memory, falling back to disk and repopulating memory with the
// remaining lifetime of the disk entry.
func getValue[T any](c *CacheDouble, prefix, key string, defaultValue T, decode func([]byte) (T, error)) T {
	compositeKey := prefix + key

	if cached, found := c.memory.Get(compositeKey); found {
		if value, ok := cached.(T); ok {
			return value
		}
		c.memory.Delete(compositeKey)
	}

	payload, due, found := c.disk.Lookup(prefix, key)
	if !found {
		return defaultValue
	}
	value, err := decode(payload)
	if err != nil {
		c.logger.Debug("Failed to decode cache value", log.String("key", compositeKey), log.Error(err))
		return defaultValue
	}

	if !due.IsZero() && !due.After(time.Now()) {
		return value
	}
	c.memory.SetWithExpiry(compositeKey, value, due)
	return value
}
