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

// Package cacheapi exposes the caches over HTTP.
package cacheapi

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/asgardeo/diskcache/internal/diskcache"
	"github.com/asgardeo/diskcache/internal/doublecache"
	"github.com/asgardeo/diskcache/internal/system/config"
	"github.com/asgardeo/diskcache/internal/system/log"
	"github.com/asgardeo/diskcache/internal/system/utils"
)

// CacheProviderInterface resolves caches by name.
type CacheProviderInterface interface {
	GetCache(name string) (*doublecache.CacheDouble, error)
	GetCacheDisk(name string) (*diskcache.CacheDisk, error)
}

// CacheStatsResponse is the body returned for cache statistics.
type CacheStatsResponse struct {
	Name        string  `json:"name"`
	Dir         string  `json:"dir"`
	Size        int64   `json:"size"`
	MaxSize     int64   `json:"maxSize"`
	Count       int64   `json:"count"`
	MaxCount    int64   `json:"maxCount"`
	MemoryCount int     `json:"memoryCount"`
	HitCount    int64   `json:"hitCount"`
	MissCount   int64   `json:"missCount"`
	HitRate     float64 `json:"hitRate"`
	EvictCount  int64   `json:"evictCount"`
}

// CacheHandler handles the cache entry requests.
type CacheHandler struct {
	Provider CacheProviderInterface
}

// HandleGetEntry returns the bytes stored under the key.
func (h *CacheHandler) HandleGetEntry(w http.ResponseWriter, r *http.Request) {
	cache, ok := h.resolveCache(w, r)
	if !ok {
		return
	}

	value := cache.GetBytes(r.PathValue("key"), nil)
	if value == nil {
		utils.WriteJSONError(w, ErrorEntryNotFound, "Cache entry not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(value); err != nil {
		log.GetLogger().Debug("Failed to write the cache entry response", log.Error(err))
	}
}

// HandlePutEntry stores the request body under the key.
func (h *CacheHandler) HandlePutEntry(w http.ResponseWriter, r *http.Request) {
	ttl := diskcache.NoExpiry
	if rawTTL := r.URL.Query().Get(TTLQueryParam); rawTTL != "" {
		parsed, err := time.ParseDuration(rawTTL)
		if err != nil || parsed < 0 {
			utils.WriteJSONError(w, ErrorInvalidRequest, "Invalid ttl parameter", http.StatusBadRequest)
			return
		}
		ttl = parsed
	}

	cache, ok := h.resolveCache(w, r)
	if !ok {
		return
	}

	value, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEntrySize))
	if err != nil {
		utils.WriteJSONError(w, ErrorInvalidRequest, "Failed to read request body", http.StatusBadRequest)
		return
	}

	if !cache.PutBytes(r.PathValue("key"), value, ttl) {
		utils.WriteJSONError(w, ErrorServerError, "Failed to store the cache entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDeleteEntry removes the key under every value type.
func (h *CacheHandler) HandleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	cache, ok := h.resolveCache(w, r)
	if !ok {
		return
	}

	if !cache.Remove(r.PathValue("key")) {
		utils.WriteJSONError(w, ErrorServerError, "Failed to remove the cache entry", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleClear removes every entry of the cache.
func (h *CacheHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	cache, ok := h.resolveCache(w, r)
	if !ok {
		return
	}

	if !cache.Clear() {
		utils.WriteJSONError(w, ErrorServerError, "Failed to clear the cache", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleGetStats returns the statistics of the cache.
func (h *CacheHandler) HandleGetStats(w http.ResponseWriter, r *http.Request) {
	cache, ok := h.resolveCache(w, r)
	if !ok {
		return
	}
	disk, err := h.Provider.GetCacheDisk(r.PathValue("name"))
	if err != nil {
		h.writeProviderError(w, err)
		return
	}

	stats := disk.GetStats()
	utils.WriteJSON(w, http.StatusOK, CacheStatsResponse{
		Name:        r.PathValue("name"),
		Dir:         stats.Dir,
		Size:        stats.Size,
		MaxSize:     stats.MaxSize,
		Count:       stats.Count,
		MaxCount:    stats.MaxCount,
		MemoryCount: cache.CacheMemoryCount(),
		HitCount:    stats.HitCount,
		MissCount:   stats.MissCount,
		HitRate:     stats.HitRate,
		EvictCount:  stats.EvictCount,
	})
}

func (h *CacheHandler) resolveCache(w http.ResponseWriter, r *http.Request) (*doublecache.CacheDouble, bool) {
	cache, err := h.Provider.GetCache(r.PathValue("name"))
	if err != nil {
		h.writeProviderError(w, err)
		return nil, false
	}
	return cache, true
}

func (h *CacheHandler) writeProviderError(w http.ResponseWriter, err error) {
	if errors.Is(err, config.ErrDiskCacheNotFound) {
		utils.WriteJSONError(w, ErrorCacheNotFound, "Cache is not configured", http.StatusNotFound)
		return
	}
	log.GetLogger().Error("Failed to open the cache", log.Error(err))
	utils.WriteJSONError(w, ErrorServerError, "Failed to open the cache", http.StatusInternalServerError)
}
