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

package diskcache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/diskcache/manager"
	"github.com/asgardeo/diskcache/internal/system/log"
	"github.com/asgardeo/diskcache/internal/system/utils"
)

// Registry hands out one CacheDisk per canonical directory and limit pair, so every cache
// directory has a single accounting domain within the process.
type Registry struct {
	baseDir string
	caches  map[string]*CacheDisk
	mu      sync.RWMutex
	logger  *log.Logger
}

// NewRegistry creates a registry. Named caches are created under baseDir, which defaults to a
// directory under the system temporary directory when blank.
func NewRegistry(baseDir string) *Registry {
	if strings.TrimSpace(baseDir) == "" {
		baseDir = filepath.Join(os.TempDir(), "diskcache")
	}
	return &Registry{
		baseDir: baseDir,
		caches:  make(map[string]*CacheDisk),
		logger:  log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheDiskRegistry")),
	}
}

// BaseDir returns the directory holding the named caches.
func (r *Registry) BaseDir() string {
	return r.baseDir
}

// GetCacheDiskByName returns the cache stored in the named directory under the base directory.
// A blank name selects the default cache.
func (r *Registry) GetCacheDiskByName(name string, maxSize, maxCount int64) (*CacheDisk, error) {
	if strings.TrimSpace(name) == "" {
		name = constants.DefaultCacheName
	}
	return r.GetCacheDisk(filepath.Join(r.baseDir, name), maxSize, maxCount)
}

// GetCacheDisk returns the cache for the directory and limits, creating the directory when
// needed. A limit of zero or less means unlimited.
func (r *Registry) GetCacheDisk(dir string, maxSize, maxCount int64) (*CacheDisk, error) {
	if maxSize <= 0 {
		maxSize = constants.Unlimited
	}
	if maxCount <= 0 {
		maxCount = constants.Unlimited
	}

	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	canonicalDir, err := utils.CanonicalDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve cache directory: %w", err)
	}
	cacheKey := fmt.Sprintf("%s_%d_%d", canonicalDir, maxSize, maxCount)

	// First try to get from the map
	r.mu.RLock()
	if cache, exists := r.caches[cacheKey]; exists {
		r.mu.RUnlock()
		return cache, nil
	}
	r.mu.RUnlock()

	// Acquire write lock to create a new cache
	r.mu.Lock()
	defer r.mu.Unlock()

	if cache, exists := r.caches[cacheKey]; exists {
		return cache, nil
	}

	r.logger.Debug("Creating new disk cache", log.String(log.LoggerKeyCacheDir, canonicalDir),
		log.Int64("maxSize", maxSize), log.Int64("maxCount", maxCount))
	cache := newCacheDisk(canonicalDir, maxSize, maxCount,
		manager.NewDiskCacheManager(canonicalDir, maxSize, maxCount))
	r.caches[cacheKey] = cache

	return cache, nil
}

// Caches returns the registered caches ordered by directory.
func (r *Registry) Caches() []*CacheDisk {
	r.mu.RLock()
	caches := make([]*CacheDisk, 0, len(r.caches))
	for _, cache := range r.caches {
		caches = append(caches, cache)
	}
	r.mu.RUnlock()

	sort.Slice(caches, func(i, j int) bool {
		if caches[i].dir != caches[j].dir {
			return caches[i].dir < caches[j].dir
		}
		if caches[i].maxSize != caches[j].maxSize {
			return caches[i].maxSize < caches[j].maxSize
		}
		return caches[i].maxCount < caches[j].maxCount
	})
	return caches
}
