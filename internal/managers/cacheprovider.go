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

package managers

import (
	"strings"
	"sync"

	"github.com/asgardeo/diskcache/internal/diskcache"
	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/doublecache"
	"github.com/asgardeo/diskcache/internal/memcache"
	"github.com/asgardeo/diskcache/internal/system/config"
	"github.com/asgardeo/diskcache/internal/system/log"
)

// CacheProvider resolves the configured caches by name. Only configured names and the default
// cache name are served.
type CacheProvider struct {
	config   config.CacheConfig
	registry *diskcache.Registry
	caches   map[string]*doublecache.CacheDouble
	memories []*memcache.InMemoryCache[any]
	mu       sync.Mutex
	logger   *log.Logger
}

// NewCacheProvider creates a cache provider over the registry.
func NewCacheProvider(cfg config.CacheConfig, registry *diskcache.Registry) *CacheProvider {
	return &CacheProvider{
		config:   cfg,
		registry: registry,
		caches:   make(map[string]*doublecache.CacheDouble),
		logger:   log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CacheProvider")),
	}
}

// GetCacheDisk returns the disk cache with the given name.
func (p *CacheProvider) GetCacheDisk(name string) (*diskcache.CacheDisk, error) {
	name = normalizeCacheName(name)

	property, err := p.config.GetDiskCacheProperty(name)
	if err != nil {
		if name != constants.DefaultCacheName {
			return nil, err
		}
		property = config.DiskCacheProperty{Name: name}
	}

	maxSize, err := property.MaxSizeBytes()
	if err != nil {
		return nil, err
	}
	if property.Dir != "" {
		return p.registry.GetCacheDisk(property.Dir, maxSize, property.MaxCount)
	}
	return p.registry.GetCacheDiskByName(name, maxSize, property.MaxCount)
}

// GetCache returns the two-level cache with the given name.
func (p *CacheProvider) GetCache(name string) (*doublecache.CacheDouble, error) {
	name = normalizeCacheName(name)

	p.mu.Lock()
	defer p.mu.Unlock()

	if cache, exists := p.caches[name]; exists {
		return cache, nil
	}

	disk, err := p.GetCacheDisk(name)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Creating two-level cache", log.String(log.LoggerKeyCacheName, name))
	memory := memcache.NewInMemoryCacheFromConfig[any](name, p.config.Memory)
	cache := doublecache.NewCacheDouble(memory, disk)
	p.caches[name] = cache
	p.memories = append(p.memories, memory)

	return cache, nil
}

// Close stops the cleanup routines of the memory tiers.
func (p *CacheProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, memory := range p.memories {
		memory.Close()
	}
}

func normalizeCacheName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return constants.DefaultCacheName
	}
	return name
}
