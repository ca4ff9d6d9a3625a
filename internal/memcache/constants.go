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

package memcache

import "time"

// EvictionPolicy defines the eviction policy for cache entries.
type EvictionPolicy string

const (
	// EvictionPolicyLRU represents the Least Recently Used eviction policy.
	EvictionPolicyLRU EvictionPolicy = "LRU"
	// EvictionPolicyLFU represents the Least Frequently Used eviction policy.
	EvictionPolicyLFU EvictionPolicy = "LFU"
)

const (
	// DefaultCacheSize represents the default number of entries held by a cache.
	DefaultCacheSize = 1000
	// DefaultCacheTTL represents the default TTL of cache entries.
	DefaultCacheTTL = 3600 * time.Second
	// DefaultCleanupInterval represents the default interval for cleaning up expired entries.
	DefaultCleanupInterval = 300 * time.Second
)

const loggerComponentName = "InMemoryCache"
