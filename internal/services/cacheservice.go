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

// Package services registers the HTTP routes of the cache server.
package services

import (
	"net/http"

	"github.com/asgardeo/diskcache/internal/cacheapi"
)

// CacheService serves the cache entries.
type CacheService struct {
	cacheHandler *cacheapi.CacheHandler
}

// NewCacheService creates the cache service and registers its routes.
func NewCacheService(mux *http.ServeMux, provider cacheapi.CacheProviderInterface) *CacheService {
	instance := &CacheService{
		cacheHandler: &cacheapi.CacheHandler{
			Provider: provider,
		},
	}
	instance.RegisterRoutes(mux)

	return instance
}

// RegisterRoutes registers the cache routes.
func (s *CacheService) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /caches/{name}/stats", s.cacheHandler.HandleGetStats)
	mux.HandleFunc("DELETE /caches/{name}", s.cacheHandler.HandleClear)
	mux.HandleFunc("GET /caches/{name}/entries/{key...}", s.cacheHandler.HandleGetEntry)
	mux.HandleFunc("PUT /caches/{name}/entries/{key...}", s.cacheHandler.HandlePutEntry)
	mux.HandleFunc("DELETE /caches/{name}/entries/{key...}", s.cacheHandler.HandleDeleteEntry)
}
