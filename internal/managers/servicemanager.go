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

// Package managers wires the caches and the HTTP services together.
package managers

import (
	"net/http"

	"github.com/asgardeo/diskcache/internal/diskcache"
	"github.com/asgardeo/diskcache/internal/services"
)

// ServiceManagerInterface registers the HTTP services.
type ServiceManagerInterface interface {
	RegisterServices() error
}

// ServiceManager registers the cache and metrics services on a multiplexer.
type ServiceManager struct {
	mux      *http.ServeMux
	provider *CacheProvider
	registry *diskcache.Registry
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux, provider *CacheProvider, registry *diskcache.Registry) ServiceManagerInterface {
	return &ServiceManager{
		mux:      mux,
		provider: provider,
		registry: registry,
	}
}

// RegisterServices registers the cache and metrics services.
func (sm *ServiceManager) RegisterServices() error {
	services.NewCacheService(sm.mux, sm.provider)

	if _, err := services.NewMetricsService(sm.mux, sm.registry); err != nil {
		return err
	}

	return nil
}
