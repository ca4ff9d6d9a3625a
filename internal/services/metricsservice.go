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

package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/asgardeo/diskcache/internal/diskcache"
)

// MetricsService exposes the cache metrics in the Prometheus text format.
type MetricsService struct {
	gatherer *prometheus.Registry
}

// NewMetricsService creates the metrics service and registers its route.
func NewMetricsService(mux *http.ServeMux, registry *diskcache.Registry) (*MetricsService, error) {
	gatherer := prometheus.NewRegistry()
	for _, collector := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		diskcache.NewCollector(registry),
	} {
		if err := gatherer.Register(collector); err != nil {
			return nil, err
		}
	}

	instance := &MetricsService{gatherer: gatherer}
	instance.RegisterRoutes(mux)

	return instance, nil
}

// RegisterRoutes registers the metrics route.
func (s *MetricsService) RegisterRoutes(mux *http.ServeMux) {
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
}
