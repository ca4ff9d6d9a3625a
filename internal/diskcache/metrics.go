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
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "diskcache"

var metricLabels = []string{"dir", "max_size", "max_count"}

// Collector exports the statistics of every cache in a registry as Prometheus metrics.
type Collector struct {
	registry       *Registry
	sizeDesc       *prometheus.Desc
	entriesDesc    *prometheus.Desc
	maxSizeDesc    *prometheus.Desc
	maxEntriesDesc *prometheus.Desc
	hitsDesc       *prometheus.Desc
	missesDesc     *prometheus.Desc
	evictionsDesc  *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector for the caches of the registry.
func NewCollector(registry *Registry) *Collector {
	newDesc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(metricsNamespace, "", name), help, metricLabels, nil)
	}

	return &Collector{
		registry:       registry,
		sizeDesc:       newDesc("size_bytes", "Total size of the cache entries in bytes."),
		entriesDesc:    newDesc("entries", "Number of cache entries."),
		maxSizeDesc:    newDesc("max_size_bytes", "Maximum total size of the cache in bytes."),
		maxEntriesDesc: newDesc("max_entries", "Maximum number of cache entries."),
		hitsDesc:       newDesc("hits_total", "Number of lookups that found a live entry."),
		missesDesc:     newDesc("misses_total", "Number of lookups that found no live entry."),
		evictionsDesc:  newDesc("evictions_total", "Number of entries evicted to stay within the bounds."),
	}
}

// Describe sends the descriptors of the cache metrics.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sizeDesc
	ch <- c.entriesDesc
	ch <- c.maxSizeDesc
	ch <- c.maxEntriesDesc
	ch <- c.hitsDesc
	ch <- c.missesDesc
	ch <- c.evictionsDesc
}

// Collect sends the current statistics of every registered cache.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, cache := range c.registry.Caches() {
		stat := cache.GetStats()
		labels := []string{stat.Dir, strconv.FormatInt(stat.MaxSize, 10), strconv.FormatInt(stat.MaxCount, 10)}

		ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(stat.Size), labels...)
		ch <- prometheus.MustNewConstMetric(c.entriesDesc, prometheus.GaugeValue, float64(stat.Count), labels...)
		ch <- prometheus.MustNewConstMetric(c.maxSizeDesc, prometheus.GaugeValue, float64(stat.MaxSize), labels...)
		ch <- prometheus.MustNewConstMetric(c.maxEntriesDesc, prometheus.GaugeValue, float64(stat.MaxCount),
			labels...)
		ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(stat.HitCount), labels...)
		ch <- prometheus.MustNewConstMetric(c.missesDesc, prometheus.CounterValue, float64(stat.MissCount),
			labels...)
		ch <- prometheus.MustNewConstMetric(c.evictionsDesc, prometheus.CounterValue, float64(stat.EvictCount),
			labels...)
	}
}
