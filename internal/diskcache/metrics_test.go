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
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CollectorTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestCollectorSuite(t *testing.T) {
	suite.Run(t, new(CollectorTestSuite))
}

func (suite *CollectorTestSuite) SetupTest() {
	suite.registry = NewRegistry(suite.T().TempDir())
}

func (suite *CollectorTestSuite) TestNoCaches() {
	collector := NewCollector(suite.registry)

	assert.Equal(suite.T(), 0, testutil.CollectAndCount(collector))
}

func (suite *CollectorTestSuite) TestCollect() {
	t := suite.T()
	cache, err := suite.registry.GetCacheDiskByName("images", 0, 3)
	require.NoError(t, err)
	_, err = suite.registry.GetCacheDiskByName("documents", 1024, 0)
	require.NoError(t, err)

	require.True(t, cache.PutString("a", "1", NoExpiry))
	require.True(t, cache.PutString("b", "2", NoExpiry))
	cache.GetString("a", "")
	cache.GetString("missing", "")

	collector := NewCollector(suite.registry)
	assert.Equal(t, 14, testutil.CollectAndCount(collector))
	assert.Equal(t, 2, testutil.CollectAndCount(collector, "diskcache_entries"))

	expected := fmt.Sprintf(`
# HELP diskcache_hits_total Number of lookups that found a live entry.
# TYPE diskcache_hits_total counter
diskcache_hits_total{dir=%[1]q,max_count="3",max_size="9223372036854775807"} 1
diskcache_hits_total{dir=%[2]q,max_count="9223372036854775807",max_size="1024"} 0
`, cache.Dir(), suite.registry.Caches()[0].Dir())
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected), "diskcache_hits_total"))

	entries := fmt.Sprintf(`
# HELP diskcache_entries Number of cache entries.
# TYPE diskcache_entries gauge
diskcache_entries{dir=%[1]q,max_count="3",max_size="9223372036854775807"} 2
diskcache_entries{dir=%[2]q,max_count="9223372036854775807",max_size="1024"} 0
`, cache.Dir(), suite.registry.Caches()[0].Dir())
	assert.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(entries), "diskcache_entries"))
}
