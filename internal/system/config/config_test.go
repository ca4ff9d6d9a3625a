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

package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

const testResourceDir = "../../../tests/resources"

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) getFilePath(filename string) string {
	return filepath.Join(testResourceDir, filename)
}

func (suite *ConfigTestSuite) TestLoadConfigValid() {
	config, err := LoadConfig(suite.getFilePath("deployment.yaml"))

	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), config)

	// Verify server config
	assert.Equal(suite.T(), "localhost", config.Server.Hostname)
	assert.Equal(suite.T(), 9464, config.Server.Port)

	// Verify memory tier config
	assert.Equal(suite.T(), "/var/cache/diskcache", config.Cache.BaseDir)
	assert.False(suite.T(), config.Cache.Memory.Disabled)
	assert.Equal(suite.T(), 256, config.Cache.Memory.Size)
	assert.Equal(suite.T(), int64(600), config.Cache.Memory.TTL)
	assert.Equal(suite.T(), "LFU", config.Cache.Memory.EvictionPolicy)
	assert.Equal(suite.T(), int64(120), config.Cache.Memory.CleanupInterval)

	// Verify disk caches
	assert.Len(suite.T(), config.Cache.Disks, 3)
	assert.Equal(suite.T(), "images", config.Cache.Disks[0].Name)
	assert.Equal(suite.T(), "/var/cache/diskcache/images", config.Cache.Disks[0].Dir)
	assert.Equal(suite.T(), "64MiB", config.Cache.Disks[0].MaxSize)
	assert.Equal(suite.T(), int64(1000), config.Cache.Disks[0].MaxCount)
}

func (suite *ConfigTestSuite) TestLoadConfigFileNotFound() {
	config, err := LoadConfig(suite.getFilePath("non_existent_config.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
	assert.Contains(suite.T(), err.Error(), "no such file or directory")
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	config, err := LoadConfig(suite.getFilePath("invalid_deployment.yaml"))

	assert.Error(suite.T(), err)
	assert.Nil(suite.T(), config)
}

func (suite *ConfigTestSuite) TestGetDiskCacheProperty() {
	cacheConfig := CacheConfig{
		Disks: []DiskCacheProperty{
			{Name: "images", MaxCount: 10},
			{Name: "documents", MaxCount: 20},
		},
	}

	property, err := cacheConfig.GetDiskCacheProperty("documents")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(20), property.MaxCount)

	_, err = cacheConfig.GetDiskCacheProperty("missing")
	assert.Error(suite.T(), err)
	assert.True(suite.T(), errors.Is(err, ErrDiskCacheNotFound))
	assert.Contains(suite.T(), err.Error(), "missing")
}

func (suite *ConfigTestSuite) TestMaxSizeBytes() {
	testCases := []struct {
		name      string
		maxSize   string
		expected  int64
		expectErr bool
	}{
		{"Empty", "", 0, false},
		{"PlainBytes", "1000", 1000, false},
		{"Kilobytes", "512 kB", 512000, false},
		{"Mebibytes", "64MiB", 64 * 1024 * 1024, false},
		{"Invalid", "lots", 0, true},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			property := DiskCacheProperty{Name: "test", MaxSize: tc.maxSize}
			size, err := property.MaxSizeBytes()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, size)
		})
	}
}
