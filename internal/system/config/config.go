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

// Package config provides structures and functions for loading and managing cache configurations.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	humanize "github.com/dustin/go-humanize"
	yaml "gopkg.in/yaml.v3"

	"github.com/asgardeo/diskcache/internal/system/log"
)

// ServerConfig holds the metrics server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
}

// MemoryCacheConfig holds the configuration of the in-memory cache tier.
type MemoryCacheConfig struct {
	Disabled        bool   `yaml:"disabled"`
	Size            int    `yaml:"size"`
	TTL             int64  `yaml:"ttl"`
	EvictionPolicy  string `yaml:"eviction_policy"`
	CleanupInterval int64  `yaml:"cleanup_interval"`
}

// DiskCacheProperty holds the configuration of an individual named disk cache.
type DiskCacheProperty struct {
	Name     string `yaml:"name"`
	Dir      string `yaml:"dir"`
	MaxSize  string `yaml:"max_size"`
	MaxCount int64  `yaml:"max_count"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	BaseDir string              `yaml:"base_dir"`
	Memory  MemoryCacheConfig   `yaml:"memory"`
	Disks   []DiskCacheProperty `yaml:"disks"`
}

// Config holds the complete configuration details.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Cache  CacheConfig  `yaml:"cache"`
}

// ErrDiskCacheNotFound is returned when a named disk cache is not configured.
var ErrDiskCacheNotFound = errors.New("disk cache is not configured")

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetDiskCacheProperty returns the disk cache property with the given name.
func (c CacheConfig) GetDiskCacheProperty(name string) (DiskCacheProperty, error) {
	for _, property := range c.Disks {
		if property.Name == name {
			return property, nil
		}
	}
	return DiskCacheProperty{}, fmt.Errorf("%w: %s", ErrDiskCacheNotFound, name)
}

// MaxSizeBytes parses the human readable size limit. An empty value yields zero, meaning unlimited.
func (p DiskCacheProperty) MaxSizeBytes() (int64, error) {
	if p.MaxSize == "" {
		return 0, nil
	}
	size, err := humanize.ParseBytes(p.MaxSize)
	if err != nil {
		return 0, fmt.Errorf("invalid max_size %q for disk cache %s: %w", p.MaxSize, p.Name, err)
	}
	if size > math.MaxInt64 {
		return 0, fmt.Errorf("max_size %q for disk cache %s is out of range", p.MaxSize, p.Name)
	}
	return int64(size), nil
}
