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

// Package diskcachemock provides mock implementations of the disk cache interfaces for testing.
package diskcachemock

import (
	"github.com/asgardeo/diskcache/internal/diskcache/manager"
)

// MockDiskCacheManager is a mock implementation of the DiskCacheManagerInterface.
type MockDiskCacheManager struct {
	// MockWriteEntry defines the behavior for the WriteEntry method.
	MockWriteEntry func(key string, data []byte) error

	// MockReadEntry defines the behavior for the ReadEntry method.
	MockReadEntry func(key string) ([]byte, error)

	// MockRemoveByKey defines the behavior for the RemoveByKey method.
	MockRemoveByKey func(key string) bool

	// MockClear defines the behavior for the Clear method.
	MockClear func() bool

	// Size, Count and Evicted are returned by the counter methods.
	Size    int64
	Count   int64
	Evicted int64

	// WriteCalls tracks the keys passed to WriteEntry.
	WriteCalls []string

	// ReadCalls tracks the keys passed to ReadEntry.
	ReadCalls []string

	// TouchCalls tracks the keys passed to TouchEntry.
	TouchCalls []string

	// RemoveCalls tracks the keys passed to RemoveByKey.
	RemoveCalls []string

	// ClearCalls tracks the calls to Clear.
	ClearCalls int
}

var _ manager.DiskCacheManagerInterface = (*MockDiskCacheManager)(nil)

// WriteEntry mocks the WriteEntry method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) WriteEntry(key string, data []byte) error {
	m.WriteCalls = append(m.WriteCalls, key)

	if m.MockWriteEntry != nil {
		return m.MockWriteEntry(key, data)
	}
	return nil
}

// ReadEntry mocks the ReadEntry method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) ReadEntry(key string) ([]byte, error) {
	m.ReadCalls = append(m.ReadCalls, key)

	if m.MockReadEntry != nil {
		return m.MockReadEntry(key)
	}
	return nil, manager.ErrEntryNotFound
}

// TouchEntry mocks the TouchEntry method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) TouchEntry(key string) {
	m.TouchCalls = append(m.TouchCalls, key)
}

// RemoveByKey mocks the RemoveByKey method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) RemoveByKey(key string) bool {
	m.RemoveCalls = append(m.RemoveCalls, key)

	if m.MockRemoveByKey != nil {
		return m.MockRemoveByKey(key)
	}
	return true
}

// Clear mocks the Clear method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) Clear() bool {
	m.ClearCalls++

	if m.MockClear != nil {
		return m.MockClear()
	}
	return true
}

// CacheSize mocks the CacheSize method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) CacheSize() int64 {
	return m.Size
}

// CacheCount mocks the CacheCount method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) CacheCount() int64 {
	return m.Count
}

// EvictCount mocks the EvictCount method of the DiskCacheManagerInterface.
func (m *MockDiskCacheManager) EvictCount() int64 {
	return m.Evicted
}
