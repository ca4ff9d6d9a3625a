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

// Package manager keeps the size and count bookkeeping of a cache directory and evicts
// least recently used entries to stay within the configured bounds.
package manager

import (
	"container/list"
	"crypto/md5" //nolint:gosec // Used for file naming, not for security.
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oxtoacart/bpool"
	"go.uber.org/atomic"

	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/system/log"
	"github.com/asgardeo/diskcache/internal/system/utils"
)

const (
	loggerComponentName = "DiskCacheManager"
	readBufferPoolSize  = 8
)

// ErrEntryNotFound is returned when no file exists for a key.
var ErrEntryNotFound = errors.New("cache entry not found")

// DiskCacheManagerInterface defines the operations of a disk cache manager.
type DiskCacheManagerInterface interface {
	WriteEntry(key string, data []byte) error
	ReadEntry(key string) ([]byte, error)
	TouchEntry(key string)
	RemoveByKey(key string) bool
	Clear() bool
	CacheSize() int64
	CacheCount() int64
	EvictCount() int64
}

// usageEntry is the bookkeeping kept for every tracked cache file.
type usageEntry struct {
	path     string
	size     int64
	lastUsed time.Time
}

// DiskCacheManager tracks the files of one cache directory.
type DiskCacheManager struct {
	dir        string
	sizeLimit  int64
	countLimit int64
	cacheSize  atomic.Int64
	cacheCount atomic.Int64
	evictCount atomic.Int64
	mu         sync.Mutex
	index      map[string]*list.Element
	usage      *list.List // front is the most recently used entry
	ready      chan struct{}
	bufferPool *bpool.BufferPool
	logger     *log.Logger
}

// NewDiskCacheManager creates a manager for the directory and starts the warm-up scan in the
// background. Every other method blocks until the scan is complete.
func NewDiskCacheManager(dir string, sizeLimit, countLimit int64) *DiskCacheManager {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyCacheDir, dir))

	if sizeLimit <= 0 {
		sizeLimit = constants.Unlimited
	}
	if countLimit <= 0 {
		countLimit = constants.Unlimited
	}

	m := &DiskCacheManager{
		dir:        dir,
		sizeLimit:  sizeLimit,
		countLimit: countLimit,
		index:      make(map[string]*list.Element),
		usage:      list.New(),
		ready:      make(chan struct{}),
		bufferPool: bpool.NewBufferPool(readBufferPoolSize),
		logger:     logger,
	}
	go m.warmUp()

	return m
}

// Dir returns the cache directory.
func (m *DiskCacheManager) Dir() string {
	return m.dir
}

// SizeLimit returns the maximum total size in bytes.
func (m *DiskCacheManager) SizeLimit() int64 {
	return m.sizeLimit
}

// CountLimit returns the maximum number of entries.
func (m *DiskCacheManager) CountLimit() int64 {
	return m.countLimit
}

// CacheSize returns the total size of the tracked files.
func (m *DiskCacheManager) CacheSize() int64 {
	m.waitForInit()
	return m.cacheSize.Load()
}

// CacheCount returns the number of tracked files.
func (m *DiskCacheManager) CacheCount() int64 {
	m.waitForInit()
	return m.cacheCount.Load()
}

// EvictCount returns the number of files evicted to honour the bounds.
func (m *DiskCacheManager) EvictCount() int64 {
	m.waitForInit()
	return m.evictCount.Load()
}

// FilePathForWrite returns the file path for the key. A file already tracked at that path is
// about to be overwritten, so it is dropped from the totals before the caller writes.
func (m *DiskCacheManager) FilePathForWrite(key string) string {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.filePath(key)
	m.untrackLocked(path)
	return path
}

// FilePathForRead returns the file path for the key and whether the file exists.
func (m *DiskCacheManager) FilePathForRead(key string) (string, bool) {
	m.waitForInit()

	path := m.filePath(key)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// RecordFile adds a freshly written file to the totals and evicts entries while a bound is exceeded.
func (m *DiskCacheManager) RecordFile(path string) {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.recordLocked(path)
}

// Touch marks the file as used now.
func (m *DiskCacheManager) Touch(path string) {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.touchLocked(path)
}

// TouchEntry marks the file of the key as used now.
func (m *DiskCacheManager) TouchEntry(key string) {
	m.Touch(m.filePath(key))
}

// WriteEntry stores the data as the file of the key and updates the totals. The data is written
// to a temporary file, synced and renamed into place.
//
// It performs FilePathForWrite, Touch and RecordFile as one step under the manager lock, so a
// concurrent writer never sees the entry untracked between them. Callers that write the file
// themselves use those three directly.
func (m *DiskCacheManager) WriteEntry(key string, data []byte) error {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.filePath(key)
	previous, hadPrevious := m.untrackLocked(path)

	if err := m.writeFile(path, data); err != nil {
		// The rename never happened, so a previous file is still intact.
		if hadPrevious {
			if _, statErr := os.Stat(path); statErr == nil {
				m.trackLocked(previous)
			}
		}
		return err
	}

	m.touchLocked(path)
	m.recordLocked(path)
	return nil
}

// ReadEntry returns the content of the file of the key.
func (m *DiskCacheManager) ReadEntry(key string) ([]byte, error) {
	m.waitForInit()

	file, err := os.Open(m.filePath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("open cache file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			m.logger.Debug("Failed to close cache file", log.Error(cerr))
		}
	}()

	buf := m.bufferPool.Get()
	defer m.bufferPool.Put(buf)

	if _, err := buf.ReadFrom(file); err != nil {
		return nil, fmt.Errorf("read cache file: %w", err)
	}
	data := make([]byte, buf.Len())
	copy(data, buf.Bytes())
	return data, nil
}

// RemoveByKey deletes the file of the key. It returns false only when an existing file could
// not be deleted.
func (m *DiskCacheManager) RemoveByKey(key string) bool {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.filePath(key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		m.logger.Warn("Failed to delete cache file", log.String("path", path), log.Error(err))
		return false
	}
	m.untrackLocked(path)
	return true
}

// Clear deletes every cache file in the directory. The totals are reset only when every
// deletion succeeds; otherwise only the deleted files leave the totals.
func (m *DiskCacheManager) Clear() bool {
	m.waitForInit()

	m.mu.Lock()
	defer m.mu.Unlock()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			m.resetLocked()
			return true
		}
		m.logger.Warn("Failed to list the cache directory", log.Error(err))
		return false
	}

	cleared := true
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), constants.FileNamePrefix) {
			continue
		}
		path := filepath.Join(m.dir, entry.Name())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("Failed to delete cache file", log.String("path", path), log.Error(err))
			cleared = false
			continue
		}
		m.untrackLocked(path)
	}

	if cleared {
		m.resetLocked()
		m.logger.Debug("Cleared all entries in the cache directory")
	}
	return cleared
}

// waitForInit blocks until the warm-up scan is complete.
func (m *DiskCacheManager) waitForInit() {
	<-m.ready
}

// warmUp seeds the totals and the usage order from the files already in the directory.
func (m *DiskCacheManager) warmUp() {
	defer close(m.ready)
	start := time.Now()

	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			m.logger.Warn("Failed to scan the cache directory", log.Error(err))
		}
		return
	}

	scanned := make([]*usageEntry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(m.dir, name)

		if strings.HasPrefix(name, constants.TempFilePrefix) {
			if err := os.Remove(path); err != nil {
				m.logger.Debug("Failed to delete stale temporary file", log.String("path", path), log.Error(err))
			}
			continue
		}
		if !strings.HasPrefix(name, constants.FileNamePrefix) || !entry.Type().IsRegular() {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		scanned = append(scanned, &usageEntry{path: path, size: info.Size(), lastUsed: info.ModTime()})
	}

	// Oldest first; equal modification times fall back to the file name.
	sort.Slice(scanned, func(i, j int) bool {
		if !scanned[i].lastUsed.Equal(scanned[j].lastUsed) {
			return scanned[i].lastUsed.Before(scanned[j].lastUsed)
		}
		return scanned[i].path < scanned[j].path
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, entry := range scanned {
		m.trackLocked(entry)
	}
	m.evictLocked()

	m.logger.Debug("Cache directory scanned", log.Int64("count", m.cacheCount.Load()),
		log.Int64("size", m.cacheSize.Load()), log.Any("duration", time.Since(start)))
}

// filePath derives the file path from the full digest of the key.
func (m *DiskCacheManager) filePath(key string) string {
	sum := md5.Sum([]byte(key)) //nolint:gosec // Used for file naming, not for security.
	return filepath.Join(m.dir, constants.FileNamePrefix+hex.EncodeToString(sum[:]))
}

// writeFile writes the data to a temporary file, syncs it and renames it onto the path.
func (m *DiskCacheManager) writeFile(path string, data []byte) error {
	if err := utils.EnsureDir(m.dir); err != nil {
		return err
	}

	tmpPath := filepath.Join(m.dir, constants.TempFilePrefix+uuid.NewString())
	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create temporary cache file: %w", err)
	}

	_, err = file.Write(data)
	if err == nil {
		err = file.Sync()
	}
	if cerr := file.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmpPath, path)
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// recordLocked tracks the file at path as the most recently used entry and enforces the bounds.
func (m *DiskCacheManager) recordLocked(path string) {
	info, err := os.Stat(path)
	if err != nil {
		m.logger.Warn("Failed to stat the recorded cache file", log.String("path", path), log.Error(err))
		return
	}

	m.untrackLocked(path)
	m.trackLocked(&usageEntry{path: path, size: info.Size(), lastUsed: time.Now()})
	m.evictLocked()
}

// touchLocked updates the modification time of the file and moves its entry to the front.
func (m *DiskCacheManager) touchLocked(path string) {
	now := time.Now()
	if err := os.Chtimes(path, now, now); err != nil {
		m.logger.Debug("Failed to update the cache file time", log.String("path", path), log.Error(err))
	}
	if element, exists := m.index[path]; exists {
		element.Value.(*usageEntry).lastUsed = now
		m.usage.MoveToFront(element)
	}
}

// trackLocked adds the entry as the most recently used one.
func (m *DiskCacheManager) trackLocked(entry *usageEntry) {
	m.index[entry.path] = m.usage.PushFront(entry)
	m.cacheSize.Add(entry.size)
	m.cacheCount.Inc()
}

// untrackLocked drops the file at path from the totals.
func (m *DiskCacheManager) untrackLocked(path string) (*usageEntry, bool) {
	element, exists := m.index[path]
	if !exists {
		return nil, false
	}
	return m.removeElementLocked(element), true
}

func (m *DiskCacheManager) removeElementLocked(element *list.Element) *usageEntry {
	entry := m.usage.Remove(element).(*usageEntry)
	delete(m.index, entry.path)
	m.cacheSize.Sub(entry.size)
	m.cacheCount.Dec()
	return entry
}

// evictLocked deletes least recently used files while a bound is exceeded. A file that cannot be
// deleted stays tracked and the next older candidate is tried.
func (m *DiskCacheManager) evictLocked() {
	candidate := m.usage.Back()
	for candidate != nil && m.overLimitLocked() {
		previous := candidate.Prev()
		entry := candidate.Value.(*usageEntry)

		if err := os.Remove(entry.path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("Failed to delete the evicted cache file", log.String("path", entry.path),
				log.Error(err))
			candidate = previous
			continue
		}

		m.removeElementLocked(candidate)
		m.evictCount.Inc()
		m.logger.Debug("Cache entry evicted", log.String("path", entry.path), log.Int64("size", entry.size))
		candidate = previous
	}
}

func (m *DiskCacheManager) overLimitLocked() bool {
	return m.cacheCount.Load() > m.countLimit || m.cacheSize.Load() > m.sizeLimit
}

func (m *DiskCacheManager) resetLocked() {
	m.index = make(map[string]*list.Element)
	m.usage.Init()
	m.cacheSize.Store(0)
	m.cacheCount.Store(0)
}
