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

package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asgardeo/diskcache/internal/diskcache"
	serverconst "github.com/asgardeo/diskcache/internal/system/constants"
)

// writeHome creates a home directory whose configuration serves a single cache named notes.
func writeHome(t *testing.T, port int) string {
	home := t.TempDir()
	configPath := filepath.Join(home, serverconst.DeploymentConfigPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))

	content := fmt.Sprintf(`server:
  hostname: "127.0.0.1"
  port: %d
cache:
  base_dir: %q
  disks:
    - name: "notes"
      max_count: 10
`, port, filepath.Join(home, "caches"))
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return home
}

func TestRunCommand(t *testing.T) {
	baseDir := t.TempDir()
	cache, err := diskcache.NewRegistry(baseDir).GetCacheDisk(filepath.Join(baseDir, "cli"), 0, 0)
	require.NoError(t, err)

	require.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "put", []string{"key", "value"}))
	assert.Equal(t, "value", cache.GetString("key", ""))

	assert.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "get", []string{"key"}))
	assert.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "stats", nil))

	require.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "remove", []string{"key"}))
	assert.Error(t, runCommand(cache, "cli", diskcache.NoExpiry, "get", []string{"key"}))

	require.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "put", []string{"other", "v"}))
	require.NoError(t, runCommand(cache, "cli", diskcache.NoExpiry, "clear", nil))
	assert.Equal(t, int64(0), cache.CacheDiskCount())
}

func TestRunCommandErrors(t *testing.T) {
	baseDir := t.TempDir()
	cache, err := diskcache.NewRegistry(baseDir).GetCacheDisk(filepath.Join(baseDir, "cli"), 0, 0)
	require.NoError(t, err)

	testCases := []struct {
		name    string
		command string
		args    []string
	}{
		{"PutMissingValue", "put", []string{"key"}},
		{"GetMissingKey", "get", nil},
		{"RemoveTooManyArgs", "remove", []string{"a", "b"}},
		{"UnknownCommand", "compact", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, runCommand(cache, "cli", diskcache.NoExpiry, tc.command, tc.args))
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	home := writeHome(t, 0)

	testCases := []struct {
		name     string
		args     []string
		expected int
	}{
		{"NoCommand", []string{"-home", home}, 2},
		{"UnknownFlag", []string{"-unknown"}, 2},
		{"Put", []string{"-home", home, "-cache", "notes", "put", "key", "value"}, 0},
		{"Get", []string{"-home", home, "-cache", "notes", "get", "key"}, 0},
		{"GetMissingKey", []string{"-home", home, "-cache", "notes", "get", "missing"}, 1},
		{"UnknownCache", []string{"-home", home, "-cache", "unknown", "get", "key"}, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, run(tc.args))
		})
	}
}

func TestRunServeFailureReturnsExitCode(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = listener.Close() }()

	// The configured port is taken, so the server fails to start.
	home := writeHome(t, listener.Addr().(*net.TCPAddr).Port)
	assert.Equal(t, 1, run([]string{"-home", home, "serve"}))
}
