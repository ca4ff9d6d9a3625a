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

// Command diskcache operates the configured disk caches and serves them over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	humanize "github.com/dustin/go-humanize"

	"github.com/asgardeo/diskcache/internal/diskcache"
	"github.com/asgardeo/diskcache/internal/diskcache/constants"
	"github.com/asgardeo/diskcache/internal/managers"
	"github.com/asgardeo/diskcache/internal/system/config"
	serverconst "github.com/asgardeo/diskcache/internal/system/constants"
	"github.com/asgardeo/diskcache/internal/system/log"
)

const usage = `Usage: diskcache [flags] <command> [arguments]

Commands:
  put <key> <value>   store a string value
  get <key>           print the string value stored under the key
  remove <key>        remove the key under every value type
  clear               remove every entry of the cache
  stats               print the cache statistics
  serve               serve the caches and metrics over HTTP

Flags:
`

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code. Deferred cleanup runs before
// the code reaches os.Exit.
func run(arguments []string) int {
	logger := log.GetLogger()
	defer logger.Sync()

	flags := flag.NewFlagSet("diskcache", flag.ContinueOnError)
	homeFlag := flags.String("home", "", "Path to the diskcache home directory")
	cacheFlag := flags.String("cache", constants.DefaultCacheName, "Name of the disk cache")
	ttlFlag := flags.Duration("ttl", diskcache.NoExpiry, "Lifetime of stored values, negative for no expiry")
	flags.Usage = func() {
		fmt.Fprint(flags.Output(), usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(arguments); err != nil {
		return 2
	}

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}

	// Get the home directory and load the configurations.
	home := getHome(logger, *homeFlag)
	cfg := initConfigurations(logger, home)

	registry := diskcache.NewRegistry(cfg.Cache.BaseDir)
	provider := managers.NewCacheProvider(cfg.Cache, registry)
	defer provider.Close()

	command, args := flags.Arg(0), flags.Args()[1:]
	if command == "serve" {
		if err := startServer(logger, cfg, provider, registry); err != nil {
			logger.Error("Server failed", log.Error(err))
			return 1
		}
		return 0
	}

	cache, err := provider.GetCacheDisk(*cacheFlag)
	if err != nil {
		logger.Error("Failed to open the cache", log.String(log.LoggerKeyCacheName, *cacheFlag), log.Error(err))
		return 1
	}
	if err := runCommand(cache, *cacheFlag, *ttlFlag, command, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// getHome retrieves and returns the home directory.
func getHome(logger *log.Logger, homeFlag string) string {
	if homeFlag != "" {
		logger.Debug("Using home from command line argument", log.String("home", homeFlag))
		return homeFlag
	}
	if home := os.Getenv(serverconst.HomeEnvironmentVariable); home != "" {
		return home
	}

	// If no home is provided, use the current working directory.
	dir, err := os.Getwd()
	if err != nil {
		logger.Fatal("Failed to get current working directory", log.Error(err))
	}
	return dir
}

// initConfigurations loads the configurations from the home directory.
func initConfigurations(logger *log.Logger, home string) *config.Config {
	configFilePath := filepath.Join(home, serverconst.DeploymentConfigPath)
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.String("path", configFilePath), log.Error(err))
	}
	return cfg
}

// runCommand executes a cache command and prints its result.
func runCommand(cache *diskcache.CacheDisk, name string, ttl time.Duration, command string, args []string) error {
	switch command {
	case "put":
		if len(args) != 2 {
			return errors.New("put requires a key and a value")
		}
		if !cache.PutString(args[0], args[1], ttl) {
			return fmt.Errorf("failed to store %q", args[0])
		}
	case "get":
		if len(args) != 1 {
			return errors.New("get requires a key")
		}
		payload, _, found := cache.Lookup(constants.TypePrefixString, args[0])
		if !found {
			return fmt.Errorf("no entry for %q", args[0])
		}
		fmt.Println(string(payload))
	case "remove":
		if len(args) != 1 {
			return errors.New("remove requires a key")
		}
		if !cache.Remove(args[0]) {
			return fmt.Errorf("failed to remove %q", args[0])
		}
	case "clear":
		if !cache.Clear() {
			return errors.New("failed to clear every entry")
		}
	case "stats":
		printStats(name, cache.GetStats())
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func printStats(name string, stats diskcache.CacheStat) {
	maxSize, maxCount := "unlimited", "unlimited"
	if stats.MaxSize != constants.Unlimited {
		maxSize = humanize.IBytes(uint64(stats.MaxSize))
	}
	if stats.MaxCount != constants.Unlimited {
		maxCount = humanize.Comma(stats.MaxCount)
	}

	fmt.Printf("cache:      %s\n", name)
	fmt.Printf("directory:  %s\n", stats.Dir)
	fmt.Printf("size:       %s / %s\n", humanize.IBytes(uint64(stats.Size)), maxSize)
	fmt.Printf("entries:    %s / %s\n", humanize.Comma(stats.Count), maxCount)
	fmt.Printf("evictions:  %s\n", humanize.Comma(stats.EvictCount))
}

// startServer serves the caches and metrics until the process is interrupted.
func startServer(logger *log.Logger, cfg *config.Config, provider *managers.CacheProvider,
	registry *diskcache.Registry) error {
	// Open the configured caches so their metrics are reported from the start.
	for _, property := range cfg.Cache.Disks {
		if _, err := provider.GetCacheDisk(property.Name); err != nil {
			return fmt.Errorf("open cache %q: %w", property.Name, err)
		}
	}

	mux := http.NewServeMux()
	if err := managers.NewServiceManager(mux, provider, registry).RegisterServices(); err != nil {
		return fmt.Errorf("register services: %w", err)
	}

	// Build the server address using hostname and port from the configurations.
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Hostname, cfg.Server.Port)
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           log.AccessLogHandler(logger, mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down the server", log.Error(err))
		}
	}()

	logger.Info("Starting diskcache server...", log.String("address", serverAddr))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
