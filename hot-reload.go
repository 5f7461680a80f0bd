// hot-reload.go: dynamic configuration with Argus integration
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"sync"
	"time"

	"github.com/agilira/argus"
)

// HotConfig provides dynamic configuration reload capabilities using Argus.
// It watches a configuration file and applies the runtime-safe settings to
// a live engine when changes are detected.
type HotConfig struct {
	engine  *Engine
	watcher *argus.Watcher
	mu      sync.RWMutex
	config  Config
	logger  Logger

	// OnReload is called after configuration is successfully reloaded.
	// This callback is optional and must be fast and non-blocking.
	OnReload func(oldConfig, newConfig Config)
}

// HotConfigOptions configures hot reload behavior.
type HotConfigOptions struct {
	// ConfigPath is the path to the configuration file to watch.
	// Supports JSON, YAML, TOML, HCL, INI, Properties formats.
	ConfigPath string

	// PollInterval is how often to check for configuration changes.
	// Default: 1 second. Minimum: 100ms.
	PollInterval time.Duration

	// OnReload is called after configuration is successfully reloaded.
	OnReload func(oldConfig, newConfig Config)

	// Logger for hot reload operations. If nil, NoOpLogger is used.
	Logger Logger
}

// NewHotConfig creates a hot-reloadable configuration for an engine.
//
// Example configuration file (YAML):
//
//	cache:
//	  default_ttl: "1h"
//	  strategy: "hybrid"
//	  enable_compression: true
//	  compression_threshold: 1024
//
// Supported configuration keys:
//   - cache.default_ttl (duration string): TTL for entries without one
//   - cache.strategy (string): lru, lfu, ttl, adaptive, predictive, hybrid
//   - cache.enable_compression (bool): transparent compression toggle
//   - cache.compression_threshold (int): minimum size before compressing
//   - cache.max_size (int): entry cap, recorded but requires a new engine
//
// Note: MaxSize, MaxMemory, Strategy and loop intervals require engine
// reconstruction and are not applied dynamically; only DefaultTTL and the
// compression settings reach the live engine.
func NewHotConfig(engine *Engine, opts HotConfigOptions) (*HotConfig, error) {
	if opts.ConfigPath == "" {
		return nil, NewErrInvalidConfig("config_path is required")
	}

	if opts.PollInterval == 0 {
		opts.PollInterval = 1 * time.Second
	} else if opts.PollInterval < 100*time.Millisecond {
		opts.PollInterval = 100 * time.Millisecond
	}

	if opts.Logger == nil {
		opts.Logger = NoOpLogger{}
	}

	hc := &HotConfig{
		engine:   engine,
		OnReload: opts.OnReload,
		logger:   opts.Logger,
		config:   DefaultConfig(),
	}

	argusConfig := argus.Config{
		PollInterval: opts.PollInterval,
	}

	watcher, err := argus.UniversalConfigWatcherWithConfig(opts.ConfigPath, hc.handleConfigChange, argusConfig)
	if err != nil {
		return nil, err
	}
	hc.watcher = watcher

	return hc, nil
}

// Start begins watching the configuration file for changes.
func (hc *HotConfig) Start() error {
	if hc.watcher.IsRunning() {
		return nil // Already started
	}
	return hc.watcher.Start()
}

// Stop stops watching the configuration file.
func (hc *HotConfig) Stop() error {
	return hc.watcher.Stop()
}

// GetConfig returns the current configuration (thread-safe).
func (hc *HotConfig) GetConfig() Config {
	hc.mu.RLock()
	defer hc.mu.RUnlock()
	return hc.config
}

// handleConfigChange is called by Argus when configuration changes.
func (hc *HotConfig) handleConfigChange(configData map[string]interface{}) {
	hc.mu.Lock()
	oldConfig := hc.config
	newConfig := hc.parseConfig(configData)
	hc.config = newConfig
	hc.mu.Unlock()

	hc.engine.Reconfigure(newConfig)

	if hc.OnReload != nil {
		hc.OnReload(oldConfig, newConfig)
	}
}

// parsePositiveInt extracts a positive integer from interface{} value.
// Supports both int and float64 types (YAML/JSON may vary).
func parsePositiveInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		if v > 0 {
			return v, true
		}
	case float64:
		if v > 0 {
			return int(v), true
		}
	}
	return 0, false
}

// parseDuration extracts a time.Duration from a string value.
func parseDuration(value interface{}) (time.Duration, bool) {
	if str, ok := value.(string); ok {
		if d, err := time.ParseDuration(str); err == nil {
			return d, true
		}
	}
	return 0, false
}

// parseConfig extracts cache configuration from Argus config data.
func (hc *HotConfig) parseConfig(data map[string]interface{}) Config {
	config := hc.config

	// Extract cache section - Argus might nest it or provide it directly
	cacheSection, ok := data["cache"].(map[string]interface{})
	if !ok {
		if _, hasTTL := data["default_ttl"]; hasTTL {
			cacheSection = data
		} else if _, hasMaxSize := data["max_size"]; hasMaxSize {
			cacheSection = data
		} else {
			return config
		}
	}

	if maxSize, ok := parsePositiveInt(cacheSection["max_size"]); ok {
		config.MaxSize = maxSize
	}

	if raw, present := cacheSection["default_ttl"]; present {
		if ttl, ok := parseDuration(raw); ok {
			config.DefaultTTL = ttl
		} else {
			hc.logger.Warn("ignoring invalid default_ttl in config file", "error", NewErrInvalidTTL(raw))
		}
	}

	if name, ok := cacheSection["strategy"].(string); ok {
		strategy, err := ParseStrategy(name)
		if err != nil {
			hc.logger.Warn("ignoring invalid strategy in config file", "error", err)
		} else {
			config.Strategy = strategy
		}
	}

	if enabled, ok := cacheSection["enable_compression"].(bool); ok {
		config.EnableCompression = enabled
	}

	if threshold, ok := parsePositiveInt(cacheSection["compression_threshold"]); ok {
		config.CompressionThreshold = threshold
	}

	if interval, ok := parseDuration(cacheSection["cleanup_interval"]); ok {
		config.CleanupInterval = interval
	}

	return config
}
