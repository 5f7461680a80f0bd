// config.go: configuration for Xanthos
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"time"

	"github.com/agilira/go-timecache"
)

// Config holds configuration parameters for the cache engine.
type Config struct {
	// MaxSize is the maximum number of entries the engine can hold.
	// Must be > 0. Default: DefaultMaxSize.
	MaxSize int

	// DefaultTTL is the time-to-live applied when the caller supplies no
	// explicit TTL and no adaptive TTL can be derived.
	// Default: DefaultTTL (1 hour).
	DefaultTTL time.Duration

	// Strategy selects the eviction policy. Default: StrategyHybrid.
	Strategy Strategy

	// MaxMemory is the memory budget in bytes, accounted on stored
	// (post-compression) sizes. Must be > 0. Default: DefaultMaxMemory.
	MaxMemory int64

	// CleanupInterval is how often the cleanup loop removes expired
	// entries and decays heat scores. Default: DefaultCleanupInterval.
	CleanupInterval time.Duration

	// PredictionInterval is how often the prediction loop refreshes
	// next-access predictions. Only used if EnablePrediction.
	// Default: DefaultPredictionInterval.
	PredictionInterval time.Duration

	// EnableCompression turns on transparent compression of values whose
	// serialized size reaches CompressionThreshold. Default: false.
	// Use DefaultConfig() for the recommended enabled setup.
	EnableCompression bool

	// CompressionThreshold is the minimum serialized size, in bytes, at
	// which compression is attempted. Default: DefaultCompressionThreshold.
	CompressionThreshold int

	// EnablePrediction starts the background prediction loop and keeps
	// per-entry next-access estimates fresh. Default: false.
	EnablePrediction bool

	// NegativeCacheTTL is the time-to-live for caching loader errors.
	// When GetOrLoad fails, the error can be cached to prevent repeated
	// expensive operations that consistently fail.
	// If 0, errors are not cached (default behavior).
	NegativeCacheTTL time.Duration

	// Logger is used for debugging and incident reporting.
	// If nil, NoOpLogger is used. Default: NoOpLogger.
	Logger Logger

	// TimeProvider provides current time for TTL, heat and prediction
	// calculations. If nil, a go-timecache backed provider is used.
	TimeProvider TimeProvider

	// MetricsCollector receives operation metrics (latencies, hit/miss,
	// evictions). If nil, NoOpMetricsCollector is used (zero overhead).
	MetricsCollector MetricsCollector

	// OnEvict is called after an entry is evicted from the cache.
	// The value may still be in its stored (compressed) form.
	// This callback must be fast and non-blocking.
	OnEvict func(key string, value interface{})

	// OnExpire is called after an entry is removed because its TTL
	// elapsed. The value may still be in its stored (compressed) form.
	// This callback must be fast and non-blocking.
	OnExpire func(key string, value interface{})
}

// Validate checks configuration parameters and applies sensible defaults.
// Returns nil (no actual validation errors, only normalization).
//
// This method is automatically called by New, so you typically don't need
// to call it manually. It is provided as a public API if you want to
// inspect the normalized configuration before creating an engine.
//
// Default values applied:
//   - MaxSize: DefaultMaxSize (1000) if <= 0
//   - DefaultTTL: DefaultTTL (1h) if <= 0
//   - MaxMemory: DefaultMaxMemory (100 MiB) if <= 0
//   - CleanupInterval: DefaultCleanupInterval (5m) if <= 0
//   - PredictionInterval: DefaultPredictionInterval (1m) if <= 0
//   - CompressionThreshold: DefaultCompressionThreshold (1024) if <= 0
//   - Logger: NoOpLogger{} if nil
//   - TimeProvider: systemTimeProvider{} if nil
//   - MetricsCollector: NoOpMetricsCollector{} if nil
func (c *Config) Validate() error {
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}

	if c.DefaultTTL <= 0 {
		c.DefaultTTL = DefaultTTL
	}

	if c.MaxMemory <= 0 {
		c.MaxMemory = DefaultMaxMemory
	}

	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}

	if c.PredictionInterval <= 0 {
		c.PredictionInterval = DefaultPredictionInterval
	}

	if c.CompressionThreshold <= 0 {
		c.CompressionThreshold = DefaultCompressionThreshold
	}

	if c.Logger == nil {
		c.Logger = NoOpLogger{}
	}

	if c.TimeProvider == nil {
		c.TimeProvider = &systemTimeProvider{}
	}

	if c.MetricsCollector == nil {
		c.MetricsCollector = NoOpMetricsCollector{}
	}

	return nil
}

// DefaultConfig returns a configuration with sensible defaults:
// hybrid eviction, compression and prediction enabled.
func DefaultConfig() Config {
	return Config{
		MaxSize:              DefaultMaxSize,
		DefaultTTL:           DefaultTTL,
		Strategy:             StrategyHybrid,
		MaxMemory:            DefaultMaxMemory,
		CleanupInterval:      DefaultCleanupInterval,
		PredictionInterval:   DefaultPredictionInterval,
		EnableCompression:    true,
		CompressionThreshold: DefaultCompressionThreshold,
		EnablePrediction:     true,
		Logger:               NoOpLogger{},
		TimeProvider:         &systemTimeProvider{},
		MetricsCollector:     NoOpMetricsCollector{},
	}
}

// systemTimeProvider is the default time provider using go-timecache.
// This provides much faster time access compared to time.Now() with zero allocations.
type systemTimeProvider struct{}

func (t *systemTimeProvider) Now() int64 {
	return timecache.CachedTimeNano()
}
