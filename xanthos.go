// Package xanthos provides an adaptive in-memory cache engine for Go.
//
// Xanthos derives a per-key TTL from observed access statistics, predicts
// the next access of every entry, transparently compresses large values,
// and evicts under pressure with a hybrid multi-signal scorer.
//
// Example usage:
//
//	engine := xanthos.New(xanthos.Config{
//		MaxSize:    10_000,
//		DefaultTTL: time.Hour,
//		Strategy:   xanthos.StrategyHybrid,
//	})
//	defer engine.Close()
//
//	engine.Set("key", "value")
//	value, found := engine.Get("key")
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "time"

const (
	// Version of the Xanthos cache library
	Version = "v0.1.0-dev"

	// DefaultMaxSize is the default maximum number of entries
	DefaultMaxSize = 1000

	// DefaultTTL is the default time-to-live for entries without an explicit TTL
	DefaultTTL = time.Hour

	// DefaultMaxMemory is the default memory budget in bytes (100 MiB)
	DefaultMaxMemory = 100 * 1024 * 1024

	// DefaultCleanupInterval is how often the cleanup loop runs
	DefaultCleanupInterval = 5 * time.Minute

	// DefaultPredictionInterval is how often the prediction loop runs
	DefaultPredictionInterval = time.Minute

	// DefaultCompressionThreshold is the minimum serialized size, in bytes,
	// before compression is attempted
	DefaultCompressionThreshold = 1024

	// compressionAdoptionRatio is the maximum compressed/original ratio at
	// which compression is kept; anything worse stores the raw value
	compressionAdoptionRatio = 0.9

	// maxTimestampSamples bounds the per-key access timestamp history
	maxTimestampSamples = 50

	// maxIntervalSamples bounds the per-key access interval history
	maxIntervalSamples = 20
)
