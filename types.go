// types.go: core types for the Xanthos cache engine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "time"

// Strategy selects the eviction policy used when the engine is over its
// entry or memory budget.
type Strategy int

const (
	// StrategyLRU evicts the least recently used entries first.
	StrategyLRU Strategy = iota

	// StrategyLFU evicts the least frequently used entries first.
	StrategyLFU

	// StrategyTTL evicts the oldest entries (by creation time) first.
	StrategyTTL

	// StrategyAdaptive derives per-key TTLs from access statistics and
	// evicts with the hybrid scorer.
	StrategyAdaptive

	// StrategyPredictive keeps next-access predictions fresh and evicts
	// with the hybrid scorer.
	StrategyPredictive

	// StrategyHybrid blends age, frequency, priority, heat and predicted
	// future access into a single eviction score. This is the default.
	StrategyHybrid
)

// String returns the lowercase name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLRU:
		return "lru"
	case StrategyLFU:
		return "lfu"
	case StrategyTTL:
		return "ttl"
	case StrategyAdaptive:
		return "adaptive"
	case StrategyPredictive:
		return "predictive"
	case StrategyHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// ParseStrategy converts a strategy name (as found in configuration files)
// into a Strategy. Returns XANTHOS_INVALID_STRATEGY for unknown names.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "lru":
		return StrategyLRU, nil
	case "lfu":
		return StrategyLFU, nil
	case "ttl":
		return StrategyTTL, nil
	case "adaptive":
		return StrategyAdaptive, nil
	case "predictive":
		return StrategyPredictive, nil
	case "hybrid":
		return StrategyHybrid, nil
	default:
		return StrategyHybrid, NewErrInvalidStrategy(name)
	}
}

// Priority controls how reluctant the engine is to evict an entry.
// PriorityPersistent entries are never eviction candidates, for any strategy.
type Priority int

const (
	PriorityLow Priority = iota + 1
	PriorityNormal
	PriorityHigh
	PriorityCritical
	PriorityPersistent
)

// String returns the lowercase name of the priority.
func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityNormal:
		return "normal"
	case PriorityHigh:
		return "high"
	case PriorityCritical:
		return "critical"
	case PriorityPersistent:
		return "persistent"
	default:
		return "unknown"
	}
}

// CompressionType identifies how a stored value is encoded.
type CompressionType int

const (
	// CompressionNone stores the caller's value untouched.
	CompressionNone CompressionType = iota

	// CompressionZlib stores a zlib-compressed msgpack encoding of the value.
	CompressionZlib
)

// SetOptions carries the optional parameters of SetWithOptions.
// The zero value means: TTL resolved by the engine (adaptive or default),
// PriorityNormal, no tags.
type SetOptions struct {
	// TTL overrides the engine's TTL resolution when > 0.
	TTL time.Duration

	// Priority of the entry. Zero means PriorityNormal.
	Priority Priority

	// Tags attached to the entry, usable with ClearTags.
	Tags []string
}

// SortBy selects the ranking criterion for TopEntries.
type SortBy string

const (
	SortByHeat        SortBy = "heat"
	SortByAccessCount SortBy = "access_count"
	SortBySize        SortBy = "size"
)

// EntryInfo is a read-only snapshot of one entry's lifecycle metadata.
type EntryInfo struct {
	Key                 string
	CreatedAt           time.Time
	LastAccessed        time.Time
	AccessCount         int64
	TTL                 time.Duration
	Age                 time.Duration
	Expired             bool
	Priority            Priority
	SizeBytes           int64
	CompressedSize      int64
	CompressionRatio    float64
	HeatScore           float64
	Tags                []string
	PredictedNextAccess time.Time // zero if no prediction exists
}
