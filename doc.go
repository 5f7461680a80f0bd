// Package xanthos provides an adaptive, thread-safe, in-memory cache
// engine with per-key TTL learning, next-access prediction, transparent
// compression and hybrid multi-signal eviction.
//
// # Overview
//
// Xanthos is designed for workloads whose access patterns vary strongly
// per key. Instead of one fixed TTL and one eviction queue, every entry
// tracks its own access history and the engine derives:
//
//   - Adaptive TTL: 1.5x the mean recent access interval, clamped to
//     sane bounds, so hot keys live longer and cold keys expire sooner
//   - Next-access prediction: a weighted average of recent intervals with
//     a volatility buffer, used to protect soon-needed entries
//   - Heat score: a decaying recency signal that feeds eviction scoring
//
// # Features
//
//   - Hybrid Eviction: blends age, frequency, priority, heat and
//     predicted future access into a single score; LRU/LFU/TTL available
//     as simpler alternatives
//   - Priorities: five levels; Persistent entries are never evicted
//   - Transparent Compression: string and []byte values whose size reaches
//     a threshold are zlib-compressed, kept only when at least 10% smaller
//   - Memory Budget: admission is bounded by MaxMemory; Set reports
//     refusal instead of silently dropping
//   - Tags: entries carry tag sets and can be cleared by tag
//   - Background Maintenance: owned, cancellable cleanup and prediction
//     loops, joined by Close
//   - GetOrLoad API: cache stampede prevention with singleflight pattern
//   - Negative Caching: cache loader errors to prevent repeated failures
//   - Structured Errors: rich error context with error codes
//   - Metrics Collection: MetricsCollector interface for observability
//     (OpenTelemetry integration in the separate otel package)
//
// # Quick Start
//
//	import "github.com/agilira/xanthos"
//
//	func main() {
//	    engine := xanthos.New(xanthos.DefaultConfig())
//	    defer engine.Close()
//
//	    engine.SetWithOptions("user:123", profile, xanthos.SetOptions{
//	        Priority: xanthos.PriorityHigh,
//	        Tags:     []string{"users"},
//	    })
//
//	    if value, found := engine.Get("user:123"); found {
//	        fmt.Println(value)
//	    }
//
//	    stats := engine.Stats()
//	    fmt.Printf("hit rate: %.2f, compression: %.2f\n",
//	        stats.HitRate, stats.CompressionRatio)
//	}
//
// # Cache Stampede Prevention
//
// The GetOrLoad API prevents cache stampede using the singleflight
// pattern. Multiple concurrent requests for the same key execute the
// loader function only once:
//
//	value, err := engine.GetOrLoad("user:123", func() (interface{}, error) {
//	    return fetchUserFromDB(123)
//	}, xanthos.SetOptions{})
//
// # Shutdown
//
// The engine owns its two maintenance goroutines. Close cancels and joins
// them before tearing down the map; always call it during shutdown.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package xanthos
