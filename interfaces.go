// interfaces.go: pluggable collaborator interfaces for Xanthos
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

// Logger defines a minimal logging interface with zero overhead.
// Implementations should use structured logging and be allocation-free.
// The engine logs incidents through it: compression degrading to raw
// storage, corrupt entries evicted on read, maintenance iteration failures
// and memory-pressure rejections.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, keyvals ...interface{})

	// Info logs an info message with optional key-value pairs.
	Info(msg string, keyvals ...interface{})

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, keyvals ...interface{})

	// Error logs an error message with optional key-value pairs.
	Error(msg string, keyvals ...interface{})
}

// NoOpLogger is a logger that does nothing. Used as default to avoid nil checks.
type NoOpLogger struct{}

// Debug does nothing (no-op implementation).
func (NoOpLogger) Debug(msg string, keyvals ...interface{}) {}

// Info does nothing (no-op implementation).
func (NoOpLogger) Info(msg string, keyvals ...interface{}) {}

// Warn does nothing (no-op implementation).
func (NoOpLogger) Warn(msg string, keyvals ...interface{}) {}

// Error does nothing (no-op implementation).
func (NoOpLogger) Error(msg string, keyvals ...interface{}) {}

// TimeProvider provides current time with caching for performance.
// Every TTL, heat and prediction computation reads time through this
// interface, so tests can drive the clock deterministically.
type TimeProvider interface {
	// Now returns the current time in nanoseconds since epoch.
	// This method must be very fast and allocation-free.
	Now() int64
}

// MetricsCollector defines an interface for collecting cache operation metrics.
// Implementations can send metrics to Prometheus, DataDog, StatsD, or other
// monitoring systems. This interface is designed for zero overhead when the
// NoOp implementation is used.
//
// Thread-safety:
//   - All methods must be safe for concurrent use
//   - Multiple goroutines will call these methods simultaneously
type MetricsCollector interface {
	// RecordGet records a Get operation with its latency and hit/miss result.
	RecordGet(latencyNs int64, hit bool)

	// RecordSet records a Set operation with its latency.
	RecordSet(latencyNs int64)

	// RecordDelete records a Delete operation with its latency.
	RecordDelete(latencyNs int64)

	// RecordEviction records a cache eviction event.
	RecordEviction()

	// RecordExpiration records a TTL-based expiration event.
	RecordExpiration()
}

// NoOpMetricsCollector is a metrics collector that does nothing.
// Used as default to avoid nil checks and ensure zero overhead.
type NoOpMetricsCollector struct{}

// RecordGet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordGet(latencyNs int64, hit bool) {}

// RecordSet does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordSet(latencyNs int64) {}

// RecordDelete does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordDelete(latencyNs int64) {}

// RecordEviction does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordEviction() {}

// RecordExpiration does nothing. Inlined by compiler.
func (NoOpMetricsCollector) RecordExpiration() {}
