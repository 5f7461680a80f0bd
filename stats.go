// stats.go: cumulative counters and derived cache metrics
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "time"

// counters accumulates raw event counts. Mutated only under the engine
// lock; Stats() turns them into a point-in-time snapshot.
type counters struct {
	hits             uint64
	misses           uint64
	evictions        uint64
	expiredRemovals  uint64
	memoryCleanups   uint64
	compressions     uint64
	decompressions   uint64
	decodeFailures   uint64
	predictionHits   uint64
	predictionMisses uint64

	totalSizeBytes      int64
	compressedSizeBytes int64
	peakSizeBytes       int64

	startTime int64 // nanoseconds
}

// Stats is a point-in-time snapshot of engine activity, including derived
// metrics. All sizes are bytes.
type Stats struct {
	Hits    uint64
	Misses  uint64
	HitRate float64 // Hits / (Hits + Misses), 0 when no lookups yet

	Evictions       uint64
	ExpiredRemovals uint64
	MemoryCleanups  uint64

	Compressions     uint64
	Decompressions   uint64
	DecodeFailures   uint64
	CompressionRatio float64 // compressed / original stored bytes

	PredictionHits     uint64
	PredictionMisses   uint64
	PredictionAccuracy float64 // PredictionHits / total predictions

	TotalSizeBytes      int64
	CompressedSizeBytes int64
	PeakSizeBytes       int64
	MemoryLimitBytes    int64

	Entries      int
	MaxSize      int
	Strategy     Strategy
	AvgHeatScore float64

	Uptime time.Duration
}

// snapshot derives a Stats from the raw counters at the given time.
func (c *counters) snapshot(now int64) Stats {
	s := Stats{
		Hits:                c.hits,
		Misses:              c.misses,
		Evictions:           c.evictions,
		ExpiredRemovals:     c.expiredRemovals,
		MemoryCleanups:      c.memoryCleanups,
		Compressions:        c.compressions,
		Decompressions:      c.decompressions,
		DecodeFailures:      c.decodeFailures,
		PredictionHits:      c.predictionHits,
		PredictionMisses:    c.predictionMisses,
		TotalSizeBytes:      c.totalSizeBytes,
		CompressedSizeBytes: c.compressedSizeBytes,
		PeakSizeBytes:       c.peakSizeBytes,
		Uptime:              time.Duration(now - c.startTime),
	}

	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}

	s.CompressionRatio = 1.0
	if c.totalSizeBytes > 0 {
		s.CompressionRatio = float64(c.compressedSizeBytes) / float64(c.totalSizeBytes)
	}

	if total := c.predictionHits + c.predictionMisses; total > 0 {
		s.PredictionAccuracy = float64(c.predictionHits) / float64(total)
	}

	return s
}
