// entry.go: cache entry lifecycle metadata and eviction scoring
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

// cacheEntry holds a stored value together with the lifecycle metadata the
// engine needs for expiry, eviction scoring and prediction. All fields are
// guarded by the engine lock.
type cacheEntry struct {
	// value is the caller's value, or a compressed blob when compression
	// is CompressionZlib.
	value interface{}

	createdAt    int64 // nanoseconds
	lastAccessed int64 // nanoseconds
	accessCount  int64

	// ttl in nanoseconds; 0 means the entry never expires.
	ttl int64

	priority Priority

	sizeBytes      int64 // serialized (pre-compression) size
	compressedSize int64 // stored size; equals sizeBytes when uncompressed

	tags map[string]struct{}

	compression CompressionType

	pattern accessPattern

	// heatScore is a decaying recency-weighted signal of how actively
	// the entry is used, in [0,1].
	heatScore float64

	// predictedNextAccess in nanoseconds, 0 when no prediction exists.
	predictedNextAccess int64
}

// expired reports whether the entry's TTL has elapsed at the given time.
func (e *cacheEntry) expired(now int64) bool {
	if e.ttl <= 0 {
		return false
	}
	return now >= e.createdAt+e.ttl
}

// ageSeconds returns the entry age at the given time.
func (e *cacheEntry) ageSeconds(now int64) float64 {
	return float64(now-e.createdAt) / 1e9
}

// touch records an access: updates recency bookkeeping, feeds the access
// pattern, refreshes the heat score and recomputes the next-access
// prediction.
func (e *cacheEntry) touch(now int64) {
	// Heat uses the gap since the previous access: the tighter the gap,
	// the closer the factor is to 1.
	sinceLast := float64(now-e.lastAccessed) / 1e9
	timeFactor := 1 - sinceLast/3600
	if timeFactor < 0.1 {
		timeFactor = 0.1
	}
	e.heatScore = e.heatScore*0.9 + timeFactor*0.1

	e.lastAccessed = now
	e.accessCount++
	e.pattern.recordAccess(now)

	if predicted, ok := e.pattern.predictNextAccess(now); ok {
		e.predictedNextAccess = predicted
	}
}

// evictionScore computes the hybrid eviction score: higher means more
// likely to be evicted. Persistent entries never reach this; callers filter
// them out before scoring.
//
// The score blends five signals:
//
//	0.25 age + 0.25 inverse frequency + 0.20 inverted priority +
//	0.20 coldness + 0.10 predicted-access proximity
func (e *cacheEntry) evictionScore(now int64) float64 {
	ageFactor := e.ageSeconds(now) / 3600
	if ageFactor > 10 {
		ageFactor = 10
	}

	freqFactor := 1.0 / float64(e.accessCount+1)

	priorityFactor := float64(6-int(e.priority)) / 5

	heatFactor := 1.0 - e.heatScore

	// An access predicted within the next hour shrinks the score in
	// proportion to how soon it is expected.
	predictionFactor := 1.0
	if e.predictedNextAccess > 0 {
		toNext := float64(e.predictedNextAccess-now) / 1e9
		if toNext > 0 && toNext < 3600 {
			predictionFactor = toNext / 3600
		}
	}

	return ageFactor*0.25 + freqFactor*0.25 + priorityFactor*0.2 +
		heatFactor*0.2 + predictionFactor*0.1
}

// compressionRatio returns stored/original size; 1.0 for empty entries.
func (e *cacheEntry) compressionRatio() float64 {
	if e.sizeBytes == 0 {
		return 1.0
	}
	return float64(e.compressedSize) / float64(e.sizeBytes)
}
