// engine.go: cache engine orchestration
//
// The engine owns a single key->entry map guarded by one mutex. Every
// public operation holds the lock for its full critical section, so
// concurrent callers are safe and per-key mutations never interleave.
// Compression runs outside the lock; it is the only CPU-bound step.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Engine is an adaptive in-memory cache. Construct it once with New,
// pass it by reference to every consumer, and Close it during shutdown
// to join its background maintenance goroutines.
type Engine struct {
	mu sync.Mutex

	maxSize    int
	defaultTTL int64 // nanoseconds
	strategy   Strategy
	maxMemory  int64

	entries     map[string]*cacheEntry
	accessOrder map[string]int64 // key -> last access, for LRU
	frequency   map[string]int64 // key -> access count, for LFU
	tagIndex    map[string]map[string]struct{}
	heatIndex   map[string]float64

	// globalPattern aggregates accesses across all keys; adaptive TTL
	// falls back to it when a key has no history of its own.
	globalPattern accessPattern

	stats counters

	codec *codec

	timeProvider TimeProvider
	logger       Logger
	metrics      MetricsCollector
	onEvict      func(key string, value interface{})
	onExpire     func(key string, value interface{})

	cleanupInterval    time.Duration
	predictionInterval time.Duration
	predictionEnabled  bool

	// Loader plumbing (GetOrLoad).
	inflight      sync.Map
	negativeCache sync.Map
	negativeTTL   int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	closed bool
}

// removal records an entry taken out of the map while the lock was held.
// Callbacks and metrics fire after the lock is released.
type removal struct {
	key     string
	value   interface{}
	expired bool
}

// New creates a cache engine and starts its background maintenance loops:
// a cleanup loop on cfg.CleanupInterval and, when cfg.EnablePrediction is
// set, a prediction loop on cfg.PredictionInterval. Close the engine to
// stop them.
func New(cfg Config) *Engine {
	_ = cfg.Validate()

	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		maxSize:            cfg.MaxSize,
		defaultTTL:         int64(cfg.DefaultTTL),
		strategy:           cfg.Strategy,
		maxMemory:          cfg.MaxMemory,
		entries:            make(map[string]*cacheEntry),
		accessOrder:        make(map[string]int64),
		frequency:          make(map[string]int64),
		tagIndex:           make(map[string]map[string]struct{}),
		heatIndex:          make(map[string]float64),
		codec:              newCodec(cfg.EnableCompression, cfg.CompressionThreshold),
		timeProvider:       cfg.TimeProvider,
		logger:             cfg.Logger,
		metrics:            cfg.MetricsCollector,
		onEvict:            cfg.OnEvict,
		onExpire:           cfg.OnExpire,
		cleanupInterval:    cfg.CleanupInterval,
		predictionInterval: cfg.PredictionInterval,
		predictionEnabled:  cfg.EnablePrediction,
		negativeTTL:        int64(cfg.NegativeCacheTTL),
		ctx:                ctx,
		cancel:             cancel,
	}
	e.stats.startTime = e.timeProvider.Now()

	e.wg.Add(1)
	go e.cleanupLoop()
	if e.predictionEnabled {
		e.wg.Add(1)
		go e.predictionLoop()
	}

	e.logger.Info("engine started",
		"max_size", e.maxSize,
		"strategy", e.strategy.String(),
		"max_memory", e.maxMemory,
		"prediction", e.predictionEnabled)
	return e
}

// Get retrieves a value from the cache. A missing or expired key reports
// found=false; an expired entry is removed on access. On a hit the entry's
// access bookkeeping (heat, pattern, indices) is updated and the value is
// decompressed if needed.
func (e *Engine) Get(key string) (interface{}, bool) {
	start := e.timeProvider.Now()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, false
	}

	entry, ok := e.entries[key]
	if !ok {
		e.stats.misses++
		e.mu.Unlock()
		e.metrics.RecordGet(e.timeProvider.Now()-start, false)
		return nil, false
	}

	now := start
	if entry.expired(now) {
		e.removeEntryLocked(key, entry)
		e.stats.misses++
		e.stats.expiredRemovals++
		e.mu.Unlock()
		e.dispatch([]removal{{key: key, value: entry.value, expired: true}})
		e.metrics.RecordGet(e.timeProvider.Now()-start, false)
		return nil, false
	}

	// Fold the previous prediction, if any, into accuracy bookkeeping
	// before this access produces a new one.
	if accuracy, had := entry.pattern.updateAccuracy(now); had {
		if accuracy >= 0.5 {
			e.stats.predictionHits++
		} else {
			e.stats.predictionMisses++
		}
	}

	entry.touch(now)
	e.accessOrder[key] = now
	e.frequency[key]++
	e.heatIndex[key] = entry.heatScore
	e.globalPattern.recordAccess(now)

	value, err := e.codec.decompress(key, entry.value, entry.compression)
	if err != nil {
		// Corrupt stored payload: auto-evict and report a miss.
		e.removeEntryLocked(key, entry)
		e.stats.decodeFailures++
		e.stats.misses++
		e.mu.Unlock()
		e.logger.Error("evicted corrupt cache entry", "key", key, "error", err)
		e.metrics.RecordGet(e.timeProvider.Now()-start, false)
		return nil, false
	}
	if entry.compression == CompressionZlib {
		e.stats.decompressions++
	}
	e.stats.hits++
	e.mu.Unlock()

	e.metrics.RecordGet(e.timeProvider.Now()-start, true)
	return value, true
}

// GetWithDefault is Get returning def instead of (nil, false) on a miss.
func (e *Engine) GetWithDefault(key string, def interface{}) interface{} {
	if value, found := e.Get(key); found {
		return value
	}
	return def
}

// Has checks if a key exists and is not expired, without touching access
// bookkeeping or hit/miss accounting.
func (e *Engine) Has(key string) bool {
	now := e.timeProvider.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.entries[key]
	return ok && !entry.expired(now)
}

// Set stores a value with engine-resolved TTL, normal priority and no tags.
// Returns false when the value cannot be admitted under the memory budget.
func (e *Engine) Set(key string, value interface{}) bool {
	return e.SetWithOptions(key, value, SetOptions{})
}

// SetWithTTL stores a value with an explicit TTL.
func (e *Engine) SetWithTTL(key string, value interface{}, ttl time.Duration) bool {
	return e.SetWithOptions(key, value, SetOptions{TTL: ttl})
}

// SetWithOptions stores a value. TTL resolution order: explicit option,
// adaptive (for Adaptive/Hybrid strategies), engine default. The value is
// compressed outside the lock when it qualifies. When admission would
// exceed the memory budget, expired entries are purged and eviction runs
// under 80%-of-budget pressure; if the value still does not fit the engine
// refuses it and returns false.
func (e *Engine) SetWithOptions(key string, value interface{}, opts SetOptions) bool {
	if key == "" {
		e.logger.Warn("refusing empty cache key")
		return false
	}

	start := e.timeProvider.Now()
	enc := e.codec.compress(value)
	if enc.degraded {
		e.logger.Warn("compression degraded to raw storage", "key", key, "error", enc.cause)
	}

	priority := opts.Priority
	if priority == 0 {
		priority = PriorityNormal
	}

	var pending []removal
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return false
	}
	now := e.timeProvider.Now()

	ttl := int64(opts.TTL)
	if ttl <= 0 {
		ttl = e.resolveTTLLocked(key)
	}

	if e.stats.compressedSizeBytes+enc.storedSize > e.maxMemory {
		pending = append(pending, e.memoryCleanupLocked(now)...)
		if e.stats.compressedSizeBytes+enc.storedSize > e.maxMemory {
			e.mu.Unlock()
			e.dispatch(pending)
			e.logger.Warn("memory budget exhausted, value not stored",
				"key", key, "stored_size", enc.storedSize)
			return false
		}
	}

	// Replacing an existing key fully retires its old accounting first.
	if old, ok := e.entries[key]; ok {
		e.removeEntryLocked(key, old)
	}

	if len(e.entries) >= e.maxSize {
		pending = append(pending, e.evictLocked(1, now)...)
	}

	entry := &cacheEntry{
		value:          enc.stored,
		createdAt:      now,
		lastAccessed:   now,
		ttl:            ttl,
		priority:       priority,
		sizeBytes:      enc.originalSize,
		compressedSize: enc.storedSize,
		compression:    enc.compression,
	}
	if len(opts.Tags) > 0 {
		entry.tags = make(map[string]struct{}, len(opts.Tags))
		for _, tag := range opts.Tags {
			entry.tags[tag] = struct{}{}
			keys, ok := e.tagIndex[tag]
			if !ok {
				keys = make(map[string]struct{})
				e.tagIndex[tag] = keys
			}
			keys[key] = struct{}{}
		}
	}

	e.entries[key] = entry
	e.accessOrder[key] = now
	e.frequency[key] = 1
	e.heatIndex[key] = 0

	e.stats.totalSizeBytes += enc.originalSize
	e.stats.compressedSizeBytes += enc.storedSize
	if e.stats.totalSizeBytes > e.stats.peakSizeBytes {
		e.stats.peakSizeBytes = e.stats.totalSizeBytes
	}
	if enc.compression == CompressionZlib {
		e.stats.compressions++
	}
	e.mu.Unlock()

	e.dispatch(pending)
	e.metrics.RecordSet(e.timeProvider.Now() - start)
	return true
}

// Delete removes an entry and all its index references.
// Returns true if the entry was present.
func (e *Engine) Delete(key string) bool {
	start := e.timeProvider.Now()
	e.mu.Lock()
	entry, ok := e.entries[key]
	if ok {
		e.removeEntryLocked(key, entry)
	}
	e.mu.Unlock()
	if ok {
		e.metrics.RecordDelete(e.timeProvider.Now() - start)
	}
	return ok
}

// Clear drops every entry and resets size accounting. Cumulative event
// counters (hits, misses, evictions, ...) are preserved.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.clearLocked()
	e.mu.Unlock()
}

// ClearTags drops only the entries whose tag set intersects the given tags.
func (e *Engine) ClearTags(tags ...string) {
	e.mu.Lock()
	victims := make(map[string]struct{})
	for _, tag := range tags {
		for key := range e.tagIndex[tag] {
			victims[key] = struct{}{}
		}
	}
	for key := range victims {
		if entry, ok := e.entries[key]; ok {
			e.removeEntryLocked(key, entry)
		}
	}
	e.mu.Unlock()
}

// Stats returns a point-in-time snapshot of counters and derived metrics.
func (e *Engine) Stats() Stats {
	now := e.timeProvider.Now()
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.stats.snapshot(now)
	s.Entries = len(e.entries)
	s.MaxSize = e.maxSize
	s.Strategy = e.strategy
	s.MemoryLimitBytes = e.maxMemory
	if len(e.heatIndex) > 0 {
		var sum float64
		for _, heat := range e.heatIndex {
			sum += heat
		}
		s.AvgHeatScore = sum / float64(len(e.heatIndex))
	}
	return s
}

// TopEntries returns up to limit entries ranked (descending) by the given
// criterion. Read-only introspection; access bookkeeping is not touched.
func (e *Engine) TopEntries(limit int, sortBy SortBy) []EntryInfo {
	now := e.timeProvider.Now()
	e.mu.Lock()
	infos := make([]EntryInfo, 0, len(e.entries))
	for key, entry := range e.entries {
		infos = append(infos, e.entryInfoLocked(key, entry, now))
	}
	e.mu.Unlock()

	sort.Slice(infos, func(i, j int) bool {
		switch sortBy {
		case SortByAccessCount:
			return infos[i].AccessCount > infos[j].AccessCount
		case SortBySize:
			return infos[i].SizeBytes > infos[j].SizeBytes
		default:
			return infos[i].HeatScore > infos[j].HeatScore
		}
	})

	if limit > 0 && limit < len(infos) {
		infos = infos[:limit]
	}
	return infos
}

// EntryInfo returns a metadata snapshot for one key.
func (e *Engine) EntryInfo(key string) (EntryInfo, bool) {
	now := e.timeProvider.Now()
	e.mu.Lock()
	defer e.mu.Unlock()
	entry, ok := e.entries[key]
	if !ok {
		return EntryInfo{}, false
	}
	return e.entryInfoLocked(key, entry, now), true
}

// Len returns the current number of entries.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// Capacity returns the maximum number of entries the engine can hold.
func (e *Engine) Capacity() int {
	return e.maxSize
}

// Reconfigure applies the runtime-safe subset of a configuration to the
// live engine: DefaultTTL and CompressionThreshold when > 0, and
// EnableCompression as given. MaxSize, MaxMemory, Strategy and loop
// intervals require a new engine and are ignored here.
func (e *Engine) Reconfigure(cfg Config) {
	if cfg.DefaultTTL > 0 {
		e.mu.Lock()
		e.defaultTTL = int64(cfg.DefaultTTL)
		e.mu.Unlock()
	}
	if cfg.CompressionThreshold > 0 {
		e.codec.threshold.Store(int64(cfg.CompressionThreshold))
	}
	e.codec.enabled.Store(cfg.EnableCompression)
	e.logger.Info("engine reconfigured",
		"default_ttl", cfg.DefaultTTL,
		"compression", cfg.EnableCompression,
		"compression_threshold", cfg.CompressionThreshold)
}

// Close cancels both maintenance loops, waits for them to finish and tears
// down the map. The engine must not be used afterwards.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()

	e.cancel()
	e.wg.Wait()

	e.mu.Lock()
	e.clearLocked()
	e.mu.Unlock()

	e.logger.Info("engine closed")
	return nil
}

// resolveTTLLocked picks the TTL for a key the caller did not set one for.
func (e *Engine) resolveTTLLocked(key string) int64 {
	if e.strategy == StrategyAdaptive || e.strategy == StrategyHybrid {
		return e.adaptiveTTLLocked(key)
	}
	return e.defaultTTL
}

// adaptiveTTLLocked derives a TTL from observed access intervals:
// 1.5x the mean of the key's last 5 intervals, clamped to
// [5 minutes, 3x default], boosted 20% when predictions have been accurate.
// A key without enough history falls back to the cache-wide pattern with a
// 2.0 multiplier and a [10 minutes, 2x default] clamp, and finally to the
// flat default TTL.
func (e *Engine) adaptiveTTLLocked(key string) int64 {
	defaultSeconds := float64(e.defaultTTL) / 1e9

	if entry, ok := e.entries[key]; ok && len(entry.pattern.intervals) >= 3 {
		mean, _ := entry.pattern.meanRecentIntervals(5)
		ttlSeconds := clamp(mean*1.5, 300, defaultSeconds*3)
		if entry.pattern.predictionAccuracy > 0.7 {
			ttlSeconds *= 1.2
		}
		return int64(ttlSeconds * 1e9)
	}

	if len(e.globalPattern.intervals) >= 3 {
		mean, _ := e.globalPattern.meanRecentIntervals(10)
		return int64(clamp(mean*2, 600, defaultSeconds*2) * 1e9)
	}

	return e.defaultTTL
}

// removeEntryLocked retires an entry's accounting and index references.
func (e *Engine) removeEntryLocked(key string, entry *cacheEntry) {
	e.stats.totalSizeBytes -= entry.sizeBytes
	e.stats.compressedSizeBytes -= entry.compressedSize

	delete(e.entries, key)
	delete(e.accessOrder, key)
	delete(e.frequency, key)
	delete(e.heatIndex, key)

	for tag := range entry.tags {
		if keys, ok := e.tagIndex[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(e.tagIndex, tag)
			}
		}
	}
}

func (e *Engine) clearLocked() {
	e.entries = make(map[string]*cacheEntry)
	e.accessOrder = make(map[string]int64)
	e.frequency = make(map[string]int64)
	e.tagIndex = make(map[string]map[string]struct{})
	e.heatIndex = make(map[string]float64)
	e.stats.totalSizeBytes = 0
	e.stats.compressedSizeBytes = 0
}

func (e *Engine) entryInfoLocked(key string, entry *cacheEntry, now int64) EntryInfo {
	info := EntryInfo{
		Key:              key,
		CreatedAt:        time.Unix(0, entry.createdAt),
		LastAccessed:     time.Unix(0, entry.lastAccessed),
		AccessCount:      entry.accessCount,
		TTL:              time.Duration(entry.ttl),
		Age:              time.Duration(now - entry.createdAt),
		Expired:          entry.expired(now),
		Priority:         entry.priority,
		SizeBytes:        entry.sizeBytes,
		CompressedSize:   entry.compressedSize,
		CompressionRatio: entry.compressionRatio(),
		HeatScore:        entry.heatScore,
	}
	if len(entry.tags) > 0 {
		info.Tags = make([]string, 0, len(entry.tags))
		for tag := range entry.tags {
			info.Tags = append(info.Tags, tag)
		}
		sort.Strings(info.Tags)
	}
	if entry.predictedNextAccess > 0 {
		info.PredictedNextAccess = time.Unix(0, entry.predictedNextAccess)
	}
	return info
}

// dispatch fires eviction/expiry callbacks and metrics for entries removed
// inside a locked section. Always called after the lock is released.
func (e *Engine) dispatch(removals []removal) {
	for _, r := range removals {
		if r.expired {
			e.metrics.RecordExpiration()
			if e.onExpire != nil {
				e.onExpire(r.key, r.value)
			}
			continue
		}
		e.metrics.RecordEviction()
		if e.onEvict != nil {
			e.onEvict(r.key, r.value)
		}
	}
}

// clamp bounds v to [lo, hi]. The ceiling is applied last so it wins when
// lo exceeds hi, which happens for short default TTLs where the adaptive
// floor is larger than the per-key ceiling.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}
