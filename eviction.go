// eviction.go: hybrid multi-signal eviction with LRU/LFU/TTL fallbacks
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "sort"

// evictLocked removes up to count entries chosen by the configured
// strategy. Persistent entries are never candidates, regardless of
// strategy. Returns the removals for post-unlock callback dispatch.
//
// Candidate ranking (higher rank is evicted first):
//   - Hybrid, Adaptive, Predictive: the hybrid eviction score
//   - LRU: oldest last access
//   - LFU: lowest access count
//   - TTL: oldest creation time
func (e *Engine) evictLocked(count int, now int64) []removal {
	if count <= 0 || len(e.entries) == 0 {
		return nil
	}

	type candidate struct {
		key  string
		rank float64
	}

	candidates := make([]candidate, 0, len(e.entries))
	for key, entry := range e.entries {
		if entry.priority == PriorityPersistent {
			continue
		}

		var rank float64
		switch e.strategy {
		case StrategyLRU:
			rank = -float64(e.accessOrder[key])
		case StrategyLFU:
			rank = -float64(e.frequency[key])
		case StrategyTTL:
			rank = -float64(entry.createdAt)
		default:
			rank = entry.evictionScore(now)
		}
		candidates = append(candidates, candidate{key: key, rank: rank})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].rank > candidates[j].rank
	})

	if count > len(candidates) {
		count = len(candidates)
	}

	removals := make([]removal, 0, count)
	for _, c := range candidates[:count] {
		entry := e.entries[c.key]
		e.removeEntryLocked(c.key, entry)
		e.stats.evictions++
		removals = append(removals, removal{key: c.key, value: entry.value})
	}
	return removals
}

// purgeExpiredLocked removes every expired entry.
func (e *Engine) purgeExpiredLocked(now int64) []removal {
	var removals []removal
	for key, entry := range e.entries {
		if entry.expired(now) {
			e.removeEntryLocked(key, entry)
			e.stats.expiredRemovals++
			removals = append(removals, removal{key: key, value: entry.value, expired: true})
		}
	}
	return removals
}

// memoryCleanupLocked frees memory under budget pressure: expired entries
// go first; if stored bytes still exceed 80% of the budget, a tenth of the
// entries (at least one) are evicted by strategy.
func (e *Engine) memoryCleanupLocked(now int64) []removal {
	removals := e.purgeExpiredLocked(now)

	if float64(e.stats.compressedSizeBytes) > float64(e.maxMemory)*0.8 {
		n := len(e.entries) / 10
		if n < 1 {
			n = 1
		}
		removals = append(removals, e.evictLocked(n, now)...)
		e.stats.memoryCleanups++
	}
	return removals
}
