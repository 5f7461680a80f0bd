// maintenance.go: background cleanup and prediction loops
//
// Both loops are owned by the engine: they stop when the engine context is
// cancelled and Close joins them before the map is torn down. A failing
// iteration is logged and never terminates a loop.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "time"

// cleanupLoop periodically removes expired entries, relieves memory
// pressure and decays heat scores.
func (e *Engine) cleanupLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.runCleanupCycle()
		}
	}
}

func (e *Engine) runCleanupCycle() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("cleanup cycle failed", "error", NewErrPanicRecovered("cleanup", r))
		}
	}()

	if expired := e.cleanupPass(); expired > 0 {
		e.logger.Debug("cleanup removed expired entries", "count", expired)
	}
}

// cleanupPass is one cleanup iteration: purge expired entries, run a
// memory cleanup when stored bytes exceed 90% of the budget, and decay
// every heat score by 5%. Returns the number of expired entries removed.
func (e *Engine) cleanupPass() int {
	now := e.timeProvider.Now()

	e.mu.Lock()
	removals := e.purgeExpiredLocked(now)

	if float64(e.stats.compressedSizeBytes) > float64(e.maxMemory)*0.9 {
		removals = append(removals, e.memoryCleanupLocked(now)...)
	}

	for key, entry := range e.entries {
		entry.heatScore *= 0.95
		e.heatIndex[key] = entry.heatScore
	}
	e.mu.Unlock()

	e.dispatch(removals)

	expired := 0
	for _, r := range removals {
		if r.expired {
			expired++
		}
	}
	return expired
}

// predictionLoop periodically refreshes next-access predictions and
// extends the TTL of entries expected back soon.
func (e *Engine) predictionLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.predictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			e.runPredictionCycle()
		}
	}
}

func (e *Engine) runPredictionCycle() {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("prediction cycle failed", "error", NewErrPanicRecovered("prediction", r))
		}
	}()

	e.predictionPass()
}

// predictionPass recomputes every entry's predicted next access. When the
// prediction lands within 10% of the remaining TTL, the TTL is extended by
// 20%, capped at twice the default TTL. No extension happens while the
// engine is over its memory budget, so score-based eviction wins under
// sustained pressure.
func (e *Engine) predictionPass() {
	now := e.timeProvider.Now()

	e.mu.Lock()
	overBudget := e.stats.compressedSizeBytes > e.maxMemory
	maxTTL := 2 * e.defaultTTL

	for _, entry := range e.entries {
		predicted, ok := entry.pattern.predictNextAccess(now)
		if !ok {
			continue
		}
		entry.predictedNextAccess = predicted

		if overBudget || entry.ttl <= 0 {
			continue
		}
		remaining := entry.createdAt + entry.ttl - now
		if remaining <= 0 {
			continue
		}
		if predicted-now < remaining/10 {
			extended := entry.ttl + entry.ttl/5
			if extended > maxTTL {
				extended = maxTTL
			}
			if extended > entry.ttl {
				entry.ttl = extended
			}
		}
	}
	e.mu.Unlock()
}

// ExpireNow synchronously removes all expired entries and returns how many
// were removed. The cleanup loop does this on its own schedule; ExpireNow
// is for callers that want the memory back immediately.
func (e *Engine) ExpireNow() int {
	now := e.timeProvider.Now()

	e.mu.Lock()
	removals := e.purgeExpiredLocked(now)
	e.mu.Unlock()

	e.dispatch(removals)
	return len(removals)
}
