// pattern.go: per-key access pattern tracking and next-access prediction
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import "math"

// accessPattern keeps a bounded history of access timestamps and the
// intervals between them, and derives next-access predictions from it.
// Timestamps are capped at maxTimestampSamples and intervals at
// maxIntervalSamples, oldest samples dropped first.
//
// Not safe for concurrent use; the engine mutates patterns under its lock.
type accessPattern struct {
	timestamps []int64   // nanoseconds, oldest first
	intervals  []float64 // seconds between consecutive accesses, oldest first

	accessCount int64

	// lastPrediction is the most recent predicted next-access time in
	// nanoseconds, 0 when no prediction has been made yet.
	lastPrediction int64

	// predictionAccuracy is an EMA in [0,1] of how close predictions
	// landed to actual accesses.
	predictionAccuracy float64
}

// recordAccess pushes an access timestamp and, when a previous timestamp
// exists, the interval since it.
func (p *accessPattern) recordAccess(now int64) {
	if n := len(p.timestamps); n > 0 {
		interval := float64(now-p.timestamps[n-1]) / 1e9
		if len(p.intervals) >= maxIntervalSamples {
			copy(p.intervals, p.intervals[1:])
			p.intervals = p.intervals[:maxIntervalSamples-1]
		}
		p.intervals = append(p.intervals, interval)
	}

	if len(p.timestamps) >= maxTimestampSamples {
		copy(p.timestamps, p.timestamps[1:])
		p.timestamps = p.timestamps[:maxTimestampSamples-1]
	}
	p.timestamps = append(p.timestamps, now)
	p.accessCount++
}

// predictNextAccess estimates when the next access will happen. It needs at
// least 3 recorded intervals; with fewer it reports no prediction.
//
// The estimate is a weighted average of the last 10 intervals (newer samples
// weigh more), padded with a tenth of their standard deviation as a
// volatility buffer.
func (p *accessPattern) predictNextAccess(now int64) (int64, bool) {
	if len(p.intervals) < 3 {
		return 0, false
	}

	recent := p.intervals
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	var weightedSum, weightTotal float64
	for i, interval := range recent {
		w := float64(i + 1)
		weightedSum += interval * w
		weightTotal += w
	}
	avg := weightedSum / weightTotal

	if len(recent) > 1 {
		avg += stdev(recent) * 0.1
	}

	p.lastPrediction = now + int64(avg*1e9)
	return p.lastPrediction, true
}

// updateAccuracy folds the observed access time into the prediction
// accuracy EMA. An error of one hour or more counts as zero accuracy.
// Returns the per-access accuracy and whether a prediction existed.
func (p *accessPattern) updateAccuracy(actual int64) (float64, bool) {
	if p.lastPrediction == 0 {
		return 0, false
	}

	errSeconds := math.Abs(float64(actual-p.lastPrediction) / 1e9)
	accuracy := 1 - errSeconds/3600
	if accuracy < 0 {
		accuracy = 0
	}

	p.predictionAccuracy = p.predictionAccuracy*0.8 + accuracy*0.2
	return accuracy, true
}

// meanRecentIntervals averages the last n intervals. Returns false when no
// interval has been recorded.
func (p *accessPattern) meanRecentIntervals(n int) (float64, bool) {
	if len(p.intervals) == 0 {
		return 0, false
	}
	recent := p.intervals
	if len(recent) > n {
		recent = recent[len(recent)-n:]
	}
	var sum float64
	for _, interval := range recent {
		sum += interval
	}
	return sum / float64(len(recent)), true
}

// stdev computes the sample standard deviation.
func stdev(samples []float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(len(samples))

	var variance float64
	for _, s := range samples {
		d := s - mean
		variance += d * d
	}
	return math.Sqrt(variance / float64(len(samples)-1))
}
