// loading.go: GetOrLoad implementation with singleflight pattern
//
// This file implements the GetOrLoad and GetOrLoadWithContext methods,
// providing cache-aside pattern with automatic deduplication of concurrent
// loads using a singleflight mechanism. Loaded values go through the
// normal Set path, so adaptive TTL and compression apply to them too.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package xanthos

import (
	"context"
	"sync"
	"sync/atomic"
)

// inflightCall represents an in-flight loader call with its waitgroup and result.
// Uses atomic.Value for race-free access to val and err fields.
// Note: atomic.Value cannot store nil, so we use wrapper types.
//
// done channel is closed when the loader completes, allowing efficient
// broadcast to multiple waiters without spawning goroutines per waiter.
type inflightCall struct {
	wg   sync.WaitGroup
	val  atomic.Value  // stores *resultWrapper
	err  atomic.Value  // stores *errorWrapper
	done chan struct{} // closed when loader completes (broadcast to all waiters)
}

// resultWrapper wraps a value to allow storing nil in atomic.Value
type resultWrapper struct {
	value interface{}
}

// errorWrapper wraps an error to allow storing nil in atomic.Value
type errorWrapper struct {
	err error
}

// negativeEntry caches a loader error until expireAt.
type negativeEntry struct {
	err      error
	expireAt int64
}

// GetOrLoad returns the value from cache, or loads it using the provided
// loader function. If multiple goroutines call GetOrLoad for the same
// missing key concurrently, only one loader executes (singleflight).
//
// The loaded value is stored through SetWithOptions with the given
// options, so TTL resolution, priority and tags behave exactly as with a
// direct Set. If the loader returns an error, the error is not cached
// unless NegativeCacheTTL is configured.
func (e *Engine) GetOrLoad(key string, loader func() (interface{}, error), opts SetOptions) (interface{}, error) {
	if key == "" {
		return nil, NewErrEmptyKey("GetOrLoad")
	}

	// Fast path: check cache first.
	if value, found := e.Get(key); found {
		return value, nil
	}

	if err, found := e.cachedLoaderError(key); found {
		return nil, err
	}

	if loader == nil {
		return nil, NewErrInvalidLoader(key)
	}

	callKey := "load:" + key

	newFlight := &inflightCall{
		done: make(chan struct{}),
	}
	newFlight.wg.Add(1)

	actual, loaded := e.inflight.LoadOrStore(callKey, newFlight)
	flight := actual.(*inflightCall)

	if loaded {
		// Another goroutine is loading, wait for its result.
		flight.wg.Wait()
		valWrapper, _ := flight.val.Load().(*resultWrapper)
		errWrapper, _ := flight.err.Load().(*errorWrapper)
		if valWrapper != nil && errWrapper != nil {
			return valWrapper.value, errWrapper.err
		}
		return nil, nil // Should never happen
	}

	// We are the first, execute the loader.
	defer func() {
		close(flight.done)
		flight.wg.Done()
		e.inflight.Delete(callKey)
	}()

	loaderVal, loaderErr := e.runLoader(key, loader)

	flight.val.Store(&resultWrapper{value: loaderVal})
	flight.err.Store(&errorWrapper{err: loaderErr})

	e.settleLoad(key, loaderVal, loaderErr, opts)
	return loaderVal, loaderErr
}

// GetOrLoadWithContext is like GetOrLoad but respects context cancellation
// while waiting for an in-flight load, and passes the context to the
// loader for cancellation control.
func (e *Engine) GetOrLoadWithContext(ctx context.Context, key string, loader func(context.Context) (interface{}, error), opts SetOptions) (interface{}, error) {
	if key == "" {
		return nil, NewErrEmptyKey("GetOrLoadWithContext")
	}

	if value, found := e.Get(key); found {
		return value, nil
	}

	if err, found := e.cachedLoaderError(key); found {
		return nil, err
	}

	if loader == nil {
		return nil, NewErrInvalidLoader(key)
	}

	if err := ctx.Err(); err != nil {
		return nil, NewErrLoaderCancelled(key, err)
	}

	callKey := "load:" + key

	newFlight := &inflightCall{
		done: make(chan struct{}),
	}
	newFlight.wg.Add(1)

	actual, loaded := e.inflight.LoadOrStore(callKey, newFlight)
	flight := actual.(*inflightCall)

	if loaded {
		// Wait on the done channel rather than the WaitGroup so the
		// select can also observe context cancellation without
		// spawning a goroutine per waiter.
		select {
		case <-flight.done:
			valWrapper, _ := flight.val.Load().(*resultWrapper)
			errWrapper, _ := flight.err.Load().(*errorWrapper)
			if valWrapper != nil && errWrapper != nil {
				return valWrapper.value, errWrapper.err
			}
			return nil, nil // Should never happen
		case <-ctx.Done():
			// The loader still completes; we just stop waiting for it.
			return nil, NewErrLoaderCancelled(key, ctx.Err())
		}
	}

	defer func() {
		close(flight.done)
		flight.wg.Done()
		e.inflight.Delete(callKey)
	}()

	var loaderVal interface{}
	var loaderErr error
	func() {
		defer func() {
			if r := recover(); r != nil {
				loaderErr = NewErrPanicRecovered("GetOrLoadWithContext:"+key, r)
			}
		}()
		loaderVal, loaderErr = loader(ctx)
	}()

	flight.val.Store(&resultWrapper{value: loaderVal})
	flight.err.Store(&errorWrapper{err: loaderErr})

	e.settleLoad(key, loaderVal, loaderErr, opts)
	return loaderVal, loaderErr
}

// runLoader executes a loader with panic recovery.
func (e *Engine) runLoader(key string, loader func() (interface{}, error)) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewErrPanicRecovered("GetOrLoad:"+key, r)
		}
	}()
	return loader()
}

// settleLoad stores a successful load, or negatively caches the error when
// NegativeCacheTTL is configured.
func (e *Engine) settleLoad(key string, value interface{}, err error, opts SetOptions) {
	if err == nil && value != nil {
		e.SetWithOptions(key, value, opts)
		return
	}
	if err != nil && e.negativeTTL > 0 {
		e.negativeCache.Store("neg:"+key, negativeEntry{
			err:      err,
			expireAt: e.timeProvider.Now() + e.negativeTTL,
		})
	}
}

// cachedLoaderError reports a still-valid negatively cached loader error.
func (e *Engine) cachedLoaderError(key string) (error, bool) {
	if e.negativeTTL <= 0 {
		return nil, false
	}
	negKey := "neg:" + key
	stored, found := e.negativeCache.Load(negKey)
	if !found {
		return nil, false
	}
	neg := stored.(negativeEntry)
	if e.timeProvider.Now() <= neg.expireAt {
		return neg.err, true
	}
	e.negativeCache.Delete(negKey)
	return nil, false
}
