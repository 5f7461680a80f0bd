// engine_generic.go: type-safe generic wrapper over the engine
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// GenericEngine provides a type-safe view of an Engine using Go generics.
// K must be comparable (usable as a map key), V can be any type. Values
// always round-trip unchanged: the engine only compresses strings and byte
// slices, everything else is stored as-is.
//
// Example:
//
//	cache := xanthos.NewGenericEngine[string, User](xanthos.Config{
//		MaxSize:    10_000,
//		DefaultTTL: time.Hour,
//	})
//	cache.Set("user:123", user)
//	if user, found := cache.Get("user:123"); found {
//		fmt.Printf("User: %+v\n", user)
//	}
type GenericEngine[K comparable, V any] struct {
	inner *Engine
}

// NewGenericEngine creates a new type-safe engine wrapper.
func NewGenericEngine[K comparable, V any](cfg Config) *GenericEngine[K, V] {
	return &GenericEngine[K, V]{inner: New(cfg)}
}

// Set stores a key-value pair with engine-resolved TTL.
func (c *GenericEngine[K, V]) Set(key K, value V) bool {
	return c.inner.Set(keyToString(key), value)
}

// SetWithTTL stores a key-value pair with an explicit TTL.
func (c *GenericEngine[K, V]) SetWithTTL(key K, value V, ttl time.Duration) bool {
	return c.inner.SetWithTTL(keyToString(key), value, ttl)
}

// Get retrieves a value. Returns the zero value and false when the key is
// missing, expired, or holds a value of a different type.
func (c *GenericEngine[K, V]) Get(key K) (value V, found bool) {
	val, found := c.inner.Get(keyToString(key))
	if !found {
		var zero V
		return zero, false
	}

	typed, ok := val.(V)
	if !ok {
		var zero V
		return zero, false
	}
	return typed, true
}

// GetOrLoad retrieves a value or loads it with singleflight semantics.
// Concurrent calls for the same key share one loader execution.
func (c *GenericEngine[K, V]) GetOrLoad(key K, loader func() (V, error)) (V, error) {
	var zero V
	if loader == nil {
		_, err := c.inner.GetOrLoad(keyToString(key), nil, SetOptions{})
		return zero, err
	}

	val, err := c.inner.GetOrLoad(keyToString(key), func() (interface{}, error) {
		return loader()
	}, SetOptions{})
	if err != nil {
		return zero, err
	}

	typed, ok := val.(V)
	if !ok {
		return zero, NewErrCorruptedValue(keyToString(key),
			fmt.Errorf("loaded value has unexpected type %T", val))
	}
	return typed, nil
}

// GetOrLoadWithContext is GetOrLoad with context cancellation support.
// The context bounds the caller's wait; an in-flight loader keeps running
// so other waiters can still use its result.
func (c *GenericEngine[K, V]) GetOrLoadWithContext(ctx context.Context, key K, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		_, err := c.inner.GetOrLoadWithContext(ctx, keyToString(key), nil, SetOptions{})
		return zero, err
	}

	val, err := c.inner.GetOrLoadWithContext(ctx, keyToString(key), func(ctx context.Context) (interface{}, error) {
		return loader(ctx)
	}, SetOptions{})
	if err != nil {
		return zero, err
	}

	typed, ok := val.(V)
	if !ok {
		return zero, NewErrCorruptedValue(keyToString(key),
			fmt.Errorf("loaded value has unexpected type %T", val))
	}
	return typed, nil
}

// Delete removes a key from the cache.
func (c *GenericEngine[K, V]) Delete(key K) bool {
	return c.inner.Delete(keyToString(key))
}

// Has checks existence without touching access bookkeeping.
func (c *GenericEngine[K, V]) Has(key K) bool {
	return c.inner.Has(keyToString(key))
}

// Clear removes all entries.
func (c *GenericEngine[K, V]) Clear() {
	c.inner.Clear()
}

// Stats returns current engine statistics.
func (c *GenericEngine[K, V]) Stats() Stats {
	return c.inner.Stats()
}

// Engine exposes the underlying engine for operations without a typed
// equivalent (tags, TopEntries, Reconfigure).
func (c *GenericEngine[K, V]) Engine() *Engine {
	return c.inner
}

// Close shuts down the underlying engine.
func (c *GenericEngine[K, V]) Close() error {
	return c.inner.Close()
}

// keyToString converts a key of any comparable type to string efficiently.
// Uses type switch to avoid allocations for common types (string, int, uint).
// Falls back to fmt.Sprintf for other types.
func keyToString[K comparable](key K) string {
	switch v := any(key).(type) {
	case string:
		// Zero allocation for string keys
		return v
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	default:
		// Fallback for uncommon key types (structs, arrays, etc.)
		return fmt.Sprintf("%v", key)
	}
}
