// example_test.go: godoc examples for the Xanthos engine
//
// These examples appear in the generated documentation on pkg.go.dev
// and are executed as part of the test suite to ensure they remain valid.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos_test

import (
	"context"
	"fmt"
	"time"

	"github.com/agilira/xanthos"
)

// ExampleNew demonstrates basic engine creation and usage.
func ExampleNew() {
	// Create an engine with default configuration
	engine := xanthos.New(xanthos.Config{
		MaxSize:    1000,
		DefaultTTL: time.Hour,
	})
	defer engine.Close()

	// Store a value
	engine.Set("user:123", map[string]string{
		"name":  "John Doe",
		"email": "john@example.com",
	})

	// Retrieve the value
	if _, found := engine.Get("user:123"); found {
		fmt.Println("Found user in cache")
	}

	// Output: Found user in cache
}

// ExampleNewGenericEngine demonstrates type-safe generic usage.
func ExampleNewGenericEngine() {
	// Create a type-safe engine for User structs
	type User struct {
		ID    int
		Name  string
		Email string
	}

	cache := xanthos.NewGenericEngine[string, User](xanthos.Config{
		MaxSize:    1000,
		DefaultTTL: time.Hour,
	})
	defer cache.Close()

	// Store a user (type-safe!)
	cache.Set("user:123", User{
		ID:    123,
		Name:  "John Doe",
		Email: "john@example.com",
	})

	// Retrieve the user (returns User, not interface{})
	if user, found := cache.Get("user:123"); found {
		fmt.Printf("User: %s (%s)\n", user.Name, user.Email)
	}

	// Output: User: John Doe (john@example.com)
}

// ExampleGenericEngine_Set demonstrates storing values in a generic engine.
func ExampleGenericEngine_Set() {
	cache := xanthos.NewGenericEngine[string, int](xanthos.Config{
		MaxSize: 100,
	})
	defer cache.Close()

	// Store multiple values
	cache.Set("answer", 42)
	cache.Set("count", 1337)
	cache.Set("total", 9001)

	// Check if values exist
	if cache.Has("answer") {
		fmt.Println("Answer exists in cache")
	}

	// Output: Answer exists in cache
}

// ExampleGenericEngine_Get demonstrates retrieving values from a generic engine.
func ExampleGenericEngine_Get() {
	cache := xanthos.NewGenericEngine[int, string](xanthos.Config{
		MaxSize: 100,
	})
	defer cache.Close()

	// Store a value with integer key
	cache.Set(404, "Not Found")
	cache.Set(200, "OK")

	// Retrieve values (type-safe)
	if message, found := cache.Get(404); found {
		fmt.Printf("Status 404: %s\n", message)
	}

	// Output: Status 404: Not Found
}

// ExampleEngine_GetOrLoad demonstrates lazy loading with singleflight pattern.
func ExampleEngine_GetOrLoad() {
	engine := xanthos.New(xanthos.Config{
		MaxSize:    100,
		DefaultTTL: time.Minute,
	})
	defer engine.Close()

	// Define an expensive loader function
	expensiveLoader := func() (interface{}, error) {
		// Simulate expensive database query or API call
		time.Sleep(10 * time.Millisecond)
		return "expensive result", nil
	}

	// First call: executes loader and caches result
	value, err := engine.GetOrLoad("expensive:key", expensiveLoader, xanthos.SetOptions{})
	if err == nil {
		fmt.Printf("Loaded: %s\n", value)
	}

	// Second call: returns cached value instantly (no loader execution)
	value, err = engine.GetOrLoad("expensive:key", expensiveLoader, xanthos.SetOptions{})
	if err == nil {
		fmt.Printf("Cached: %s\n", value)
	}

	// Output: Loaded: expensive result
	// Cached: expensive result
}

// ExampleEngine_GetOrLoadWithContext demonstrates context-aware loading.
func ExampleEngine_GetOrLoadWithContext() {
	engine := xanthos.New(xanthos.Config{
		MaxSize:    100,
		DefaultTTL: time.Minute,
	})
	defer engine.Close()

	// Define a loader that respects context cancellation
	loaderWithContext := func(ctx context.Context) (interface{}, error) {
		// Simulate work that can be cancelled
		select {
		case <-time.After(100 * time.Millisecond):
			return "result", nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	// Load with context (completes before timeout)
	value, err := engine.GetOrLoadWithContext(ctx, "key", loaderWithContext, xanthos.SetOptions{})
	if err == nil {
		fmt.Printf("Loaded: %s\n", value)
	}

	// Output: Loaded: result
}

// ExampleEngine_Stats demonstrates monitoring engine performance.
func ExampleEngine_Stats() {
	engine := xanthos.New(xanthos.Config{
		MaxSize: 100,
	})
	defer engine.Close()

	// Perform some operations
	engine.Set("key1", "value1")
	engine.Set("key2", "value2")
	engine.Get("key1") // Hit
	engine.Get("key3") // Miss

	// Get statistics
	stats := engine.Stats()
	fmt.Printf("Entries: %d/%d\n", stats.Entries, stats.MaxSize)
	fmt.Printf("Hits: %d, Misses: %d\n", stats.Hits, stats.Misses)
	fmt.Printf("Hit Rate: %.1f%%\n", stats.HitRate*100)

	// Output: Entries: 2/100
	// Hits: 1, Misses: 1
	// Hit Rate: 50.0%
}

// ExampleEngine_SetWithOptions demonstrates priorities and tags.
func ExampleEngine_SetWithOptions() {
	engine := xanthos.New(xanthos.Config{
		MaxSize: 100,
	})
	defer engine.Close()

	// Session data that must never be evicted
	engine.SetWithOptions("session:abc", "session-data", xanthos.SetOptions{
		Priority: xanthos.PriorityPersistent,
		Tags:     []string{"session", "user:42"},
	})

	// Drop everything tagged with the user later
	engine.ClearTags("user:42")
	fmt.Printf("Entries left: %d\n", engine.Len())

	// Output: Entries left: 0
}

// ExampleConfig demonstrates advanced engine configuration.
func ExampleConfig() {
	engine := xanthos.New(xanthos.Config{
		MaxSize:              10_000,           // Maximum 10k entries
		DefaultTTL:           30 * time.Minute, // Entries expire after 30 minutes
		Strategy:             xanthos.StrategyHybrid,
		EnableCompression:    true,            // Compress large values transparently
		CompressionThreshold: 1024,            // Only values of 1 KiB and above
		EnablePrediction:     true,            // Keep next-access estimates fresh
		NegativeCacheTTL:     5 * time.Second, // Cache loader errors for 5 seconds
		OnEvict: func(key string, value interface{}) {
			// Called when an entry is evicted
			fmt.Printf("Evicted: %s\n", key)
		},
		OnExpire: func(key string, value interface{}) {
			// Called when an entry expires
			fmt.Printf("Expired: %s\n", key)
		},
	})
	defer engine.Close()

	engine.Set("key", "value")
	// Engine is now configured and ready to use
}

// ExampleEngine_ExpireNow demonstrates manual expiration of TTL entries.
func ExampleEngine_ExpireNow() {
	engine := xanthos.New(xanthos.Config{
		MaxSize:    100,
		DefaultTTL: 100 * time.Millisecond, // Short TTL for demonstration
	})
	defer engine.Close()

	// Add some entries
	engine.Set("key1", "value1")
	engine.Set("key2", "value2")
	engine.Set("key3", "value3")

	fmt.Printf("Initial size: %d\n", engine.Len())

	// Wait for entries to expire
	time.Sleep(150 * time.Millisecond)

	// Manually expire all TTL entries
	expired := engine.ExpireNow()
	fmt.Printf("Expired entries: %d\n", expired)
	fmt.Printf("Final size: %d\n", engine.Len())

	// Output: Initial size: 3
	// Expired entries: 3
	// Final size: 0
}

// ExampleEngine_negativeCaching demonstrates error caching.
func ExampleEngine_negativeCaching() {
	engine := xanthos.New(xanthos.Config{
		MaxSize:          100,
		DefaultTTL:       time.Hour,
		NegativeCacheTTL: 5 * time.Second, // Cache errors for 5 seconds
	})
	defer engine.Close()

	callCount := 0
	failingLoader := func() (interface{}, error) {
		callCount++
		return nil, fmt.Errorf("database unavailable")
	}

	// First call: loader fails, error is cached
	_, err := engine.GetOrLoad("key", failingLoader, xanthos.SetOptions{})
	fmt.Printf("First call - Count: %d, Error: %v\n", callCount, err != nil)

	// Second call within 5 seconds: returns cached error without calling loader
	_, err = engine.GetOrLoad("key", failingLoader, xanthos.SetOptions{})
	fmt.Printf("Second call - Count: %d, Error: %v\n", callCount, err != nil)

	// Output: First call - Count: 1, Error: true
	// Second call - Count: 1, Error: true
}
