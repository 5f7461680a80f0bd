// engine_generic_test.go: type-safe wrapper tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"context"
	"errors"
	"testing"
	"time"
)

type testUser struct {
	Name string
	Age  int
}

func newGenericTestEngine[K comparable, V any](t *testing.T, cfg Config) *GenericEngine[K, V] {
	t.Helper()
	cfg.TimeProvider = &MockTimeProvider{currentTime: 1000000000}
	cache := NewGenericEngine[K, V](cfg)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestGenericEngine_BasicOperations(t *testing.T) {
	cache := newGenericTestEngine[string, testUser](t, Config{MaxSize: 100})

	user := testUser{Name: "alice", Age: 30}
	if !cache.Set("user:1", user) {
		t.Fatal("Set should succeed")
	}

	got, found := cache.Get("user:1")
	if !found {
		t.Fatal("expected to find user")
	}
	if got != user {
		t.Errorf("expected %+v, got %+v", user, got)
	}

	if !cache.Has("user:1") {
		t.Error("expected Has to report the key")
	}
	if !cache.Delete("user:1") {
		t.Error("expected Delete to report removal")
	}
	if _, found := cache.Get("user:1"); found {
		t.Error("expected key gone after Delete")
	}
}

func TestGenericEngine_ZeroValueOnMiss(t *testing.T) {
	cache := newGenericTestEngine[string, int](t, Config{MaxSize: 100})

	value, found := cache.Get("missing")
	if found {
		t.Error("expected a miss")
	}
	if value != 0 {
		t.Errorf("expected zero value on miss, got %d", value)
	}
}

// A type mismatch through the shared underlying engine reads as a miss,
// never as a panic.
func TestGenericEngine_TypeMismatch(t *testing.T) {
	cache := newGenericTestEngine[string, int](t, Config{MaxSize: 100})

	cache.Engine().Set("key", "not an int")

	value, found := cache.Get("key")
	if found {
		t.Error("expected a type mismatch to read as a miss")
	}
	if value != 0 {
		t.Errorf("expected zero value, got %d", value)
	}
}

func TestGenericEngine_IntKeys(t *testing.T) {
	cache := newGenericTestEngine[int, string](t, Config{MaxSize: 100})

	cache.Set(42, "answer")
	if value, found := cache.Get(42); !found || value != "answer" {
		t.Errorf("expected int key round-trip, got %q found=%v", value, found)
	}
}

func TestGenericEngine_SetWithTTL(t *testing.T) {
	mockTime := &MockTimeProvider{currentTime: 1000000000}
	cache := NewGenericEngine[string, string](Config{
		MaxSize:      100,
		TimeProvider: mockTime,
	})
	defer cache.Close()

	cache.SetWithTTL("key", "value", time.Minute)

	mockTime.Advance(2 * time.Minute)
	if _, found := cache.Get("key"); found {
		t.Error("expected typed entry to expire")
	}
}

func TestGenericEngine_Stats(t *testing.T) {
	cache := newGenericTestEngine[string, string](t, Config{MaxSize: 100})

	cache.Set("a", "1")
	cache.Get("a")
	cache.Get("missing")

	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", stats.Hits, stats.Misses)
	}
}

func TestGenericEngine_GetOrLoad(t *testing.T) {
	cache := newGenericTestEngine[int, testUser](t, Config{MaxSize: 100})

	calls := 0
	loader := func() (testUser, error) {
		calls++
		return testUser{Name: "loaded", Age: 30}, nil
	}

	user, err := cache.GetOrLoad(42, loader)
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	if user.Name != "loaded" {
		t.Errorf("expected loaded user, got %+v", user)
	}

	// Second call hits the cache, loader stays at one invocation.
	user, err = cache.GetOrLoad(42, loader)
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	if user.Age != 30 {
		t.Errorf("expected cached user, got %+v", user)
	}
	if calls != 1 {
		t.Errorf("expected 1 loader call, got %d", calls)
	}
}

func TestGenericEngine_GetOrLoad_NilLoader(t *testing.T) {
	cache := newGenericTestEngine[string, int](t, Config{MaxSize: 100})

	_, err := cache.GetOrLoad("key", nil)
	if err == nil {
		t.Fatal("expected error for nil loader")
	}
	if GetErrorCode(err) != ErrCodeInvalidLoader {
		t.Errorf("expected invalid loader code, got %s", GetErrorCode(err))
	}
}

func TestGenericEngine_GetOrLoadWithContext(t *testing.T) {
	cache := newGenericTestEngine[string, string](t, Config{MaxSize: 100})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := cache.GetOrLoadWithContext(ctx, "key", func(ctx context.Context) (string, error) {
		return "value", nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	got, err := cache.GetOrLoadWithContext(context.Background(), "key", func(ctx context.Context) (string, error) {
		return "value", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoadWithContext failed: %v", err)
	}
	if got != "value" {
		t.Errorf("expected %q, got %q", "value", got)
	}
}

func TestKeyToString(t *testing.T) {
	cases := []struct {
		got  string
		want string
	}{
		{keyToString("s"), "s"},
		{keyToString(42), "42"},
		{keyToString(int8(-3)), "-3"},
		{keyToString(int16(-3)), "-3"},
		{keyToString(int32(-3)), "-3"},
		{keyToString(int64(-3)), "-3"},
		{keyToString(uint(7)), "7"},
		{keyToString(uint8(7)), "7"},
		{keyToString(uint16(7)), "7"},
		{keyToString(uint32(7)), "7"},
		{keyToString(uint64(7)), "7"},
		{keyToString([2]int{1, 2}), "[1 2]"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("keyToString = %q, want %q", tc.got, tc.want)
		}
	}
}
