// codec_test.go: compression codec tests
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"bytes"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestCodec_BelowThresholdStaysRaw(t *testing.T) {
	c := newCodec(true, 1024)

	small := bytes.Repeat([]byte("a"), 500)
	enc := c.compress(small)

	if enc.compression != CompressionNone {
		t.Error("expected value below threshold to stay uncompressed")
	}
	if enc.storedSize != enc.originalSize {
		t.Errorf("expected stored == original size, got %d != %d",
			enc.storedSize, enc.originalSize)
	}
	if enc.degraded {
		t.Error("raw storage below threshold is not a degradation")
	}
}

func TestCodec_CompressibleValueAdopted(t *testing.T) {
	c := newCodec(true, 1024)

	repetitive := bytes.Repeat([]byte("xanthos"), 300) // 2100 bytes
	enc := c.compress(repetitive)

	if enc.compression != CompressionZlib {
		t.Fatal("expected repetitive value to be compressed")
	}
	if float64(enc.storedSize) >= float64(enc.originalSize)*compressionAdoptionRatio {
		t.Errorf("adopted compression must be at least 10%% smaller, got %d of %d",
			enc.storedSize, enc.originalSize)
	}

	value, err := c.decompress("k", enc.stored, enc.compression)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	got, ok := value.([]byte)
	if !ok {
		t.Fatalf("expected []byte, got %T", value)
	}
	if !bytes.Equal(got, repetitive) {
		t.Error("round-trip changed the value")
	}
}

// Incompressible data must not be stored compressed even above the
// threshold: the adoption ratio check keeps the raw value.
func TestCodec_IncompressibleValueKeptRaw(t *testing.T) {
	c := newCodec(true, 1024)

	random := make([]byte, 2048)
	rng := rand.New(rand.NewSource(42))
	rng.Read(random)

	enc := c.compress(random)
	if enc.compression != CompressionNone {
		t.Error("expected random data to stay uncompressed")
	}
	if enc.storedSize != enc.originalSize {
		t.Errorf("expected stored == original size, got %d != %d",
			enc.storedSize, enc.originalSize)
	}
}

func TestCodec_Disabled(t *testing.T) {
	c := newCodec(false, 1024)

	big := bytes.Repeat([]byte("a"), 4096)
	enc := c.compress(big)

	if enc.compression != CompressionNone {
		t.Error("expected no compression when disabled")
	}
	if enc.originalSize != 4096 {
		t.Errorf("expected estimated size 4096, got %d", enc.originalSize)
	}
}

func TestCodec_StringRoundTrip(t *testing.T) {
	c := newCodec(true, 64)

	text := ""
	for i := 0; i < 50; i++ {
		text += "the quick brown fox "
	}
	enc := c.compress(text)
	if enc.compression != CompressionZlib {
		t.Fatal("expected string to be compressed")
	}

	value, err := c.decompress("k", enc.stored, enc.compression)
	if err != nil {
		t.Fatalf("decompress failed: %v", err)
	}
	if value != text {
		t.Error("string round-trip changed the value")
	}
}

// Values that do not decode back to the identical Go type stay raw even
// above the threshold, so Get returns exactly what Set stored.
func TestCodec_TypedValueKeptRaw(t *testing.T) {
	c := newCodec(true, 64)

	payload := map[string]string{}
	for i := 0; i < 40; i++ {
		payload[string(rune('a'+i%26))+string(rune('0'+i%10))] = "the quick brown fox jumps over the lazy dog"
	}

	enc := c.compress(payload)
	if enc.compression != CompressionNone {
		t.Fatal("expected typed map to stay uncompressed")
	}
	got, ok := enc.stored.(map[string]string)
	if !ok {
		t.Fatalf("expected map[string]string, got %T", enc.stored)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Error("stored value differs from the original")
	}
	if enc.degraded {
		t.Error("raw storage of a typed value is not a degradation")
	}
}

func TestEngine_TypedValueRoundTrip(t *testing.T) {
	engine, _ := newTestEngine(t, Config{
		MaxSize:              100,
		EnableCompression:    true,
		CompressionThreshold: 64,
	})

	type payload struct {
		Name string
		Tags []string
	}

	filler := strings.Repeat("the quick brown fox ", 10)
	stored := map[string]string{"alpha": filler, "beta": filler, "gamma": filler}
	engine.Set("map", stored)
	engine.Set("struct", payload{Name: filler, Tags: []string{"daily", "ops"}})

	value, found := engine.Get("map")
	if !found {
		t.Fatal("expected typed map to be readable")
	}
	gotMap, ok := value.(map[string]string)
	if !ok {
		t.Fatalf("expected map[string]string back, got %T", value)
	}
	if !reflect.DeepEqual(gotMap, stored) {
		t.Error("map round-trip changed the value")
	}

	value, found = engine.Get("struct")
	if !found {
		t.Fatal("expected struct to be readable")
	}
	if _, ok := value.(payload); !ok {
		t.Fatalf("expected struct back, got %T", value)
	}

	stats := engine.Stats()
	if stats.Compressions != 0 {
		t.Errorf("typed values must not be compressed, got %d", stats.Compressions)
	}
	if stats.Misses != 0 {
		t.Errorf("expected no spurious misses, got %d", stats.Misses)
	}
}

func TestCodec_CorruptBlob(t *testing.T) {
	c := newCodec(true, 64)

	_, err := c.decompress("k", []byte("this is not zlib data"), CompressionZlib)
	if err == nil {
		t.Fatal("expected decode error for garbage blob")
	}
	if !IsCorruptedValue(err) {
		t.Errorf("expected corrupted-value error, got %v", err)
	}

	// A compressed entry that somehow holds a non-[]byte value is equally
	// corrupt.
	_, err = c.decompress("k", 42, CompressionZlib)
	if err == nil || !IsCorruptedValue(err) {
		t.Errorf("expected corrupted-value error for wrong stored type, got %v", err)
	}
}

// A corrupt stored entry is auto-evicted on read and counted as a miss.
func TestEngine_CorruptEntryAutoEvicted(t *testing.T) {
	engine, _ := newTestEngine(t, Config{
		MaxSize:              100,
		EnableCompression:    true,
		CompressionThreshold: 64,
	})

	engine.Set("victim", bytes.Repeat([]byte("data"), 256))
	engine.Set("healthy", "fine")

	// Corrupt the stored payload in place.
	engine.mu.Lock()
	engine.entries["victim"].value = []byte("garbage")
	engine.mu.Unlock()

	if _, found := engine.Get("victim"); found {
		t.Error("expected corrupt entry to read as a miss")
	}
	if engine.Has("victim") {
		t.Error("expected corrupt entry to be evicted")
	}
	if _, found := engine.Get("healthy"); !found {
		t.Error("expected other entries untouched")
	}

	stats := engine.Stats()
	if stats.DecodeFailures != 1 {
		t.Errorf("expected 1 decode failure, got %d", stats.DecodeFailures)
	}
	if stats.Misses != 1 {
		t.Errorf("expected the corrupt read counted as a miss, got %d", stats.Misses)
	}
}

func TestEstimateSize(t *testing.T) {
	cases := []struct {
		value interface{}
		want  int64
	}{
		{nil, 0},
		{"hello", 5},
		{[]byte{1, 2, 3}, 3},
		{true, 1},
		{int16(7), 2},
		{int32(7), 4},
		{int64(7), 8},
		{3.14, 8},
	}
	for _, tc := range cases {
		if got := estimateSize(tc.value); got != tc.want {
			t.Errorf("estimateSize(%v) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestCodec_ThresholdHotSwap(t *testing.T) {
	c := newCodec(true, 4096)

	payload := bytes.Repeat([]byte("swap"), 512) // 2048 bytes
	if enc := c.compress(payload); enc.compression != CompressionNone {
		t.Error("expected no compression below the initial threshold")
	}

	c.threshold.Store(1024)
	if enc := c.compress(payload); enc.compression != CompressionZlib {
		t.Error("expected compression after lowering the threshold")
	}
}
