// codec.go: threshold-gated value compression
//
// Values are serialized with msgpack and compressed with zlib when the
// serialized form reaches the configured threshold. Only strings and byte
// slices are eligible, since they decode back to the identical Go type.
// Compression is only adopted when it actually pays: the stored form must
// be at least 10% smaller than the original, otherwise the raw value is
// kept.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"bytes"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/klauspost/compress/zlib"
	"github.com/vmihailenco/msgpack/v5"
)

// codec performs the compress/decompress steps of the engine. Its fields
// are atomic so hot-reloaded configuration can adjust them while Set and
// Get run concurrently; the engine calls compress outside its lock to keep
// the CPU-bound step off the critical section.
type codec struct {
	enabled   atomic.Bool
	threshold atomic.Int64
}

func newCodec(enabled bool, threshold int) *codec {
	c := &codec{}
	c.enabled.Store(enabled)
	c.threshold.Store(int64(threshold))
	return c
}

// encoded is the outcome of a compress call. stored carries either the
// caller's value untouched (CompressionNone) or a compressed blob
// (CompressionZlib).
type encoded struct {
	stored       interface{}
	compression  CompressionType
	originalSize int64
	storedSize   int64

	// degraded marks a serialization or compression failure that fell
	// back to raw storage with a best-effort size estimate. The caller's
	// Set must still succeed; the engine only logs the incident.
	degraded bool
	cause    error
}

// compress serializes and, when worthwhile, compresses a value.
// This never fails: any serialization or compression error degrades to raw
// storage with an estimated size.
func (c *codec) compress(value interface{}) encoded {
	if !c.enabled.Load() {
		size := estimateSize(value)
		return encoded{stored: value, compression: CompressionNone, originalSize: size, storedSize: size}
	}

	serialized, err := msgpack.Marshal(value)
	if err != nil {
		size := estimateSize(value)
		return encoded{
			stored:       value,
			compression:  CompressionNone,
			originalSize: size,
			storedSize:   size,
			degraded:     true,
			cause:        err,
		}
	}

	originalSize := int64(len(serialized))
	if originalSize < c.threshold.Load() {
		return encoded{stored: value, compression: CompressionNone, originalSize: originalSize, storedSize: originalSize}
	}

	// Only values whose serialized form decodes back to the identical Go
	// type are eligible for compression. Maps, slices and structs would
	// come back as generic msgpack shapes, so they stay raw and Get
	// returns the caller's value exactly.
	switch value.(type) {
	case string, []byte:
	default:
		return encoded{stored: value, compression: CompressionNone, originalSize: originalSize, storedSize: originalSize}
	}

	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, 6)
	if err == nil {
		_, err = zw.Write(serialized)
		if cerr := zw.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return encoded{
			stored:       value,
			compression:  CompressionNone,
			originalSize: originalSize,
			storedSize:   originalSize,
			degraded:     true,
			cause:        err,
		}
	}

	compressedSize := int64(buf.Len())
	if float64(compressedSize) < float64(originalSize)*compressionAdoptionRatio {
		return encoded{
			stored:       buf.Bytes(),
			compression:  CompressionZlib,
			originalSize: originalSize,
			storedSize:   compressedSize,
		}
	}

	// Ratio too poor, keep the raw value.
	return encoded{stored: value, compression: CompressionNone, originalSize: originalSize, storedSize: originalSize}
}

// decompress reverses compress. A corrupt payload is a hard decode error;
// the engine's policy is to auto-evict the entry and report a miss.
func (c *codec) decompress(key string, stored interface{}, compression CompressionType) (interface{}, error) {
	if compression == CompressionNone {
		return stored, nil
	}

	blob, ok := stored.([]byte)
	if !ok {
		return nil, NewErrCorruptedValue(key, fmt.Errorf("compressed entry holds %T, want []byte", stored))
	}

	zr, err := zlib.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, NewErrCorruptedValue(key, err)
	}
	serialized, err := io.ReadAll(zr)
	if cerr := zr.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, NewErrCorruptedValue(key, err)
	}

	var value interface{}
	if err := msgpack.Unmarshal(serialized, &value); err != nil {
		return nil, NewErrCorruptedValue(key, err)
	}
	return value, nil
}

// estimateSize approximates the in-memory footprint of a value when
// serialization is unavailable. Best effort only; accounting does not need
// to be exact, just stable.
func estimateSize(value interface{}) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return int64(len(v))
	case []byte:
		return int64(len(v))
	case bool, int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int, int64, uint, uint64, float64:
		return 8
	default:
		if serialized, err := msgpack.Marshal(value); err == nil {
			return int64(len(serialized))
		}
		return int64(len(fmt.Sprintf("%v", value)))
	}
}
