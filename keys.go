// keys.go: cache key canonicalization
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package xanthos

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// CompositeKey canonicalizes a logical key built from multiple parts into a
// stable lookup key. A single string part is returned untouched, so plain
// string keys stay human readable; anything else is content-hashed with
// xxhash. Identical logical keys always canonicalize identically.
//
//	k := xanthos.CompositeKey("user", 123, "profile")
func CompositeKey(parts ...interface{}) string {
	if len(parts) == 1 {
		if s, ok := parts[0].(string); ok {
			return s
		}
	}

	d := xxhash.New()
	for i, part := range parts {
		if i > 0 {
			// Unit separator keeps ("ab","c") distinct from ("a","bc").
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString(partString(part))
	}
	return strconv.FormatUint(d.Sum64(), 16)
}

// partString converts a key part to its canonical string form without
// allocations for the common types.
func partString(part interface{}) string {
	switch v := part.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
