// errors.go: structured error handling for xanthos cache operations
//
// This file provides structured error types using the go-errors library,
// enabling rich error context, categorization, and standardized error codes
// for all cache operations.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package xanthos

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for Xanthos cache operations
const (
	// Configuration errors
	ErrCodeInvalidConfig    errors.ErrorCode = "XANTHOS_INVALID_CONFIG"
	ErrCodeInvalidMaxSize   errors.ErrorCode = "XANTHOS_INVALID_MAX_SIZE"
	ErrCodeInvalidTTL       errors.ErrorCode = "XANTHOS_INVALID_TTL"
	ErrCodeInvalidStrategy  errors.ErrorCode = "XANTHOS_INVALID_STRATEGY"
	ErrCodeInvalidThreshold errors.ErrorCode = "XANTHOS_INVALID_THRESHOLD"

	// Operation errors
	ErrCodeEmptyKey       errors.ErrorCode = "XANTHOS_EMPTY_KEY"
	ErrCodeEngineClosed   errors.ErrorCode = "XANTHOS_ENGINE_CLOSED"
	ErrCodeCorruptedValue errors.ErrorCode = "XANTHOS_CORRUPTED_VALUE"

	// Loader errors
	ErrCodeLoaderFailed    errors.ErrorCode = "XANTHOS_LOADER_FAILED"
	ErrCodeLoaderCancelled errors.ErrorCode = "XANTHOS_LOADER_CANCELLED"
	ErrCodeInvalidLoader   errors.ErrorCode = "XANTHOS_INVALID_LOADER"

	// Internal errors
	ErrCodePanicRecovered errors.ErrorCode = "XANTHOS_PANIC_RECOVERED"
)

// Common error messages
const (
	msgInvalidConfig    = "invalid configuration"
	msgInvalidMaxSize   = "invalid max size: must be greater than 0"
	msgInvalidTTL       = "invalid TTL: must be non-negative"
	msgInvalidStrategy  = "invalid eviction strategy"
	msgInvalidThreshold = "invalid compression threshold: must be greater than 0"
	msgEmptyKey         = "key cannot be empty"
	msgEngineClosed     = "engine is closed"
	msgCorruptedValue   = "stored value cannot be decoded"
	msgLoaderFailed     = "loader function failed"
	msgLoaderCancelled  = "loader function was cancelled"
	msgInvalidLoader    = "loader function cannot be nil"
	msgPanicRecovered   = "panic recovered in cache operation"
)

// NewErrInvalidConfig creates an error for a configuration that cannot be used
func NewErrInvalidConfig(reason string) error {
	return errors.NewWithField(ErrCodeInvalidConfig, msgInvalidConfig, "reason", reason)
}

// NewErrInvalidMaxSize creates an error for invalid max size
func NewErrInvalidMaxSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxSize, msgInvalidMaxSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidTTL creates an error for invalid TTL
func NewErrInvalidTTL(ttl interface{}) error {
	return errors.NewWithContext(ErrCodeInvalidTTL, msgInvalidTTL, map[string]interface{}{
		"provided_ttl": ttl,
	})
}

// NewErrInvalidStrategy creates an error for an unknown strategy name
func NewErrInvalidStrategy(name string) error {
	return errors.NewWithContext(ErrCodeInvalidStrategy, msgInvalidStrategy, map[string]interface{}{
		"provided_strategy": name,
		"valid_strategies":  "lru, lfu, ttl, adaptive, predictive, hybrid",
	})
}

// NewErrInvalidThreshold creates an error for an invalid compression threshold
func NewErrInvalidThreshold(threshold int) error {
	return errors.NewWithContext(ErrCodeInvalidThreshold, msgInvalidThreshold, map[string]interface{}{
		"provided_threshold": threshold,
		"minimum_required":   1,
	})
}

// NewErrEmptyKey creates an error when key is empty
func NewErrEmptyKey(operation string) error {
	return errors.NewWithField(ErrCodeEmptyKey, msgEmptyKey, "operation", operation)
}

// NewErrEngineClosed creates an error for operations on a closed engine
func NewErrEngineClosed(operation string) error {
	return errors.NewWithField(ErrCodeEngineClosed, msgEngineClosed, "operation", operation)
}

// NewErrCorruptedValue creates an error when a stored entry fails to decode.
// The engine treats this as a hard decode error, auto-evicts the entry and
// reports the incident through its Logger.
func NewErrCorruptedValue(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeCorruptedValue, msgCorruptedValue).
		WithContext("key", key).
		WithSeverity("warning")
}

// NewErrLoaderFailed creates an error when loader function fails
func NewErrLoaderFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeLoaderFailed, msgLoaderFailed).
		WithContext("key", key).
		AsRetryable()
}

// NewErrLoaderCancelled creates an error when a context-aware load is
// cancelled. The cause is wrapped so errors.Is still matches
// context.Canceled and context.DeadlineExceeded.
func NewErrLoaderCancelled(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeLoaderCancelled, msgLoaderCancelled).
		WithContext("key", key)
}

// NewErrInvalidLoader creates an error when loader function is nil
func NewErrInvalidLoader(key string) error {
	return errors.NewWithField(ErrCodeInvalidLoader, msgInvalidLoader, "key", key)
}

// NewErrPanicRecovered creates an error when a panic is recovered
func NewErrPanicRecovered(operation string, panicValue interface{}) error {
	return errors.NewWithContext(ErrCodePanicRecovered, msgPanicRecovered, map[string]interface{}{
		"operation":   operation,
		"panic_value": fmt.Sprintf("%v", panicValue),
	}).WithSeverity("critical")
}

// IsEmptyKey checks if error is an empty key error
func IsEmptyKey(err error) bool {
	return errors.HasCode(err, ErrCodeEmptyKey)
}

// IsEngineClosed checks if error is a closed engine error
func IsEngineClosed(err error) bool {
	return errors.HasCode(err, ErrCodeEngineClosed)
}

// IsCorruptedValue checks if error is a corrupt stored value error
func IsCorruptedValue(err error) bool {
	return errors.HasCode(err, ErrCodeCorruptedValue)
}

// IsConfigError checks if error is a configuration error
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeInvalidConfig || code == ErrCodeInvalidMaxSize ||
			code == ErrCodeInvalidTTL || code == ErrCodeInvalidStrategy ||
			code == ErrCodeInvalidThreshold
	}
	return false
}

// IsLoaderError checks if error is a loader error
func IsLoaderError(err error) bool {
	if err == nil {
		return false
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		code := coder.ErrorCode()
		return code == ErrCodeLoaderFailed || code == ErrCodeLoaderCancelled ||
			code == ErrCodeInvalidLoader
	}
	return false
}

// IsRetryable checks if the error can be retried
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorContext extracts the structured context map from an error,
// or nil when the error carries none.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var structured *errors.Error
	if goerrors.As(err, &structured) {
		return structured.Context
	}
	return nil
}

// GetErrorCode extracts the error code from an error
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}
