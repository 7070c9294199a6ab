// typed_field.go — optional, type-safe metadata helpers for xgx-rail.
//
// Overview
//   Group metadata is stringly-typed by design (stable across serialization
//   boundaries). TypedField layers typed access on top: a key plus an
//   encode/decode pair, so callers attach and read values without scattering
//   strconv calls. It complements the plain Metadata(k, v) API; it does not
//   replace it.
//
// Goals
//   • Zero policy: purely a convenience for authors who prefer typed access.
//   • No lock-in: mixing Metadata("k", "v") with Field access is fine.
//   • Interop-first: Get works over plain error values via errors.As.
package xgxrail

import (
	"strconv"
	"time"
)

// TypedField reads and writes one metadata key with a typed codec.
type TypedField[T any] struct {
	key string
	enc func(T) string
	dec func(string) (T, error)
}

// Field constructs a TypedField with an explicit codec.
// Keys SHOULD be snake_case for consistency across exports.
func Field[T any](key string, enc func(T) string, dec func(string) (T, error)) TypedField[T] {
	return TypedField[T]{key: key, enc: enc, dec: dec}
}

// StringField is the identity codec.
func StringField(key string) TypedField[string] {
	return Field(key,
		func(s string) string { return s },
		func(s string) (string, error) { return s, nil })
}

// UintField encodes base-10 uint32 values.
func UintField(key string) TypedField[uint32] {
	return Field(key,
		func(v uint32) string { return strconv.FormatUint(uint64(v), 10) },
		func(s string) (uint32, error) {
			v, err := strconv.ParseUint(s, 10, 32)
			return uint32(v), err
		})
}

// DurationField encodes durations in time.Duration string form ("150ms").
func DurationField(key string) TypedField[time.Duration] {
	return Field(key,
		func(d time.Duration) string { return d.String() },
		time.ParseDuration)
}

// Key returns the underlying metadata key.
func (f TypedField[T]) Key() string { return f.key }

// Context builds the Metadata context for a value, for use anywhere an
// ErrorContext is accepted (pipelines included).
func (f TypedField[T]) Context(val T) ErrorContext {
	return Metadata(f.key, f.enc(val))
}

// Set appends (key = val) to e's stack as a Metadata context.
func (f TypedField[T]) Set(e *ComposableError, val T) *ComposableError {
	return e.WithContext(f.Context(val))
}

// Get retrieves the typed value from err's nearest ComposableError, scanning
// most recent first so newer annotations shadow older ones. Returns
// (zero, false) when the key is absent or its value does not decode as T.
func (f TypedField[T]) Get(err error) (T, bool) {
	var zero T
	raw, ok := MetadataOf(err, f.key)
	if !ok {
		return zero, false
	}
	v, derr := f.dec(raw)
	if derr != nil {
		return zero, false
	}
	return v, true
}

// Well-known retry-hint fields, shared with the pipeline's Retry sub-builder
// and the async retry helper.
var (
	fieldMaxRetriesHint = UintField("max_retries_hint")
	fieldRetryAfterHint = DurationField("retry_after_hint")
	fieldRetryAttempt   = UintField("retry_attempt")
)

// MaxRetriesHintField exposes the "max_retries_hint" metadata field.
func MaxRetriesHintField() TypedField[uint32] { return fieldMaxRetriesHint }

// RetryAfterHintField exposes the "retry_after_hint" metadata field.
func RetryAfterHintField() TypedField[time.Duration] { return fieldRetryAfterHint }

// RetryAttemptField exposes the "retry_attempt" metadata field.
func RetryAttemptField() TypedField[uint32] { return fieldRetryAttempt }
