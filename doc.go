// doc.go — package documentation for xgx-rail.
//
// Package xgxrail provides structured error composition: a wrapper type that
// carries an ordered stack of context annotations plus an optional numeric
// code, a pipeline for chaining fallible steps that accumulates context only
// on the failure path, and an accumulating Validation value for collecting
// many errors instead of failing fast.
//
// Design tenets:
//   - Interop-first: play nicely with errors.Is/As and Unwrap trees.
//   - Minimal surface: no logging/HTTP transport in core; the only policy
//     execution lives in the Retry helper, which is a collaborator.
//   - Failure-path laziness: context thunks never run on success.
//
// # Context model
//
// An ErrorContext is one of three shapes: a free-form Message, a source
// Location ("at file:line"), or a Group of tags, key/value metadata, an
// optional message, and an optional location, built via Group()...Build().
// Contexts are stored in insertion order and displayed newest first:
//
//	err := xgxrail.New(errors.New("db error")).
//		WithContext("ctx1").
//		WithContext("ctx2")
//	// err.Chain() == "ctx2 -> ctx1 -> db error"
//
// # When is context evaluated?
//
//	ComposableError.WithContext   immediately (eager append)
//	Pipeline, success path        never; entries and thunks are dropped
//	Pipeline, failure path        at Finish, each thunk exactly once
//
// # Recovery and pending context
//
// A pipeline accumulates pending context only while failure-shaped. Recovery
// that succeeds clears pending entirely — the error was handled, and stale
// context must not attach to a later, unrelated failure. Recovery that
// itself fails keeps pending, because the pre-recovery context still
// describes the situation. Fallback and RecoverSafe cannot fail and always
// clear.
//
// # Fingerprints
//
// Fingerprint computes a deterministic 64-bit FNV-1a digest over a sorted
// projection of the error (tags, code, core message, optionally metadata).
// Sorting makes the digest independent of insertion order, so structurally
// identical errors group together across runs and hosts.
//
// # Validation
//
// Validation accumulates instead of short-circuiting: Zip and Collect
// concatenate error lists left-to-right, and an invalid Validation always
// carries at least one error. ValidateAll and ValidateAllConcurrent lift
// task slices into the same shape.
//
// # Transience
//
// IsTransient consults a TransientError implementation anywhere in the
// chain, then falls back to hosted I/O classification (connection refused,
// reset, aborted, timed out, interrupted, would-block). Mark adapts any
// error with a closure classifier. Retry consumes the classification
// together with a backoff.BackOff policy and a pluggable sleep primitive.
package xgxrail
