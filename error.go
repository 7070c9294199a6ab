// error.go — the ComposableError wrapper for xgx-rail core.
//
// A ComposableError wraps a caller-supplied core error with an ordered,
// append-only stack of ErrorContext annotations and an optional numeric code.
//
// Invariants:
//   • The stack stores insertion order (oldest first); display and iteration
//     walk it in reverse (most recent first).
//   • The stack is append-only through the public API; removal is forbidden.
//   • Clone produces an independent deep copy.
//
// Interop:
//   • implements error; Unwrap() error exposes the core to errors.Is/As.
//   • implements fmt.Formatter (see format.go): %v concise chain, %+v cascaded.
package xgxrail

import (
	"iter"
	"reflect"
)

// ComposableError is the core wrapper: user error + context stack + code.
// Fluent methods mutate the receiver and return it; use Clone to branch.
type ComposableError struct {
	core    error
	stack   []ErrorContext
	code    uint32
	hasCode bool
}

// New wraps a core error with an empty context stack and no code.
func New(core error) *ComposableError {
	return &ComposableError{core: core}
}

// WithCode wraps a core error and sets a code in one step.
func WithCode(core error, code uint32) *ComposableError {
	return &ComposableError{core: core, code: code, hasCode: true}
}

// WithContext appends one context entry. The argument may be anything
// asErrorContext accepts: a string, an ErrorContext, a *LazyContext (which is
// evaluated here), a group builder, a thunk, or any Stringer/error.
// Empty Group contexts are appended as-is; emptiness is a display concern.
func (e *ComposableError) WithContext(ctx any) *ComposableError {
	e.stack = append(e.stack, asErrorContext(ctx))
	return e
}

// WithContexts appends every entry in iterator order.
func (e *ComposableError) WithContexts(ctxs ...ErrorContext) *ComposableError {
	e.stack = append(e.stack, ctxs...)
	return e
}

// SetCode sets or replaces the numeric code.
func (e *ComposableError) SetCode(code uint32) *ComposableError {
	e.code, e.hasCode = code, true
	return e
}

// MapCore replaces the core with f(core); stack and code are preserved.
func (e *ComposableError) MapCore(f func(error) error) *ComposableError {
	e.core = f(e.core)
	return e
}

// Core returns the wrapped core error.
func (e *ComposableError) Core() error { return e.core }

// Unwrap exposes the core to stdlib traversal via errors.Is/As.
func (e *ComposableError) Unwrap() error { return e.core }

// Code returns the numeric code and whether one is set.
func (e *ComposableError) Code() (uint32, bool) { return e.code, e.hasCode }

// Contexts returns a cloned slice of contexts in display order (most recent
// first). Mutating the result does not affect the error.
func (e *ComposableError) Contexts() []ErrorContext {
	if len(e.stack) == 0 {
		return nil
	}
	out := make([]ErrorContext, len(e.stack))
	for i, c := range e.stack {
		out[len(e.stack)-1-i] = c
	}
	return out
}

// ContextIter yields contexts in display order (most recent first) without
// allocating. Entries are value copies; the stack itself is never exposed.
func (e *ComposableError) ContextIter() iter.Seq[ErrorContext] {
	return func(yield func(ErrorContext) bool) {
		for i := len(e.stack) - 1; i >= 0; i-- {
			if !yield(e.stack[i]) {
				return
			}
		}
	}
}

// Len reports the number of attached contexts.
func (e *ComposableError) Len() int { return len(e.stack) }

// Clone returns an independent deep copy: later mutation of either value
// does not affect the other.
func (e *ComposableError) Clone() *ComposableError {
	n := &ComposableError{core: e.core, code: e.code, hasCode: e.hasCode}
	if len(e.stack) > 0 {
		n.stack = make([]ErrorContext, len(e.stack))
		copy(n.stack, e.stack)
	}
	return n
}

// Equal reports whether two wrappers have structurally equal cores, pointwise
// equal context stacks, and the same code.
func (e *ComposableError) Equal(other *ComposableError) bool {
	if e == nil || other == nil {
		return e == other
	}
	if e.hasCode != other.hasCode || e.code != other.code {
		return false
	}
	if len(e.stack) != len(other.stack) {
		return false
	}
	for i := range e.stack {
		if !e.stack[i].Equal(other.stack[i]) {
			return false
		}
	}
	return coresEqual(e.core, other.core)
}

// coresEqual compares core errors structurally. Identity first (cheap and
// covers sentinel errors), then reflect.DeepEqual for value-shaped cores.
func coresEqual(a, b error) bool {
	if a == nil || b == nil {
		return a == b
	}
	if isComparable(a) && isComparable(b) && a == b {
		return true
	}
	return reflect.DeepEqual(a, b)
}

// Error renders the default single-line chain:
//
//	ctxN -> ctxN-1 -> … -> ctx1 -> <core> (code: N)
//
// Contexts appear most recent first; the code suffix only when a code is set.
func (e *ComposableError) Error() string { return e.Chain() }

// Chain is the named accessor for the default display string.
func (e *ComposableError) Chain() string {
	return defaultFormat.render(e)
}

// coreDisplay returns the core's display form ("" for a nil core).
func (e *ComposableError) coreDisplay() string {
	if e.core == nil {
		return ""
	}
	return e.core.Error()
}
