// lazy.go — single-shot deferred context for xgx-rail core.
//
// A LazyContext holds a zero-argument thunk that produces exactly one
// ErrorContext on first evaluation. If the owning pipeline succeeds, the
// thunk is never invoked; that is the central performance contract of the
// failure-path-only context model.
//
// Single-shot discipline: the thunk is dropped after evaluation, and a second
// Eval panics. Reuse is a programming error, not a runtime condition.
package xgxrail

import "fmt"

// LazyContext defers context construction until an error actually needs it.
type LazyContext struct {
	thunk func() ErrorContext
}

// Lazy wraps a string thunk. The thunk runs at most once, and only when the
// context is attached to a failure.
func Lazy(f func() string) *LazyContext {
	return &LazyContext{thunk: func() ErrorContext { return Message(f()) }}
}

// LazyGroup wraps a thunk producing a builder-constructed (or any other)
// ErrorContext. Semantics are identical to Lazy.
func LazyGroup(f func() ErrorContext) *LazyContext {
	return &LazyContext{thunk: f}
}

// Contextf is the ergonomic formatted variant: formatting arguments are
// captured now, but fmt.Sprintf runs only on the failure path.
func Contextf(format string, args ...any) *LazyContext {
	return Lazy(func() string { return fmt.Sprintf(format, args...) })
}

// Eval invokes the thunk and consumes the LazyContext. Calling Eval twice
// panics: the type is single-shot and must be discarded after use.
func (l *LazyContext) Eval() ErrorContext {
	if l.thunk == nil {
		panic("xgxrail: LazyContext evaluated twice")
	}
	f := l.thunk
	l.thunk = nil
	return f()
}

// Evaluated reports whether the thunk has already been consumed.
func (l *LazyContext) Evaluated() bool { return l.thunk == nil }
