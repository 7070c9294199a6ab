// pipeline.go — the fluent error pipeline for xgx-rail.
//
// A Pipeline wraps an in-flight (value, error) pair and accumulates pending
// context entries only while it is failure-shaped. The recovery rules carry
// the design weight:
//
//   • A recovery step that succeeds CLEARS pending — the error was handled,
//     and stale context must not leak onto a later, unrelated failure.
//   • A recovery step that itself fails PRESERVES pending — the pre-recovery
//     context is still what describes the situation.
//   • Fallback and RecoverSafe cannot fail, so they always clear.
//
// Lazy entries (thunks, LazyContext) stay unevaluated until Finish runs on a
// failure; on the success path they are dropped without ever being invoked.
package xgxrail

import "time"

// pendingContext is one queued annotation. Exactly one of ctx/thunk is set;
// thunks are materialized at finalization, in queue order.
type pendingContext struct {
	ctx   ErrorContext
	thunk func() ErrorContext
}

func (p pendingContext) materialize() ErrorContext {
	if p.thunk != nil {
		return p.thunk()
	}
	return p.ctx
}

// Pipeline chains fallible steps over a value of type T. Create with Pipe,
// Succeed, or Fail; consume with Finish or FinishComposable. A Pipeline is
// owned by one caller at a time and is not safe for concurrent use.
type Pipeline[T any] struct {
	val     T
	err     error
	pending []pendingContext
}

// Pipe wraps a (value, error) pair, the shape every fallible Go call returns.
func Pipe[T any](v T, err error) *Pipeline[T] {
	return &Pipeline[T]{val: v, err: err}
}

// Succeed starts a success-shaped pipeline.
func Succeed[T any](v T) *Pipeline[T] {
	return &Pipeline[T]{val: v}
}

// Fail starts a failure-shaped pipeline.
func Fail[T any](err error) *Pipeline[T] {
	return &Pipeline[T]{err: err}
}

// Failed reports whether the pipeline is currently failure-shaped.
func (p *Pipeline[T]) Failed() bool { return p.err != nil }

// Err returns the current error (nil when success-shaped).
func (p *Pipeline[T]) Err() error { return p.err }

// -----------------------------------------------------------------------------
// Context accumulation
// -----------------------------------------------------------------------------

// WithContext queues a context entry when failure-shaped; a no-op on success.
// Lazy arguments (*LazyContext, thunks) stay deferred until finalization.
func (p *Pipeline[T]) WithContext(ctx any) *Pipeline[T] {
	if p.err == nil {
		return p
	}
	switch x := ctx.(type) {
	case *LazyContext:
		p.pending = append(p.pending, pendingContext{thunk: x.Eval})
	case func() ErrorContext:
		p.pending = append(p.pending, pendingContext{thunk: x})
	case func() string:
		p.pending = append(p.pending, pendingContext{thunk: func() ErrorContext { return Message(x()) }})
	default:
		p.pending = append(p.pending, pendingContext{ctx: asErrorContext(ctx)})
	}
	return p
}

// WithContextFunc queues a message thunk. The thunk is invoked exactly once,
// during finalization, and only if the pipeline finishes failure-shaped.
func (p *Pipeline[T]) WithContextFunc(f func() string) *Pipeline[T] {
	if p.err == nil {
		return p
	}
	p.pending = append(p.pending, pendingContext{thunk: func() ErrorContext { return Message(f()) }})
	return p
}

// -----------------------------------------------------------------------------
// Value and error transitions
// -----------------------------------------------------------------------------

// Map transforms the success value; failures pass through untouched.
func (p *Pipeline[T]) Map(f func(T) T) *Pipeline[T] {
	if p.err == nil {
		p.val = f(p.val)
	}
	return p
}

// AndThen chains another fallible step on success; failures pass through.
// Pending context is untouched either way.
func (p *Pipeline[T]) AndThen(f func(T) (T, error)) *Pipeline[T] {
	if p.err == nil {
		p.val, p.err = f(p.val)
	}
	return p
}

// MapError transforms the current error in place; pending is untouched.
// A no-op on success.
func (p *Pipeline[T]) MapError(f func(error) error) *Pipeline[T] {
	if p.err != nil {
		p.err = f(p.err)
	}
	return p
}

// -----------------------------------------------------------------------------
// Recovery
// -----------------------------------------------------------------------------

// Recover attempts to handle the current failure. If f succeeds the pipeline
// becomes success-shaped and pending is cleared; if f fails the new error
// replaces the old one and pending is preserved. A no-op on success.
func (p *Pipeline[T]) Recover(f func(error) (T, error)) *Pipeline[T] {
	if p.err == nil {
		return p
	}
	v, err := f(p.err)
	if err == nil {
		p.val, p.err = v, nil
		p.pending = nil
		return p
	}
	p.err = err
	return p
}

// RecoverSafe handles the failure with a function that cannot fail; pending
// is always cleared. A no-op on success.
func (p *Pipeline[T]) RecoverSafe(f func(error) T) *Pipeline[T] {
	if p.err == nil {
		return p
	}
	p.val, p.err = f(p.err), nil
	p.pending = nil
	return p
}

// RecoverTransient is Recover gated on transience: permanent failures pass
// through with their pending context intact.
func (p *Pipeline[T]) RecoverTransient(f func(error) (T, error)) *Pipeline[T] {
	if p.err == nil || !IsTransient(p.err) {
		return p
	}
	return p.Recover(f)
}

// Fallback replaces any failure with v, clearing pending unconditionally.
func (p *Pipeline[T]) Fallback(v T) *Pipeline[T] {
	if p.err == nil {
		return p
	}
	p.val, p.err = v, nil
	p.pending = nil
	return p
}

// -----------------------------------------------------------------------------
// Classification observers (no transitions)
// -----------------------------------------------------------------------------

// IsTransient classifies the current error; success is never transient.
func (p *Pipeline[T]) IsTransient() bool {
	return IsTransient(p.err)
}

// ShouldRetry returns the current error when and only when it classifies as
// transient; nil otherwise.
func (p *Pipeline[T]) ShouldRetry() error {
	if IsTransient(p.err) {
		return p.err
	}
	return nil
}

// RetryAfterHint forwards the current error's retry-delay hint.
func (p *Pipeline[T]) RetryAfterHint() (time.Duration, bool) {
	if p.err == nil {
		var zero time.Duration
		return zero, false
	}
	return RetryAfterHintOf(p.err)
}

// MarkTransientIf wraps the current error with a classifier (see Mark); a
// no-op on success. Pending is untouched.
func (p *Pipeline[T]) MarkTransientIf(classify func(error) bool) *Pipeline[T] {
	if p.err != nil {
		p.err = Mark(p.err, classify)
	}
	return p
}

// -----------------------------------------------------------------------------
// Retry hints (advisory metadata, not imperative retry)
// -----------------------------------------------------------------------------

// Retry enters the retry-hint sub-builder. Hints are plain metadata contexts;
// nothing in core acts on them.
func (p *Pipeline[T]) Retry() *RetryHints[T] {
	return &RetryHints[T]{p: p}
}

// WithRetryContext records which attempt produced the current failure, as a
// "retry_attempt" metadata context.
func (p *Pipeline[T]) WithRetryContext(attempt uint32) *Pipeline[T] {
	return p.WithContext(Metadata("retry_attempt", itoa(int(attempt))))
}

// RetryHints attaches advisory retry metadata to a failure-shaped pipeline.
type RetryHints[T any] struct {
	p *Pipeline[T]
}

// MaxRetries attaches a "max_retries_hint" metadata context.
func (r *RetryHints[T]) MaxRetries(n uint32) *RetryHints[T] {
	r.p.WithContext(Metadata("max_retries_hint", itoa(int(n))))
	return r
}

// After attaches a "retry_after_hint" metadata context.
func (r *RetryHints[T]) After(d time.Duration) *RetryHints[T] {
	r.p.WithContext(Metadata("retry_after_hint", d.String()))
	return r
}

// ToPipeline exits the sub-builder.
func (r *RetryHints[T]) ToPipeline() *Pipeline[T] {
	return r.p
}

// -----------------------------------------------------------------------------
// Finalization
// -----------------------------------------------------------------------------

// Finish consumes the pipeline. On success it returns the value; on failure
// it returns a *ComposableError whose stack is the pending entries in their
// accumulation order and whose core is the current error. Lazy entries are
// materialized here, each exactly once.
func (p *Pipeline[T]) Finish() (T, error) {
	v, ce := p.FinishComposable()
	if ce != nil {
		return v, ce
	}
	return v, nil
}

// FinishComposable is Finish with a concrete error type, for callers that
// continue composing.
func (p *Pipeline[T]) FinishComposable() (T, *ComposableError) {
	if p.err == nil {
		return p.val, nil
	}
	ce := New(p.err)
	for _, pc := range p.pending {
		ce.stack = append(ce.stack, pc.materialize())
	}
	p.pending = nil
	var zero T
	return zero, ce
}

// -----------------------------------------------------------------------------
// Type-changing steps (package functions: methods cannot add type parameters)
// -----------------------------------------------------------------------------

// PipeMap transforms the success value into a new type, carrying the error
// state and pending context across unchanged.
func PipeMap[T, U any](p *Pipeline[T], f func(T) U) *Pipeline[U] {
	out := &Pipeline[U]{err: p.err, pending: p.pending}
	if p.err == nil {
		out.val = f(p.val)
	}
	return out
}

// PipeThen chains a fallible type-changing step, carrying pending context
// across unchanged.
func PipeThen[T, U any](p *Pipeline[T], f func(T) (U, error)) *Pipeline[U] {
	out := &Pipeline[U]{err: p.err, pending: p.pending}
	if p.err == nil {
		out.val, out.err = f(p.val)
	}
	return out
}
