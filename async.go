// async.go — context-aware mirror of the error pipeline.
//
// An AsyncPipeline wraps a Task (a context-accepting fallible function) and
// records the same fluent chain Pipeline offers, without executing anything.
// The whole chain runs when Finish is called: the task first, then the
// recorded steps against a synchronous Pipeline over its result.
//
// Contracts carried over from the synchronous pipeline, plus:
//   • Lazy on suspension: no context thunk runs before the task has
//     completed with a failure. Cancelling ctx before the task completes
//     therefore never invokes a thunk.
//   • Cancel-safety: the wrapper adds no state of its own; it is exactly as
//     cancel-safe as the task it wraps.
package xgxrail

import "context"

// Task is a cooperative fallible step: it must honor ctx cancellation.
type Task[T any] func(ctx context.Context) (T, error)

// AsyncPipeline defers a task plus a recorded fluent chain until Finish.
type AsyncPipeline[T any] struct {
	run func(ctx context.Context) *Pipeline[T]
}

// Async wraps a task in a deferred pipeline. ctx cancellation is observed by
// the task itself; a pre-cancelled ctx simply yields the task's ctx error.
func Async[T any](task Task[T]) *AsyncPipeline[T] {
	return &AsyncPipeline[T]{run: func(ctx context.Context) *Pipeline[T] {
		return Pipe(task(ctx))
	}}
}

// AsyncOf lifts an already-computed result into a deferred pipeline.
func AsyncOf[T any](v T, err error) *AsyncPipeline[T] {
	return Async(func(context.Context) (T, error) { return v, err })
}

// step records one synchronous transformation on the eventual pipeline.
func (a *AsyncPipeline[T]) step(f func(p *Pipeline[T]) *Pipeline[T]) *AsyncPipeline[T] {
	prev := a.run
	return &AsyncPipeline[T]{run: func(ctx context.Context) *Pipeline[T] {
		return f(prev(ctx))
	}}
}

// WithContext queues a context entry for the failure path.
func (a *AsyncPipeline[T]) WithContext(ctx any) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.WithContext(ctx) })
}

// WithContextFunc queues a message thunk; it runs once, at finalization, and
// only on failure.
func (a *AsyncPipeline[T]) WithContextFunc(f func() string) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.WithContextFunc(f) })
}

// Map transforms the success value.
func (a *AsyncPipeline[T]) Map(f func(T) T) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.Map(f) })
}

// AndThen chains another task on success. The task sees the Finish ctx.
func (a *AsyncPipeline[T]) AndThen(f func(ctx context.Context, v T) (T, error)) *AsyncPipeline[T] {
	prev := a.run
	return &AsyncPipeline[T]{run: func(ctx context.Context) *Pipeline[T] {
		p := prev(ctx)
		return p.AndThen(func(v T) (T, error) { return f(ctx, v) })
	}}
}

// MapError transforms the current error; pending is untouched.
func (a *AsyncPipeline[T]) MapError(f func(error) error) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.MapError(f) })
}

// Recover attempts recovery with a task; success clears pending, failure
// preserves it, exactly as in the synchronous pipeline.
func (a *AsyncPipeline[T]) Recover(f func(ctx context.Context, err error) (T, error)) *AsyncPipeline[T] {
	prev := a.run
	return &AsyncPipeline[T]{run: func(ctx context.Context) *Pipeline[T] {
		p := prev(ctx)
		return p.Recover(func(err error) (T, error) { return f(ctx, err) })
	}}
}

// RecoverSafe recovers with an infallible function; pending always clears.
func (a *AsyncPipeline[T]) RecoverSafe(f func(error) T) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.RecoverSafe(f) })
}

// RecoverTransient is Recover gated on transience.
func (a *AsyncPipeline[T]) RecoverTransient(f func(ctx context.Context, err error) (T, error)) *AsyncPipeline[T] {
	prev := a.run
	return &AsyncPipeline[T]{run: func(ctx context.Context) *Pipeline[T] {
		p := prev(ctx)
		return p.RecoverTransient(func(err error) (T, error) { return f(ctx, err) })
	}}
}

// Fallback replaces any failure with v, clearing pending.
func (a *AsyncPipeline[T]) Fallback(v T) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.Fallback(v) })
}

// WithRetryContext records the attempt number as metadata on failure.
func (a *AsyncPipeline[T]) WithRetryContext(attempt uint32) *AsyncPipeline[T] {
	return a.step(func(p *Pipeline[T]) *Pipeline[T] { return p.WithRetryContext(attempt) })
}

// Finish runs the task and the recorded chain, then finalizes.
func (a *AsyncPipeline[T]) Finish(ctx context.Context) (T, error) {
	return a.run(ctx).Finish()
}

// FinishComposable is Finish with a concrete error type.
func (a *AsyncPipeline[T]) FinishComposable(ctx context.Context) (T, *ComposableError) {
	return a.run(ctx).FinishComposable()
}

// AsyncMap transforms the success value into a new type.
func AsyncMap[T, U any](a *AsyncPipeline[T], f func(T) U) *AsyncPipeline[U] {
	prev := a.run
	return &AsyncPipeline[U]{run: func(ctx context.Context) *Pipeline[U] {
		return PipeMap(prev(ctx), f)
	}}
}

// AsyncThen chains a fallible type-changing task.
func AsyncThen[T, U any](a *AsyncPipeline[T], f func(ctx context.Context, v T) (U, error)) *AsyncPipeline[U] {
	prev := a.run
	return &AsyncPipeline[U]{run: func(ctx context.Context) *Pipeline[U] {
		p := prev(ctx)
		return PipeThen(p, func(v T) (U, error) { return f(ctx, v) })
	}}
}
