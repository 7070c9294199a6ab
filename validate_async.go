// validate_async.go — task aggregation into Validation values.
//
// ValidateAll runs tasks one after another and never short-circuits: every
// task runs (unless ctx is already cancelled) and every failure lands in the
// accumulated error list, in task order. ValidateAllConcurrent does the same
// with bounded parallelism; error order still follows task order, not
// completion order, so output is deterministic.
package xgxrail

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ValidateAll runs tasks sequentially and aggregates all outcomes.
// A cancelled ctx turns every remaining task's slot into its ctx error.
func ValidateAll[T any](ctx context.Context, tasks []Task[T]) Validation[[]T] {
	vs := make([]Validation[T], len(tasks))
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			vs[i] = Invalid[T](err)
			continue
		}
		vs[i] = FromResult(task(ctx))
	}
	return Collect(vs)
}

// ValidateAllConcurrent runs tasks with at most limit in flight (limit <= 0
// means unbounded) and aggregates all outcomes in task order.
//
// Accumulation means no cancel-on-first-error: each goroutine records its
// own slot and always reports success to the group, so sibling tasks keep
// running after a failure.
func ValidateAllConcurrent[T any](ctx context.Context, limit int, tasks []Task[T]) Validation[[]T] {
	vs := make([]Validation[T], len(tasks))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, task := range tasks {
		g.Go(func() error {
			vs[i] = FromResult(task(ctx))
			return nil
		})
	}
	_ = g.Wait()
	return Collect(vs)
}
