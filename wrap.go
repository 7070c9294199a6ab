// wrap.go — shorthands that operate on arbitrary errors and result pairs.
//
// Purpose
//   - Apply xgx-rail's context model to ANY error value.
//   - Preserve interop with the standard library (errors.Is/As traverse the
//     wrapper via Unwrap).
//   - Stay policy-free.
//
// Wrap augments an existing ComposableError in place rather than nesting a
// second wrapper, so repeated Wrap calls build one flat context stack.
package xgxrail

// From converts any error into a *ComposableError without adding context.
//   - nil → nil
//   - *ComposableError → returned as-is
//   - other error → wrapped via New
func From(err error) *ComposableError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*ComposableError); ok {
		return ce
	}
	return New(err)
}

// Wrap attaches one context entry to any error.
//   - nil → nil (contrast Errorf, which creates a fresh error)
//   - *ComposableError → augmented in place
//   - other error → wrapped via New, then annotated
func Wrap(err error, ctx any) *ComposableError {
	if err == nil {
		return nil
	}
	return From(err).WithContext(ctx)
}

// Ctx is the result-pair shorthand: passes successes through untouched and
// wraps failures with one context entry.
//
//	rows, err := xgxrail.Ctx(q.Run(ctx), "loading rows")
func Ctx[T any](v T, err error, ctx any) (T, error) {
	if err == nil {
		return v, nil
	}
	return v, Wrap(err, ctx)
}

// CtxWith is Ctx with a deferred message: the thunk runs only on failure.
func CtxWith[T any](v T, err error, f func() string) (T, error) {
	if err == nil {
		return v, nil
	}
	return v, Wrap(err, Message(f()))
}

// ContextFn annotates an error with a deferred message; nil passes through
// and the thunk never runs.
func ContextFn(err error, f func() string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, Message(f()))
}

// Accumulate folds err into dst, joining when both are non-nil. Useful for
// gathering loop-body failures without a Validation value:
//
//	var errs error
//	for _, it := range items {
//		errs = xgxrail.Accumulate(errs, process(it))
//	}
func Accumulate(dst, err error) error {
	return Append(dst, err)
}
