// validation.go — accumulating validation for xgx-rail.
//
// Validation is the applicative sibling of the pipeline: instead of
// short-circuiting on the first failure, combinators concatenate error lists
// so callers see every problem at once.
//
// Invariants:
//   • An invalid Validation always carries at least one error; constructors
//     reject empty error sets by panicking (a contract violation, not a
//     runtime condition).
//   • Zip and Collect concatenate errors left-before-right.
package xgxrail

import "iter"

// Validation holds either one success value or a non-empty error list.
// The zero value is Valid with T's zero value.
type Validation[T any] struct {
	value T
	errs  []error
}

// Valid wraps a success value.
func Valid[T any](v T) Validation[T] {
	return Validation[T]{value: v}
}

// Invalid wraps a single error. Panics on nil: an invalid Validation must
// carry at least one error.
func Invalid[T any](err error) Validation[T] {
	if err == nil {
		panic("xgxrail: Invalid called with nil error")
	}
	return Validation[T]{errs: []error{err}}
}

// InvalidMany wraps one or more errors, skipping nils. Panics when no
// non-nil error remains.
func InvalidMany[T any](errs ...error) Validation[T] {
	nz := make([]error, 0, len(errs))
	for _, e := range errs {
		if e != nil {
			nz = append(nz, e)
		}
	}
	if len(nz) == 0 {
		panic("xgxrail: InvalidMany called with no errors")
	}
	return Validation[T]{errs: nz}
}

// FromResult converts a (value, error) pair: nil error → Valid, otherwise a
// single-error Invalid.
func FromResult[T any](v T, err error) Validation[T] {
	if err != nil {
		return Invalid[T](err)
	}
	return Valid(v)
}

// IsValid reports whether the Validation holds a value.
func (v Validation[T]) IsValid() bool { return len(v.errs) == 0 }

// IsInvalid reports whether the Validation holds errors.
func (v Validation[T]) IsInvalid() bool { return len(v.errs) > 0 }

// Map applies f on Valid only.
func (v Validation[T]) Map(f func(T) T) Validation[T] {
	if v.IsValid() {
		v.value = f(v.value)
	}
	return v
}

// MapErr applies f pointwise on Invalid only.
func (v Validation[T]) MapErr(f func(error) error) Validation[T] {
	if v.IsValid() {
		return v
	}
	out := make([]error, len(v.errs))
	for i, e := range v.errs {
		out[i] = f(e)
	}
	return Validation[T]{errs: out}
}

// AndThen chains monadically: short-circuits like a plain result, without
// accumulating. Use Zip/Collect for accumulation.
func (v Validation[T]) AndThen(f func(T) Validation[T]) Validation[T] {
	if v.IsValid() {
		return f(v.value)
	}
	return v
}

// OrElse replaces an Invalid with f(errors); Valid passes through.
func (v Validation[T]) OrElse(f func([]error) Validation[T]) Validation[T] {
	if v.IsInvalid() {
		return f(v.Errors())
	}
	return v
}

// Value returns the success value and whether the Validation is valid.
func (v Validation[T]) Value() (T, bool) {
	if v.IsValid() {
		return v.value, true
	}
	var zero T
	return zero, false
}

// Errors returns a defensive copy of the error list in accumulation order;
// nil when Valid.
func (v Validation[T]) Errors() []error {
	if len(v.errs) == 0 {
		return nil
	}
	out := make([]error, len(v.errs))
	copy(out, v.errs)
	return out
}

// NumErrors reports the error count (0 when Valid).
func (v Validation[T]) NumErrors() int { return len(v.errs) }

// ToResult converts lossily: only the first error survives. Exists for
// ergonomics when bridging into non-accumulating code paths.
func (v Validation[T]) ToResult() (T, error) {
	if v.IsInvalid() {
		var zero T
		return zero, v.errs[0]
	}
	return v.value, nil
}

// ToResultAll converts losslessly: all errors are joined (see Join) so the
// full list remains reachable via Unwrap() []error.
func (v Validation[T]) ToResultAll() (T, error) {
	if v.IsInvalid() {
		var zero T
		return zero, Join(v.errs...)
	}
	return v.value, nil
}

// Seq yields the Valid value at most once (exact size 0 or 1).
func (v Validation[T]) Seq() iter.Seq[T] {
	return func(yield func(T) bool) {
		if v.IsValid() {
			yield(v.value)
		}
	}
}

// ErrSeq yields the errors in accumulation order.
func (v Validation[T]) ErrSeq() iter.Seq[error] {
	return func(yield func(error) bool) {
		for _, e := range v.errs {
			if !yield(e) {
				return
			}
		}
	}
}

// -----------------------------------------------------------------------------
// Applicative combinators (package functions: methods cannot add type
// parameters)
// -----------------------------------------------------------------------------

// Pair is the product type Zip builds.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip is the applicative product: Valid only when both sides are Valid;
// otherwise the error lists concatenate, a's errors before b's.
func Zip[A, B any](a Validation[A], b Validation[B]) Validation[Pair[A, B]] {
	if a.IsValid() && b.IsValid() {
		return Valid(Pair[A, B]{First: a.value, Second: b.value})
	}
	errs := make([]error, 0, len(a.errs)+len(b.errs))
	errs = append(errs, a.errs...)
	errs = append(errs, b.errs...)
	return Validation[Pair[A, B]]{errs: errs}
}

// ZipWith is Zip followed by a combining function on the Valid side.
func ZipWith[A, B, C any](a Validation[A], b Validation[B], f func(A, B) C) Validation[C] {
	p := Zip(a, b)
	if p.IsValid() {
		return Valid(f(p.value.First, p.value.Second))
	}
	return Validation[C]{errs: p.errs}
}

// ValidMap applies a type-changing function on Valid only.
func ValidMap[T, U any](v Validation[T], f func(T) U) Validation[U] {
	if v.IsValid() {
		return Valid(f(v.value))
	}
	return Validation[U]{errs: v.errs}
}

// ValidThen chains a type-changing monadic step; short-circuits on Invalid.
func ValidThen[T, U any](v Validation[T], f func(T) Validation[U]) Validation[U] {
	if v.IsValid() {
		return f(v.value)
	}
	return Validation[U]{errs: v.errs}
}

// Collect aggregates a slice of Validations: Valid iff every element is
// Valid; otherwise all errors concatenate in element order.
func Collect[T any](vs []Validation[T]) Validation[[]T] {
	vals := make([]T, 0, len(vs))
	var errs []error
	for _, v := range vs {
		if v.IsInvalid() {
			errs = append(errs, v.errs...)
			continue
		}
		vals = append(vals, v.value)
	}
	if len(errs) > 0 {
		return Validation[[]T]{errs: errs}
	}
	return Valid(vals)
}

// CollectResults aggregates (value, error) pairs, treating each non-nil
// error as a single-error Invalid.
func CollectResults[T any](seq iter.Seq2[T, error]) Validation[[]T] {
	var vals []T
	var errs []error
	for v, err := range seq {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		vals = append(vals, v)
	}
	if len(errs) > 0 {
		return Validation[[]T]{errs: errs}
	}
	return Valid(vals)
}
