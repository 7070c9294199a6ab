package xgxrail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func errStrings(errs []error) []string {
	out := make([]string, len(errs))
	for i, e := range errs {
		out[i] = e.Error()
	}
	return out
}

func TestValidation_Constructors(t *testing.T) {
	t.Parallel()

	v := Valid(42)
	require.True(t, v.IsValid())
	require.False(t, v.IsInvalid())
	require.Zero(t, v.NumErrors())

	iv := Invalid[int](errors.New("a"))
	require.True(t, iv.IsInvalid())
	require.Equal(t, 1, iv.NumErrors())

	many := InvalidMany[int](errors.New("a"), nil, errors.New("b"))
	require.Equal(t, []string{"a", "b"}, errStrings(many.Errors()))
}

func TestValidation_EmptyInvalidIsRejected(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { Invalid[int](nil) })
	require.Panics(t, func() { InvalidMany[int]() })
	require.Panics(t, func() { InvalidMany[int](nil, nil) })
}

func TestValidation_FromResult(t *testing.T) {
	t.Parallel()

	require.True(t, FromResult(1, nil).IsValid())
	require.True(t, FromResult(0, errors.New("x")).IsInvalid())
}

func TestValidation_MapAppliesOnValidOnly(t *testing.T) {
	t.Parallel()

	v, ok := Valid(2).Map(func(n int) int { return n * 2 }).Value()
	require.True(t, ok)
	require.Equal(t, 4, v)

	iv := Invalid[int](errors.New("a")).Map(func(n int) int {
		t.Fatal("map ran on invalid")
		return n
	})
	require.True(t, iv.IsInvalid())
}

func TestValidation_MapErrPointwise(t *testing.T) {
	t.Parallel()

	iv := InvalidMany[int](errors.New("a"), errors.New("b")).
		MapErr(func(e error) error { return errors.New("field: " + e.Error()) })
	require.Equal(t, []string{"field: a", "field: b"}, errStrings(iv.Errors()))

	// Valid passes through untouched.
	require.True(t, Valid(1).MapErr(func(e error) error { t.Fatal("ran on valid"); return e }).IsValid())
}

func TestValidation_AndThenShortCircuits(t *testing.T) {
	t.Parallel()

	out := Valid(2).AndThen(func(n int) Validation[int] { return Valid(n + 1) })
	v, _ := out.Value()
	require.Equal(t, 3, v)

	iv := Invalid[int](errors.New("a")).AndThen(func(int) Validation[int] {
		t.Fatal("and_then ran on invalid")
		return Valid(0)
	})
	require.Equal(t, 1, iv.NumErrors())
}

func TestValidation_OrElse(t *testing.T) {
	t.Parallel()

	recovered := InvalidMany[int](errors.New("a"), errors.New("b")).
		OrElse(func(errs []error) Validation[int] { return Valid(len(errs)) })
	v, ok := recovered.Value()
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestZip_ConcatenatesSelfThenOther(t *testing.T) {
	t.Parallel()

	// Both valid → valid pair.
	p := Zip(Valid(1), Valid("x"))
	pv, ok := p.Value()
	require.True(t, ok)
	require.Equal(t, Pair[int, string]{First: 1, Second: "x"}, pv)

	// Left invalid.
	l := Zip(Invalid[int](errors.New("a")), Valid("x"))
	require.Equal(t, []string{"a"}, errStrings(l.Errors()))

	// Right invalid.
	r := Zip(Valid(1), Invalid[string](errors.New("b")))
	require.Equal(t, []string{"b"}, errStrings(r.Errors()))

	// Both invalid: self's errors before other's.
	both := Zip(
		InvalidMany[int](errors.New("a1"), errors.New("a2")),
		Invalid[string](errors.New("b")))
	require.Equal(t, []string{"a1", "a2", "b"}, errStrings(both.Errors()))
}

func TestZipWith_CombinesValidSides(t *testing.T) {
	t.Parallel()

	out := ZipWith(Valid(2), Valid(3), func(a, b int) int { return a * b })
	v, _ := out.Value()
	require.Equal(t, 6, v)
}

func TestCollect_AggregatesAllErrors(t *testing.T) {
	t.Parallel()

	all := Collect([]Validation[int]{Valid(1), Valid(2), Valid(3)})
	vs, ok := all.Value()
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, vs)

	mixed := Collect([]Validation[int]{
		Valid(1),
		Invalid[int](errors.New("a")),
		Invalid[int](errors.New("b")),
		Valid(2),
	})
	require.True(t, mixed.IsInvalid())
	require.Equal(t, []string{"a", "b"}, errStrings(mixed.Errors()))
}

func TestCollectResults_TreatsEachErrAsSingleInvalid(t *testing.T) {
	t.Parallel()

	type res struct {
		v   int
		err error
	}
	rs := []res{{1, nil}, {0, errors.New("a")}, {0, errors.New("b")}, {2, nil}}
	seq := func(yield func(int, error) bool) {
		for _, r := range rs {
			if !yield(r.v, r.err) {
				return
			}
		}
	}

	out := CollectResults[int](seq)
	require.True(t, out.IsInvalid())
	require.Equal(t, []string{"a", "b"}, errStrings(out.Errors()))

	allOK := CollectResults[int](func(yield func(int, error) bool) {
		yield(1, nil)
		yield(2, nil)
	})
	vs, ok := allOK.Value()
	require.True(t, ok)
	require.Equal(t, []int{1, 2}, vs)
}

func TestValidation_ToResultVariants(t *testing.T) {
	t.Parallel()

	iv := InvalidMany[int](errors.New("a"), errors.New("b"))

	// Lossy: first error only.
	_, err := iv.ToResult()
	require.EqualError(t, err, "a")

	// Lossless: full list reachable through Unwrap() []error.
	_, err = iv.ToResultAll()
	require.Equal(t, []string{"a", "b"}, errStrings(Flatten(err)))

	v, err := Valid(5).ToResultAll()
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestValidation_Iterators(t *testing.T) {
	t.Parallel()

	// Valid yields the value exactly once.
	var vals []int
	for v := range Valid(7).Seq() {
		vals = append(vals, v)
	}
	require.Equal(t, []int{7}, vals)

	for range Invalid[int](errors.New("a")).Seq() {
		t.Fatal("invalid must not yield a value")
	}

	var msgs []string
	for e := range InvalidMany[int](errors.New("a"), errors.New("b")).ErrSeq() {
		msgs = append(msgs, e.Error())
	}
	require.Equal(t, []string{"a", "b"}, msgs)
}

func TestValidMapAndValidThen_TypeChanging(t *testing.T) {
	t.Parallel()

	s, ok := ValidMap(Valid(42), itoa).Value()
	require.True(t, ok)
	require.Equal(t, "42", s)

	iv := ValidMap(Invalid[int](errors.New("a")), itoa)
	require.True(t, iv.IsInvalid())

	out := ValidThen(Valid(2), func(n int) Validation[string] { return Valid(itoa(n * 2)) })
	s, _ = out.Value()
	require.Equal(t, "4", s)
}

func TestValidation_ErrorsCopyIsDetached(t *testing.T) {
	t.Parallel()

	iv := Invalid[int](errors.New("a"))
	errs := iv.Errors()
	errs[0] = errors.New("mutated")
	require.Equal(t, "a", iv.Errors()[0].Error())
}
