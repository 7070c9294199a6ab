package xgxrail

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFrom_NilAndPassThrough(t *testing.T) {
	t.Parallel()

	require.Nil(t, From(nil))

	ce := New(errors.New("x"))
	require.Same(t, ce, From(ce))

	plain := errors.New("plain")
	wrapped := From(plain)
	require.Same(t, plain, wrapped.Core())
}

func TestWrap_AugmentsInPlace(t *testing.T) {
	t.Parallel()

	require.Nil(t, Wrap(nil, "ignored"))

	// Repeated wrapping builds one flat stack, not nested wrappers.
	e := Wrap(errors.New("boom"), "first")
	e2 := Wrap(e, "second")
	require.Same(t, e, e2)
	require.Equal(t, "second -> first -> boom", e2.Chain())
}

func TestCtx_ResultShorthand(t *testing.T) {
	t.Parallel()

	v, err := Ctx(42, nil, "ignored")
	require.NoError(t, err)
	require.Equal(t, 42, v)

	_, err = Ctx(0, errors.New("boom"), "loading rows")
	require.EqualError(t, err, "loading rows -> boom")
}

func TestCtxWith_ThunkOnlyOnFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	_, err := CtxWith(1, nil, func() string { calls++; return "no" })
	require.NoError(t, err)
	require.Zero(t, calls)

	_, err = CtxWith(0, errors.New("boom"), func() string { calls++; return "yes" })
	require.Equal(t, 1, calls)
	require.EqualError(t, err, "yes -> boom")
}

func TestContextFn(t *testing.T) {
	t.Parallel()

	require.NoError(t, ContextFn(nil, func() string { t.Fatal("ran on nil"); return "" }))
	err := ContextFn(errors.New("boom"), func() string { return "ctx" })
	require.EqualError(t, err, "ctx -> boom")
}

func TestAccumulate_FoldsErrors(t *testing.T) {
	t.Parallel()

	var errs error
	errs = Accumulate(errs, nil)
	require.NoError(t, errs)

	a := errors.New("a")
	errs = Accumulate(errs, a)
	require.Same(t, a, errs)

	errs = Accumulate(errs, errors.New("b"))
	require.Equal(t, "a\nb", errs.Error())
}

func TestRail_WrapsAndFinalizes(t *testing.T) {
	t.Parallel()

	v, err := Rail(42, nil)
	require.NoError(t, err)
	require.Equal(t, 42, v)

	_, err = Rail(0, errors.New("boom"))
	_, ok := AsComposable(err)
	require.True(t, ok)
}

func TestErrorf_SupportsWrapping(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	e := Errorf("op failed: %w", cause)
	require.True(t, errors.Is(e, cause))
}

func TestSemanticConstructors(t *testing.T) {
	t.Parallel()

	nf := NotFound("user", 42)
	require.True(t, HasCode(nf, CodeNotFound))
	require.True(t, HasTag(nf, "not_found"))
	id, ok := MetadataOf(nf, "id")
	require.True(t, ok)
	require.Equal(t, "42", id)
	require.False(t, IsTransient(nf))

	inv := InvalidField("email", "bad format")
	require.True(t, HasCode(inv, CodeUnprocessable))
	reason, _ := MetadataOf(inv, "reason")
	require.Equal(t, "bad format", reason)

	to := Timeout("query", 2*time.Second)
	require.True(t, HasCode(to, CodeTimeout))
	require.True(t, IsTransient(to))

	un := Unavailable("billing")
	require.True(t, HasCode(un, CodeUnavailable))
	require.True(t, IsTransient(un))

	in := Internal(errors.New("panic-ish"))
	require.True(t, HasCode(in, CodeInternal))
	require.NotNil(t, Internal(nil).Core())

	rl := RateLimited(time.Second)
	require.True(t, IsTransient(rl))
	d, ok := RetryAfterHintOf(rl)
	require.True(t, ok)
	require.Equal(t, time.Second, d)

	require.True(t, HasCode(Conflict("user"), CodeConflict))
	require.True(t, HasCode(Unauthorized("expired token"), CodeUnauthorized))
	require.True(t, HasCode(Forbidden("delete"), CodeForbidden))
}

func TestCodeNames(t *testing.T) {
	t.Parallel()

	require.Equal(t, "not_found", CodeName(CodeNotFound))
	require.Equal(t, "", CodeName(999))
	require.True(t, IsBuiltinCode(CodeTimeout))
	require.False(t, IsBuiltinCode(999))

	codes := BuiltinCodes()
	require.Contains(t, codes, CodeInternal)
	// Defensive copy: mutation must not leak back.
	codes[0] = 1
	require.NotEqual(t, uint32(1), BuiltinCodes()[0])
}
