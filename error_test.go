package xgxrail

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithContext_AppendOnlyReverseDisplay(t *testing.T) {
	t.Parallel()

	e := New(errors.New("db error")).
		WithContext("ctx1").
		WithContext("ctx2")

	// Display order is reverse of insertion order: newest first.
	ctxs := e.Contexts()
	require.Len(t, ctxs, 2)
	require.Equal(t, "ctx2", ctxs[0].String())
	require.Equal(t, "ctx1", ctxs[1].String())

	// Appending prepends in display order.
	e.WithContext("ctx3")
	ctxs = e.Contexts()
	require.Equal(t, "ctx3", ctxs[0].String())
	require.Equal(t, 3, e.Len())
}

func TestWithContexts_IteratorOrder(t *testing.T) {
	t.Parallel()

	e := New(errors.New("x")).WithContexts(Message("a"), Message("b"))
	require.Equal(t, "b -> a -> x", e.Chain())
}

func TestEmptyStack_DisplayIsCoreForm(t *testing.T) {
	t.Parallel()

	require.Equal(t, "boom", New(errors.New("boom")).Chain())
	require.Equal(t, "boom (code: 500)", WithCode(errors.New("boom"), 500).Chain())
}

func TestClone_Independence(t *testing.T) {
	t.Parallel()

	orig := WithCode(errors.New("boom"), 404).WithContext("ctx1")
	cp := orig.Clone()
	require.True(t, orig.Equal(cp))

	cp.WithContext("only on the clone").SetCode(500)
	require.Equal(t, 1, orig.Len())
	require.Equal(t, 2, cp.Len())
	code, _ := orig.Code()
	require.Equal(t, uint32(404), code)
	require.False(t, orig.Equal(cp))
}

func TestEqual_StructuralOverCoreStackAndCode(t *testing.T) {
	t.Parallel()

	mk := func() *ComposableError {
		return WithCode(errors.New("boom"), 404).WithContext(Tag("db"))
	}
	require.True(t, mk().Equal(mk()))

	// Different code.
	require.False(t, mk().Equal(mk().Clone().SetCode(500)))
	// Different stack.
	require.False(t, mk().Equal(mk().Clone().WithContext("extra")))
	// Code set vs unset.
	require.False(t, New(errors.New("boom")).Equal(WithCode(errors.New("boom"), 0)))
}

func TestMapCore_PreservesStackAndCode(t *testing.T) {
	t.Parallel()

	e := WithCode(errors.New("inner"), 500).WithContext("ctx")
	e.MapCore(func(err error) error { return errors.New("outer: " + err.Error()) })

	require.Equal(t, "outer: inner", e.Core().Error())
	require.Equal(t, 1, e.Len())
	code, ok := e.Code()
	require.True(t, ok)
	require.Equal(t, uint32(500), code)
}

func TestCoreRoundTrip(t *testing.T) {
	t.Parallel()

	core := errors.New("root cause")
	e := New(core).WithContext("ctx")
	rewrapped := New(e.Clone().Core())
	require.True(t, coresEqual(e.Core(), rewrapped.Core()))
}

func TestUnwrap_StdlibTraversal(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	e := New(sentinel).WithContext("ctx")
	require.True(t, errors.Is(e, sentinel))

	var ce *ComposableError
	require.True(t, errors.As(error(e), &ce))
	require.Same(t, e, ce)
}

func TestContextIter_ReverseAndEarlyStop(t *testing.T) {
	t.Parallel()

	e := New(errors.New("x")).WithContext("a").WithContext("b").WithContext("c")

	var seen []string
	for ctx := range e.ContextIter() {
		seen = append(seen, ctx.String())
	}
	require.Equal(t, []string{"c", "b", "a"}, seen)

	// Early break must not keep yielding.
	count := 0
	for range e.ContextIter() {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestContexts_ResultIsDetached(t *testing.T) {
	t.Parallel()

	e := New(errors.New("x")).WithContext("a")
	ctxs := e.Contexts()
	ctxs[0] = Message("mutated")
	require.Equal(t, "a", e.Contexts()[0].String())
}
