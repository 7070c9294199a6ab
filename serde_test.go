package xgxrail

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorContext_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []ErrorContext{
		Message("free form"),
		Location("main.go", 42),
		Tag("db"),
		Metadata("k", "v"),
		Group().Tag("a").Tag("b").Location("f.go", 7).Message("msg").Metadata("x", "1").Build(),
		Group().Build(), // empty group survives as an empty group
	}
	for _, in := range cases {
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out ErrorContext
		require.NoError(t, json.Unmarshal(data, &out))
		require.True(t, in.Equal(out), "round trip changed %q", in.String())
		require.Equal(t, in.String(), out.String())
	}
}

func TestErrorContext_WireFieldsAreSnakeCase(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Metadata("field", "email"))
	require.NoError(t, err)
	require.JSONEq(t,
		`{"kind":"group","meta":[{"key":"field","value":"email"}]}`,
		string(data))

	var out ErrorContext
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, []MetaPair{{Key: "field", Value: "email"}}, out.Meta())
}

func TestErrorContext_UnknownKindRejected(t *testing.T) {
	t.Parallel()

	var out ErrorContext
	require.Error(t, json.Unmarshal([]byte(`{"kind":"mystery"}`), &out))
}

func TestComposableError_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	in := WithCode(errors.New("core error"), 500).
		WithContext("ctx1").
		WithContext(Group().Tag("db").Metadata("table", "users").Build()).
		WithContext("ctx2")

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out ComposableError
	require.NoError(t, json.Unmarshal(data, &out))

	// Round-trip equality: display form, context order, code, fingerprint.
	require.True(t, in.Equal(&out))
	require.Equal(t, in.Error(), out.Error())
	require.Equal(t, in.Fingerprint(), out.Fingerprint())

	ctxs := out.Contexts()
	require.Len(t, ctxs, 3)
	require.Equal(t, "ctx2", ctxs[0].String())
}

func TestComposableError_JSONCodePresence(t *testing.T) {
	t.Parallel()

	// Code 0, explicitly set, must survive as "set".
	in := WithCode(errors.New("x"), 0)
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out ComposableError
	require.NoError(t, json.Unmarshal(data, &out))
	code, ok := out.Code()
	require.True(t, ok)
	require.Zero(t, code)

	// No code stays no code.
	data, err = json.Marshal(New(errors.New("x")))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out))
	_, ok = out.Code()
	require.False(t, ok)
}

func TestValidation_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	// Valid side.
	v := Valid([]int{1, 2, 3})
	data, err := json.Marshal(v)
	require.NoError(t, err)

	var outV Validation[[]int]
	require.NoError(t, json.Unmarshal(data, &outV))
	got, ok := outV.Value()
	require.True(t, ok)
	require.Equal(t, []int{1, 2, 3}, got)

	// Invalid side preserves error order.
	iv := InvalidMany[[]int](errors.New("a"), errors.New("b"))
	data, err = json.Marshal(iv)
	require.NoError(t, err)

	var outI Validation[[]int]
	require.NoError(t, json.Unmarshal(data, &outI))
	require.True(t, outI.IsInvalid())
	require.Equal(t, []string{"a", "b"}, errStrings(outI.Errors()))
}

func TestValidation_JSONEmptyInvalidRejected(t *testing.T) {
	t.Parallel()

	var out Validation[int]
	require.Error(t, json.Unmarshal([]byte(`{"valid":false,"errors":[]}`), &out))
	require.Error(t, json.Unmarshal([]byte(`{"valid":false}`), &out))
}
