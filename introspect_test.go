package goshape_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func TestUnwrapEventual_SingleLevel(t *testing.T) {
	str := goshape.PrimString
	assert.Equal(t, str, goshape.UnwrapEventual(goshape.Eventual{Inner: str}))
	assert.Equal(t, goshape.PrimNumber, goshape.UnwrapEventual(goshape.PrimNumber))

	double := goshape.Eventual{Inner: goshape.Eventual{Inner: str}}
	got := goshape.UnwrapEventual(double)
	assert.True(t, goshape.Equal(goshape.Eventual{Inner: str}, got), "got %s", got)
	assert.False(t, goshape.Equal(str, got), "must not unwrap more than one level")
	assert.Equal(t, "Promise<string>", got.String())
}

func TestUnwrapEventual_DistributesOverUnion(t *testing.T) {
	u := goshape.UnionOf(goshape.Eventual{Inner: goshape.PrimString}, goshape.PrimNumber)
	got := goshape.UnwrapEventual(u)
	assert.True(t, goshape.Equal(goshape.UnionOf(goshape.PrimString, goshape.PrimNumber), got))
}

func TestParametersOf(t *testing.T) {
	fn := goshape.Callable{
		Params:  goshape.TupleOf(goshape.Element{Label: "a", Shape: goshape.PrimString}, goshape.Element{Label: "b", Shape: goshape.PrimNumber}),
		Returns: goshape.PrimVoid,
	}
	params := goshape.ParametersOf(fn)
	assert.True(t, goshape.Equal(goshape.NewTuple(goshape.PrimString, goshape.PrimNumber), params))
	assert.Equal(t, "[a: string, b: number]", params.String())
	assert.Equal(t, "(a: string, b: number) => void", fn.String())
}

func TestParametersOf_NotCallableIsNever(t *testing.T) {
	for _, s := range []goshape.Shape{goshape.PrimBoolean, goshape.PrimFunction, goshape.Unknown{}, goshape.NewTuple()} {
		assert.Equal(t, goshape.Never{}, goshape.ParametersOf(s), "%s", s)
		assert.Equal(t, goshape.Never{}, goshape.ReturnShapeOf(s), "%s", s)
	}
}

func TestParametersOf_NestedEventualParameter(t *testing.T) {
	title := goshape.NewSchema(field("title", goshape.PrimString, false))
	arg := goshape.NewSchema(field("a", goshape.UnwrapEventual(goshape.Eventual{Inner: title}), false))
	fn := goshape.Callable{Params: goshape.TupleOf(goshape.Element{Label: "a", Shape: arg}), Returns: goshape.PrimVoid}

	params, ok := goshape.ParametersOf(fn).(goshape.Tuple)
	require.True(t, ok)
	assert.Equal(t, "{ a: { title: string } }", goshape.First(params).String())
}

func TestReturnShapeOf(t *testing.T) {
	fn := goshape.Callable{Returns: goshape.PrimBoolean}
	assert.Equal(t, goshape.PrimBoolean, goshape.ReturnShapeOf(fn))
	assert.Equal(t, goshape.PrimVoid, goshape.ReturnShapeOf(goshape.Callable{}))

	returnsFunction := goshape.Callable{Returns: goshape.PrimFunction}
	assert.Equal(t, goshape.PrimFunction, goshape.ReturnShapeOf(returnsFunction))

	u := goshape.UnionOf(fn, goshape.PrimString)
	assert.Equal(t, goshape.PrimBoolean, goshape.ReturnShapeOf(u))
}

func TestSignatureOf_GoFuncs(t *testing.T) {
	cases := []struct {
		name string
		fn   any
		want string
	}{
		{"no args", func() {}, "() => void"},
		{"two args", func(a string, b int) bool { return false }, "(arg0: string, arg1: number) => boolean"},
		{"variadic", func(prefix string, rest ...float64) {}, "(arg0: string, ...arg1: number[]) => void"},
		{"multi results", func() (int, error) { return 0, nil }, "() => [number, error]"},
		{"pointer", func(p *string) {}, "(arg0: string | null) => void"},
		{"eventual", func() <-chan string { return nil }, "() => Promise<string>"},
		{"struct", func(struct {
			Title string `json:"title"`
		}) {
		}, "(arg0: { title: string }) => void"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sig, err := goshape.SignatureOf(tc.fn)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sig.String())
		})
	}
}

func TestSignatureOf_ReturnUnwrapsOnce(t *testing.T) {
	sig := goshape.MustSignatureOf(func() <-chan (<-chan string) { return nil })
	ret := goshape.ReturnShapeOf(sig)
	assert.Equal(t, "Promise<Promise<string>>", ret.String())
	assert.Equal(t, "Promise<string>", goshape.UnwrapEventual(ret).String())
}

func TestSignatureOf_AcceptsReflectType(t *testing.T) {
	sig, err := goshape.SignatureOf(reflect.TypeOf(func(int) {}))
	require.NoError(t, err)
	assert.Equal(t, 1, sig.Params.Len())
}

func TestSignatureOf_RejectsNonFunc(t *testing.T) {
	for _, v := range []any{nil, 42, "f", reflect.TypeOf(0)} {
		_, err := goshape.SignatureOf(v)
		require.Error(t, err)
		assert.True(t, errors.Is(err, goshape.ErrShapeMismatch))
		iss, _ := goshape.AsIssues(err)
		assert.Equal(t, goshape.CodeNotCallable, iss[0].Code)
	}
	assert.Panics(t, func() { goshape.MustSignatureOf(true) })
}
