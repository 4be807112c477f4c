package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestFunc_Build(t *testing.T) {
	status := g.Object().Field("status", g.Number()).Required().MustBuild()
	fetch := g.Func().
		Param("url", g.String()).
		OptionalParam("timeout", g.Number()).
		Rest("headers", g.String()).
		Returns(g.Promise(status)).
		Build()

	assert.Equal(t, "(url: string, timeout?: number, ...headers: string[]) => Promise<{ status: number }>", fetch.String())
	assert.True(t, goshape.Equal(status, goshape.UnwrapEventual(goshape.ReturnShapeOf(fetch))))
	params := goshape.ParametersOf(fetch).(goshape.Tuple)
	assert.Equal(t, g.String(), goshape.First(params))
	assert.Equal(t, 2, params.Rest().Len())
}

func TestFunc_DefaultsToVoid(t *testing.T) {
	assert.Equal(t, "() => void", g.Func().Build().String())
}

func TestArrayAndTuple(t *testing.T) {
	assert.Equal(t, "[...number[]]", g.Array(g.Number()).String())
	assert.Equal(t, "[number, string]", g.Tuple(g.Number(), g.String()).String())
	tup := g.Elems().Elem("a", g.String()).OptionalElem("b", g.Number()).Rest("c", g.Boolean()).Build()
	assert.Equal(t, "[a: string, b?: number, ...c: boolean[]]", tup.String())
	assert.Equal(t, "[a: string, b?: number]", goshape.Concat(
		g.Elems().Elem("a", g.String()).Build(),
		g.Elems().OptionalElem("b", g.Number()).Build(),
	).String())
}
