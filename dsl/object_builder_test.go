package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestObject_FieldsOptionalByDefault(t *testing.T) {
	s := g.Object().
		Field("name", g.String()).Required().
		Field("value", g.Number()).
		MustBuild()
	assert.Equal(t, "{ name: string; value?: number }", s.String())
}

func TestObject_RequireAndReadonly(t *testing.T) {
	s := g.Object().
		Field("id", g.String()).Readonly().
		Field("price", g.Number()).
		Field("order", g.Number()).
		Require("id", "price").
		MustBuild()
	assert.Equal(t, "{ readonly id: string; order?: number; price: number }", s.String())
}

func TestObject_LastDeclarationWins(t *testing.T) {
	s := g.Object().
		Field("x", g.String()).Required().Readonly().
		Field("x", g.Number()).
		MustBuild()
	f, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, goshape.PrimNumber, f.Shape)
	assert.True(t, f.Optional)
	assert.False(t, f.Readonly)
}

func TestObject_RequireUndeclaredFails(t *testing.T) {
	_, err := g.Object().
		Field("a", g.String()).
		Require("b", "a").
		Build()
	require.Error(t, err)
	iss, ok := goshape.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, goshape.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "/b", iss[0].Path)
	assert.Panics(t, func() { g.Object().Require("zzz").MustBuild() })
}

func TestObject_NonStringKeys(t *testing.T) {
	sym := goshape.Symbol("id")
	s := g.Object().
		FieldKey(goshape.NumberKey(0), g.String()).Required().
		FieldKey(sym, g.Boolean()).
		MustBuild()
	assert.Equal(t, "{ 0: string; [Symbol(id)]?: boolean }", s.String())
}

func TestExtend_KeepsFlags(t *testing.T) {
	base := g.Object().
		Field("id", g.String()).Required().Readonly().
		Field("note", g.String()).
		MustBuild()
	s := g.Extend(base).Field("extra", g.Number()).Required().MustBuild()
	assert.Equal(t, "{ extra: number; readonly id: string; note?: string }", s.String())
	assert.True(t, g.Extend(base).MustBuild().Equal(base))
}

func TestObject_NestedSchemas(t *testing.T) {
	value := g.Object().
		Field("price", g.Number()).Required().
		Field("order", g.Number()).Required().
		MustBuild()
	test := g.Object().
		Field("name", g.String()).Required().
		Field("value", g.Number()).Required().
		Field("details", value).
		MustBuild()
	got := goshape.MustOmit(test, goshape.StringKey("value"))
	assert.Equal(t, "{ details?: { order: number; price: number }; name?: string }", got.String())
}
