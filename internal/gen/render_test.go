package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

// flat collapses whitespace so assertions do not depend on gofmt alignment.
func flat(b []byte) string { return strings.Join(strings.Fields(string(b)), " ") }

func field(name string, s goshape.Shape, optional bool) goshape.Field {
	return goshape.Field{Name: goshape.StringKey(name), Shape: s, Optional: optional}
}

func TestRenderFile_Minimal(t *testing.T) {
	out, err := RenderFile(File{Package: "foo", Types: []TypeDef{{Name: "User"}}})
	require.NoError(t, err)
	assert.Contains(t, flat(out), "// Code generated by goshape. DO NOT EDIT. package foo type User struct { }")
}

func TestRenderFile_ObjectFields(t *testing.T) {
	value := goshape.NewSchema(field("price", goshape.PrimNumber, false), field("order", goshape.PrimNumber, false))
	test := goshape.NewSchema(
		field("name", goshape.StringLit("awesome"), false),
		field("user_id", goshape.UnionOf(goshape.PrimString, goshape.PrimNull), false),
		field("details", value, true),
		field("tags", goshape.TupleOf(goshape.Element{Shape: goshape.PrimString, Rest: true}), true),
		field("size", goshape.PrimBigInt, false),
		goshape.Field{Name: goshape.StringKey("inStock"), Shape: goshape.PrimBoolean, Readonly: true},
		goshape.Field{Name: goshape.NumberKey(2), Shape: goshape.PrimAny},
	)
	out, err := RenderFile(File{Package: "models", Types: []TypeDef{{Name: "Test", Schema: test}}})
	require.NoError(t, err)
	got := flat(out)
	assert.Contains(t, got, `"math/big"`)
	assert.Contains(t, got, "Details *TestDetails `json:\"details,omitempty\"`")
	assert.Contains(t, got, "// InStock is readonly. InStock bool `json:\"inStock\"`")
	assert.Contains(t, got, "Name string `json:\"name\"`")
	assert.Contains(t, got, "Size *big.Int `json:\"size\"`")
	assert.Contains(t, got, "Tags []string `json:\"tags,omitempty\"`")
	assert.Contains(t, got, "UserID *string `json:\"user_id\"`")
	assert.Contains(t, got, "Key2 any `json:\"2\"`")
	assert.Contains(t, got, "type TestDetails struct { Order float64 `json:\"order\"` Price float64 `json:\"price\"` }")
}

func TestRenderFile_NestedNameCollision(t *testing.T) {
	inner := goshape.NewSchema(field("x", goshape.PrimNumber, false))
	a := goshape.NewSchema(field("b", inner, false))
	out, err := RenderFile(File{Package: "p", Types: []TypeDef{{Name: "A", Schema: a}, {Name: "AB", Schema: inner}}})
	require.NoError(t, err)
	got := flat(out)
	assert.Contains(t, got, "B AB2 `json:\"b\"`")
	assert.Contains(t, got, "type AB2 struct")
	assert.Contains(t, got, "type AB struct")
}

func TestRenderFile_CallablesAndSequences(t *testing.T) {
	fn := goshape.Callable{
		Params: goshape.TupleOf(
			goshape.Element{Label: "a", Shape: goshape.PrimString},
			goshape.Element{Label: "rest", Shape: goshape.PrimNumber, Rest: true},
		),
		Returns: goshape.Eventual{Inner: goshape.PrimBoolean},
	}
	s := goshape.NewSchema(
		field("cb", fn, false),
		field("done", goshape.Callable{}, false),
		field("pair", goshape.NewTuple(goshape.PrimNumber, goshape.PrimNumber), false),
		field("mixed", goshape.NewTuple(goshape.PrimNumber, goshape.PrimString), false),
		field("kind", goshape.UnionOf(goshape.StringLit("a"), goshape.StringLit("b")), false),
		field("either", goshape.UnionOf(goshape.PrimString, goshape.PrimNumber), false),
	)
	out, err := RenderFile(File{Package: "p", Types: []TypeDef{{Name: "S", Schema: s}}})
	require.NoError(t, err)
	got := flat(out)
	assert.Contains(t, got, "Cb func(string, ...float64) <-chan bool")
	assert.Contains(t, got, "Done func() `json")
	assert.Contains(t, got, "Pair [2]float64")
	assert.Contains(t, got, "Mixed [2]any")
	assert.Contains(t, got, "Kind string")
	assert.Contains(t, got, "Either any")
}

func TestRenderFile_Errors(t *testing.T) {
	_, err := RenderFile(File{Types: []TypeDef{{Name: "A"}}})
	assert.Error(t, err)
	_, err = RenderFile(File{Package: "p", Types: []TypeDef{{Name: "1A"}}})
	assert.Error(t, err)
}

func TestGoName(t *testing.T) {
	cases := map[goshape.Key]string{
		goshape.StringKey("in_stock"): "InStock",
		goshape.StringKey("user id"):  "UserID",
		goshape.StringKey("api-url"):  "APIURL",
		goshape.StringKey("9lives"):   "F9lives",
		goshape.StringKey("!!"):       "Field",
		goshape.NumberKey(-1.5):       "KeyNeg1_5",
	}
	for k, want := range cases {
		assert.Equal(t, want, goName(k), k.String())
	}
}
