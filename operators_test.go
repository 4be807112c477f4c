package goshape_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/goshape"
)

func field(name string, s goshape.Shape, optional bool) goshape.Field {
	return goshape.Field{Name: goshape.StringKey(name), Shape: s, Optional: optional}
}

// nameValue is {name: string; value: number}.
func nameValue() goshape.Schema {
	return goshape.NewSchema(
		field("name", goshape.PrimString, false),
		field("value", goshape.PrimNumber, false),
	)
}

func names(s goshape.Schema) []string {
	var out []string
	for _, k := range s.Names() {
		out = append(out, k.Text())
	}
	return out
}

func TestMakePartial_MarksEveryFieldOptional(t *testing.T) {
	p := goshape.MakePartial(nameValue())
	assert.Equal(t, "{ name?: string; value?: number }", p.String())
	assert.Equal(t, []string{"name", "value"}, names(p))
}

func TestMakePartial_Idempotent(t *testing.T) {
	s := goshape.NewSchema(
		field("name", goshape.PrimString, true),
		field("value", goshape.PrimNumber, false),
	)
	once := goshape.MakePartial(s)
	twice := goshape.MakePartial(once)
	assert.True(t, once.Equal(twice))
}

func TestMakeRequired_Idempotent(t *testing.T) {
	s := goshape.NewSchema(
		field("name", goshape.PrimString, true),
		field("value", goshape.PrimNumber, true),
	)
	once := goshape.MakeRequired(s)
	twice := goshape.MakeRequired(once)
	assert.True(t, once.Equal(twice))
	assert.Equal(t, "{ name: string; value: number }", once.String())
}

func TestMakeRequired_KeepsWidenedShape(t *testing.T) {
	widened := goshape.UnionOf(goshape.PrimString, goshape.Absent{})
	s := goshape.NewSchema(field("name", widened, true))
	r := goshape.MakeRequired(s)
	f, ok := r.Lookup("name")
	require.True(t, ok)
	assert.False(t, f.Optional)
	assert.True(t, goshape.Equal(widened, f.Shape))
}

func TestPick_PreservesOptionality(t *testing.T) {
	s := goshape.NewSchema(
		field("name", goshape.PrimString, true),
		field("value", goshape.PrimNumber, false),
	)
	got, err := goshape.Pick(s, goshape.StringKey("value"))
	require.NoError(t, err)
	want := goshape.NewSchema(field("value", goshape.PrimNumber, false))
	assert.True(t, want.Equal(got), "got %s", got)

	got, err = goshape.Pick(s, goshape.Keys("name", "value")...)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestOmit_ForcesOptional(t *testing.T) {
	got, err := goshape.Omit(nameValue(), goshape.StringKey("value"))
	require.NoError(t, err)
	want := goshape.NewSchema(field("name", goshape.PrimString, true))
	assert.True(t, want.Equal(got), "got %s", got)
	assert.Equal(t, "{ name?: string }", got.String())
}

func TestOmit_NothingStillForcesOptional(t *testing.T) {
	got, err := goshape.Omit(nameValue())
	require.NoError(t, err)
	for _, f := range goshape.FieldsOf(got) {
		assert.True(t, f.Optional, "field %s", f.Name)
	}
	assert.Equal(t, 2, got.Len())
}

func TestPickOmit_Complementary(t *testing.T) {
	s := goshape.NewSchema(
		field("a", goshape.PrimString, false),
		field("b", goshape.PrimNumber, true),
		field("c", goshape.PrimBoolean, false),
		field("d", goshape.Unknown{}, true),
	)
	all := s.Names()
	// every subset of the four keys
	for mask := 0; mask < 1<<len(all); mask++ {
		var sel []goshape.Key
		for i, k := range all {
			if mask&(1<<i) != 0 {
				sel = append(sel, k)
			}
		}
		picked := goshape.MustPick(s, sel...)
		omitted := goshape.MustOmit(s, sel...)
		assert.Equal(t, s.Len(), picked.Len()+omitted.Len(), "mask %b", mask)
		for _, k := range all {
			inPick := goshape.HasField(picked, k)
			inOmit := goshape.HasField(omitted, k)
			assert.True(t, inPick != inOmit, "mask %b key %s", mask, k)
		}
	}
}

func TestPick_UnknownKeyFailsFast(t *testing.T) {
	_, err := goshape.Pick(nameValue(), goshape.StringKey("name"), goshape.StringKey("nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, goshape.ErrShapeMismatch))
	iss, ok := goshape.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, goshape.CodeUnknownKey, iss[0].Code)
	assert.Equal(t, "/nope", iss[0].Path)
	assert.Equal(t, "key not present in schema: nope", iss[0].Message)
}

func TestOmit_UnknownKeyFailsFast(t *testing.T) {
	_, err := goshape.Omit(nameValue(), goshape.NumberKey(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, goshape.ErrShapeMismatch)
	assert.Panics(t, func() { goshape.MustOmit(nameValue(), goshape.StringKey("zzz")) })
	assert.Panics(t, func() { goshape.MustPick(nameValue(), goshape.StringKey("zzz")) })
}

func TestOperators_DoNotMutateInput(t *testing.T) {
	s := nameValue()
	before := s.String()
	_ = goshape.MakePartial(s)
	_ = goshape.MakeRequired(goshape.MakePartial(s))
	_, _ = goshape.Pick(s, goshape.StringKey("name"))
	_, _ = goshape.Omit(s, goshape.StringKey("name"))
	assert.Equal(t, before, s.String())
	assert.True(t, s.Equal(nameValue()))
}

func TestRecord_RequiredFieldsOfValueShape(t *testing.T) {
	r := goshape.Record(goshape.Keys("x", "y"), goshape.PrimNumber)
	require.Equal(t, 2, r.Len())
	for _, f := range goshape.FieldsOf(r) {
		assert.False(t, f.Optional)
		assert.True(t, goshape.Equal(goshape.PrimNumber, f.Shape))
	}
	assert.Equal(t, "{ x: number; y: number }", r.String())
}

func TestRecord_DuplicateKeysCollapse(t *testing.T) {
	r := goshape.Record(goshape.Keys("apple", "apple", "banana"), goshape.PrimString)
	assert.Equal(t, 2, r.Len())
}

func TestRecord_NestedValue(t *testing.T) {
	value := goshape.NewSchema(
		field("price", goshape.PrimNumber, false),
		field("order", goshape.PrimNumber, false),
	)
	r := goshape.Record(goshape.Keys("orange", "banana", "apple"), value)
	assert.Equal(t, []string{"apple", "banana", "orange"}, names(r))
	f, ok := r.Lookup("apple")
	require.True(t, ok)
	assert.True(t, goshape.Equal(value, f.Shape))
}

func TestOptionalRecord_ThreeWayAcceptance(t *testing.T) {
	value := goshape.NewSchema(
		field("price", goshape.PrimNumber, false),
		field("order", goshape.PrimNumber, false),
	)
	r := goshape.OptionalRecord(goshape.Keys("x", "y"), value)
	require.Equal(t, 2, r.Len())
	for _, f := range goshape.FieldsOf(r) {
		assert.True(t, f.Optional)
		u, ok := f.Shape.(goshape.Union)
		require.True(t, ok, "want union, got %s", f.Shape)
		members := u.Members()
		require.Len(t, members, 3)
		assert.True(t, goshape.Equal(value, members[0]))
		assert.True(t, goshape.Equal(goshape.MakePartial(value), members[1]))
		assert.True(t, goshape.Equal(goshape.Absent{}, members[2]))
	}
}

func TestOptionalRecord_PrimitivePartialIsItself(t *testing.T) {
	r := goshape.OptionalRecord(goshape.Keys("a"), goshape.PrimString)
	assert.Equal(t, "{ a?: string | undefined }", r.String())
}

func TestOptionalRecord_DistributesOverUnionValue(t *testing.T) {
	value := goshape.NewSchema(
		field("price", goshape.PrimNumber, false),
		field("order", goshape.PrimNumber, false),
	)
	values := goshape.UnionOf(goshape.StringLit("awesome"), goshape.StringLit("not so awesome"), value)
	r := goshape.OptionalRecord(goshape.Keys("apple"), values)
	f, _ := r.Lookup("apple")
	u, ok := f.Shape.(goshape.Union)
	require.True(t, ok)
	assert.Len(t, u.Members(), 5)
	assert.Equal(t,
		"'awesome' | 'not so awesome' | { order: number; price: number } | { order?: number; price?: number } | undefined",
		f.Shape.String())
}
