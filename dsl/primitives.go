package dsl

import (
	"fmt"
	"reflect"

	"github.com/reoring/goshape"
)

func String() goshape.Shape   { return goshape.PrimString }
func Number() goshape.Shape   { return goshape.PrimNumber }
func Boolean() goshape.Shape  { return goshape.PrimBoolean }
func BigInt() goshape.Shape   { return goshape.PrimBigInt }
func Null() goshape.Shape     { return goshape.PrimNull }
func Void() goshape.Shape     { return goshape.PrimVoid }
func Any() goshape.Shape      { return goshape.PrimAny }
func Function() goshape.Shape { return goshape.PrimFunction }
func Unknown() goshape.Shape  { return goshape.Unknown{} }
func Never() goshape.Shape    { return goshape.Never{} }

// Undefined is the shape of an absent value.
func Undefined() goshape.Shape { return goshape.Absent{} }

// Lit returns the literal shape of a string, bool or numeric constant. It
// panics for any other value.
func Lit(v any) goshape.Literal {
	switch x := v.(type) {
	case string:
		return goshape.StringLit(x)
	case bool:
		return goshape.BoolLit(x)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return goshape.NumberLit(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return goshape.NumberLit(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return goshape.NumberLit(rv.Float())
	}
	panic(fmt.Sprintf("dsl.Lit: unsupported literal %T", v))
}

// Promise wraps s in an eventual shape.
func Promise(s goshape.Shape) goshape.Shape { return goshape.Eventual{Inner: s} }

// Of returns the shape of the Go type T.
func Of[T any]() goshape.Shape {
	return goshape.ShapeOfType(reflect.TypeOf((*T)(nil)).Elem())
}
