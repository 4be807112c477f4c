// Package dsl provides a fluent declaration DSL for goshape schemas.
//
// Overview
//   - Builder API: declare object schemas with Object()/Field()/Required()/Readonly()/Build().
//   - Typed build: ObjectOf[T]() declares fields through FieldOf tokens of T, so renaming a
//     struct field breaks the declaration at compile time.
//   - Shape constructors: String()/Number()/Boolean()/BigInt()/Null()/Void()/Any()/Unknown()/
//     Never()/Undefined(), Lit(v), Promise(x), Union(...), Nullable(x), Array(x), Tuple(...), Func().
//
// Entry points
//   - Object(): create an object builder; chain Field/Required/Optional/Readonly then Build/MustBuild.
//   - Extend(s): start an object builder from an existing schema.
//   - ObjectOf[T](): typed builder over the fields of struct T.
//   - Func(): build a callable shape from parameters, an optional rest parameter and a result.
//
// File layout (roles)
//   - object_builder.go: objectBuilder/fieldStep and Build/MustBuild.
//   - object_typed_builder.go: ObjectOf[T] over FieldOf tokens.
//   - primitives.go: primitive and literal constructors.
//   - union.go: Union/Nullable/Optional.
//   - array.go: Array/Tuple and the element builder.
//   - func.go: Func builder.
//
// Fields are optional unless marked with Required() or Require(names...), the same
// default as the rest of the DSL. Declaring a field twice keeps the last declaration.
//
// Example (quickstart)
//
//	package main
//
//	import (
//	    "fmt"
//
//	    "github.com/reoring/goshape"
//	    g "github.com/reoring/goshape/dsl"
//	)
//
//	func main() {
//	    value := g.Object().
//	        Field("price", g.Number()).Required().
//	        Field("order", g.Number()).Required().
//	        MustBuild()
//	    test := g.Object().
//	        Field("name", g.String()).Required().
//	        Field("value", g.Number()).Required().
//	        Field("details", value).
//	        MustBuild()
//
//	    fmt.Println(goshape.MustOmit(test, goshape.StringKey("value")))
//	    // { details?: { order: number; price: number }; name?: string }
//	}
//
// Example (callable shapes)
//
//	fetch := g.Func().
//	    Param("url", g.String()).
//	    Rest("headers", g.String()).
//	    Returns(g.Promise(g.Object().Field("status", g.Number()).Required().MustBuild())).
//	    Build()
//	ret := goshape.UnwrapEventual(goshape.ReturnShapeOf(fetch)) // { status: number }
//	_ = ret
package dsl
