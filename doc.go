// Package goshape provides:
//
// - A closed set of structural shapes (primitive, literal, object schema, union,
// eventual, callable, tuple, never, unknown, absent, partial)
// - Schema operators: MakePartial, MakeRequired, Pick, Omit, Record, OptionalRecord
// - A persistent Builder that tracks the accumulated schema of a record as
// fields are set, with Snapshot to extract the record
// - Callable introspection (ParametersOf, ReturnShapeOf, UnwrapEventual,
// SignatureOf) and tuple algebra (First, Concat)
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Every value is immutable; operators and builder steps return fresh values.
// - Contract violations (unknown pick/omit keys, re-setting a readonly key with
// another shape, first of an empty tuple at a declaration boundary) fail fast
// with Issues matching ErrShapeMismatch.
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the declaration DSL under dsl/, YAML declarations under decl/, and the CLI under cmd/goshape.
//
// Typical usage:
//
//	test := goshape.NewSchema(
//	    goshape.Field{Name: goshape.StringKey("name"), Shape: goshape.PrimString},
//	    goshape.Field{Name: goshape.StringKey("value"), Shape: goshape.PrimNumber},
//	)
//	named, err := goshape.Omit(test, goshape.StringKey("value")) // { name?: string }
//
//	b := goshape.NewBuilder().MustSet("title", "awesome").MustSet("price", 404)
//	obj := b.Snapshot() // obj.Schema(): { readonly price: number; readonly title: string }
package goshape
