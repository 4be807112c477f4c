package dsl

import (
	"github.com/reoring/goshape"
)

// ObjectTyped returns a typed object builder whose fields are named through
// FieldOf tokens of T. A token can only come from a real field of T, so a
// renamed or removed field fails to compile instead of producing a schema
// with a stale key.
func ObjectTyped[T any]() *objectBuilderT[T] { return &objectBuilderT[T]{inner: Object()} }

// ObjectOf is an alias of ObjectTyped for naming consistency with other *Of[T] helpers.
func ObjectOf[T any]() *objectBuilderT[T] { return ObjectTyped[T]() }

type objectBuilderT[T any] struct{ inner *objectBuilder }

// fieldStepT is a typed variant of fieldStep that enables
// chain-friendly APIs like Field(...).Required().
type fieldStepT[T any] struct {
	tb  *objectBuilderT[T]
	key goshape.Key
}

// Field registers a field of T with an explicit shape.
func (tb *objectBuilderT[T]) Field(tok goshape.FieldToken[T], s goshape.Shape) *fieldStepT[T] {
	tb.inner.FieldKey(tok.Key(), s)
	return &fieldStepT[T]{tb: tb, key: tok.Key()}
}

// Inferred registers a field of T with the shape derived from its Go type.
func (tb *objectBuilderT[T]) Inferred(tok goshape.FieldToken[T]) *fieldStepT[T] {
	f, _ := goshape.SchemaFor[T]().Field(tok.Key())
	return tb.Field(tok, f.Shape)
}

func (tb *objectBuilderT[T]) Require(toks ...goshape.FieldToken[T]) *objectBuilderT[T] {
	for _, tok := range toks {
		tb.inner.required[tok.Key()] = struct{}{}
	}
	return tb
}

func (tb *objectBuilderT[T]) Build() (goshape.Schema, error) { return tb.inner.Build() }
func (tb *objectBuilderT[T]) MustBuild() goshape.Schema      { return tb.inner.MustBuild() }

// ----- fieldStepT methods -----

// Required marks the current field as required and returns the typed builder.
func (f *fieldStepT[T]) Required() *objectBuilderT[T] {
	f.tb.inner.required[f.key] = struct{}{}
	return f.tb
}

// Optional marks the current field as optional and returns the typed builder.
func (f *fieldStepT[T]) Optional() *objectBuilderT[T] {
	delete(f.tb.inner.required, f.key)
	return f.tb
}

// Readonly marks the current field readonly and returns the typed builder.
func (f *fieldStepT[T]) Readonly() *objectBuilderT[T] {
	f.tb.inner.readonly[f.key] = struct{}{}
	return f.tb
}

// Forward helpers to keep chaining ergonomics.
func (f *fieldStepT[T]) Field(tok goshape.FieldToken[T], s goshape.Shape) *fieldStepT[T] {
	return f.tb.Field(tok, s)
}
func (f *fieldStepT[T]) Inferred(tok goshape.FieldToken[T]) *fieldStepT[T] { return f.tb.Inferred(tok) }
func (f *fieldStepT[T]) Build() (goshape.Schema, error)                   { return f.tb.Build() }
func (f *fieldStepT[T]) MustBuild() goshape.Schema                        { return f.tb.MustBuild() }
