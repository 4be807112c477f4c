package dsl

import (
	"github.com/reoring/goshape"
)

type objectBuilder struct {
	fields   map[goshape.Key]goshape.Field
	required map[goshape.Key]struct{}
	readonly map[goshape.Key]struct{}
}

type fieldStep struct {
	b   *objectBuilder
	key goshape.Key
}

// Object creates a new object builder. Fields are optional by default.
func Object() *objectBuilder {
	return &objectBuilder{
		fields:   map[goshape.Key]goshape.Field{},
		required: map[goshape.Key]struct{}{},
		readonly: map[goshape.Key]struct{}{},
	}
}

// Extend creates an object builder seeded with the fields of s, keeping their
// optionality and readonly flags.
func Extend(s goshape.Schema) *objectBuilder {
	b := Object()
	for _, f := range s.Fields() {
		b.fields[f.Name] = goshape.Field{Name: f.Name, Shape: f.Shape}
		if !f.Optional {
			b.required[f.Name] = struct{}{}
		}
		if f.Readonly {
			b.readonly[f.Name] = struct{}{}
		}
	}
	return b
}

// Field registers a field with its shape. Redeclaring a name replaces the
// earlier declaration and resets its flags.
func (b *objectBuilder) Field(name string, s goshape.Shape) *fieldStep {
	return b.FieldKey(goshape.StringKey(name), s)
}

// FieldKey is Field for number and symbol keys.
func (b *objectBuilder) FieldKey(k goshape.Key, s goshape.Shape) *fieldStep {
	b.fields[k] = goshape.Field{Name: k, Shape: s}
	delete(b.required, k)
	delete(b.readonly, k)
	return &fieldStep{b: b, key: k}
}

// Required marks the field as required and returns the builder.
func (f *fieldStep) Required() *objectBuilder {
	f.b.required[f.key] = struct{}{}
	return f.b
}

// Optional marks the field as optional (default) and returns the builder.
func (f *fieldStep) Optional() *objectBuilder {
	delete(f.b.required, f.key)
	return f.b
}

// Readonly marks the field readonly and returns the builder.
func (f *fieldStep) Readonly() *objectBuilder {
	f.b.readonly[f.key] = struct{}{}
	return f.b
}

func (f *fieldStep) Require(names ...string) *objectBuilder        { return f.b.Require(names...) }
func (f *fieldStep) Field(name string, s goshape.Shape) *fieldStep { return f.b.Field(name, s) }
func (f *fieldStep) FieldKey(k goshape.Key, s goshape.Shape) *fieldStep {
	return f.b.FieldKey(k, s)
}
func (f *fieldStep) Build() (goshape.Schema, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() goshape.Schema      { return f.b.MustBuild() }

// Require marks one or more fields as required. Names that are never declared
// are reported by Build.
func (b *objectBuilder) Require(names ...string) *objectBuilder {
	for _, n := range names {
		b.required[goshape.StringKey(n)] = struct{}{}
	}
	return b
}

// Build validates the builder and returns a Schema.
func (b *objectBuilder) Build() (goshape.Schema, error) {
	var iss goshape.Issues
	for k := range b.required {
		if _, ok := b.fields[k]; !ok {
			iss = goshape.AppendIssues(iss, goshape.Root().Key(k).Issue(goshape.CodeUnknownKey, "required but not declared", "key", k.String()))
		}
	}
	if len(iss) > 0 {
		goshape.SortIssues(iss)
		return goshape.Schema{}, iss
	}
	fs := make([]goshape.Field, 0, len(b.fields))
	for k, f := range b.fields {
		_, req := b.required[k]
		_, ro := b.readonly[k]
		f.Optional = !req
		f.Readonly = ro
		fs = append(fs, f)
	}
	return goshape.NewSchema(fs...), nil
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() goshape.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
