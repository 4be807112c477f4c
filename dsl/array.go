package dsl

import (
	"github.com/reoring/goshape"
)

// Array is a variadic sequence of elem, i.e. [...elem[]].
func Array(elem goshape.Shape) goshape.Tuple {
	return goshape.TupleOf(goshape.Element{Shape: elem, Rest: true})
}

// Tuple is a fixed sequence of the given shapes.
func Tuple(shapes ...goshape.Shape) goshape.Tuple { return goshape.NewTuple(shapes...) }

// TupleBuilder declares tuples with labels, optional and rest positions.
type TupleBuilder struct {
	elems []goshape.Element
}

// Elems starts an empty tuple builder.
func Elems() *TupleBuilder { return &TupleBuilder{} }

func (b *TupleBuilder) add(e goshape.Element) *TupleBuilder {
	b.elems = append(b.elems, e)
	return b
}

func (b *TupleBuilder) Elem(label string, s goshape.Shape) *TupleBuilder {
	return b.add(goshape.Element{Label: label, Shape: s})
}

func (b *TupleBuilder) OptionalElem(label string, s goshape.Shape) *TupleBuilder {
	return b.add(goshape.Element{Label: label, Shape: s, Optional: true})
}

// Rest appends a variadic position; s is the element shape.
func (b *TupleBuilder) Rest(label string, s goshape.Shape) *TupleBuilder {
	return b.add(goshape.Element{Label: label, Shape: s, Rest: true})
}

func (b *TupleBuilder) Build() goshape.Tuple { return goshape.TupleOf(b.elems...) }
