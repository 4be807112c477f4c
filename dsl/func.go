package dsl

import (
	"github.com/reoring/goshape"
)

// FuncBuilder declares a callable shape.
type FuncBuilder struct {
	params  TupleBuilder
	returns goshape.Shape
}

// Func starts a callable declaration with no parameters returning void.
func Func() *FuncBuilder { return &FuncBuilder{returns: goshape.PrimVoid} }

func (f *FuncBuilder) Param(label string, s goshape.Shape) *FuncBuilder {
	f.params.Elem(label, s)
	return f
}

func (f *FuncBuilder) OptionalParam(label string, s goshape.Shape) *FuncBuilder {
	f.params.OptionalElem(label, s)
	return f
}

// Rest adds a variadic parameter whose elements have shape s.
func (f *FuncBuilder) Rest(label string, s goshape.Shape) *FuncBuilder {
	f.params.Rest(label, s)
	return f
}

func (f *FuncBuilder) Returns(s goshape.Shape) *FuncBuilder {
	f.returns = s
	return f
}

func (f *FuncBuilder) Build() goshape.Callable {
	return goshape.Callable{Params: f.params.Build(), Returns: f.returns}
}
