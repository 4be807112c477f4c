package goshape

import (
	"fmt"
	"reflect"
)

// ParametersOf returns the parameter tuple of a callable shape. Shapes that
// are not callable yield never; unions distribute over their members.
func ParametersOf(s Shape) Shape {
	switch t := s.(type) {
	case Callable:
		return t.Params
	case Union:
		return distribute(t, ParametersOf)
	default:
		return Never{}
	}
}

// ReturnShapeOf returns the return shape of a callable shape. Shapes that
// are not callable yield never; unions distribute over their members.
func ReturnShapeOf(s Shape) Shape {
	switch t := s.(type) {
	case Callable:
		if t.Returns == nil {
			return PrimVoid
		}
		return t.Returns
	case Union:
		return distribute(t, ReturnShapeOf)
	default:
		return Never{}
	}
}

// UnwrapEventual removes exactly one level of Eventual wrapping. Other
// shapes are returned unchanged; unions distribute over their members.
// Eventual(Eventual(x)) unwraps to Eventual(x), not x.
func UnwrapEventual(s Shape) Shape {
	switch t := s.(type) {
	case Eventual:
		return t.Inner
	case Union:
		return distribute(t, UnwrapEventual)
	default:
		return s
	}
}

func distribute(u Union, fn func(Shape) Shape) Shape {
	out := make([]Shape, len(u.members))
	for i, m := range u.members {
		out[i] = fn(m)
	}
	return UnionOf(out...)
}

// SignatureOf describes a Go function value or a reflect.Type of kind func.
// Variadic parameters become a trailing rest element. A function without
// results returns void, one result returns its shape, several results
// return a tuple. Anything that is not a func is rejected with a
// not_callable issue.
func SignatureOf(fn any) (Callable, error) {
	t, ok := fn.(reflect.Type)
	if !ok {
		t = reflect.TypeOf(fn)
	}
	if t == nil || t.Kind() != reflect.Func {
		hint := fmt.Sprintf("got %T", fn)
		if t != nil {
			hint = "got " + t.String()
		}
		return Callable{}, Issues{Root().Issue(CodeNotCallable, hint)}
	}
	return newWalker().signature(t, 0), nil
}

// MustSignatureOf is like SignatureOf but panics on error.
func MustSignatureOf(fn any) Callable {
	c, err := SignatureOf(fn)
	if err != nil {
		panic(err)
	}
	return c
}
