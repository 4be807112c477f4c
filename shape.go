package goshape

import (
	"strconv"
	"strings"
)

// Shape is a structural description of a value's type. The set of variants is
// closed: Primitive, Literal, Schema, Union, Eventual, Callable, Tuple, Never,
// Unknown, Absent and Partial. Consumers switch on the concrete type or Kind.
type Shape interface {
	Kind() Kind
	String() string
	shape()
}

// Primitive is a named primitive tag such as string or number.
type Primitive struct {
	Name string
}

var (
	PrimString   = Primitive{Name: "string"}
	PrimNumber   = Primitive{Name: "number"}
	PrimBoolean  = Primitive{Name: "boolean"}
	PrimBigInt   = Primitive{Name: "bigint"}
	PrimSymbol   = Primitive{Name: "symbol"}
	PrimNull     = Primitive{Name: "null"}
	PrimVoid     = Primitive{Name: "void"}
	PrimAny      = Primitive{Name: "any"}
	PrimObject   = Primitive{Name: "object"}
	PrimFunction = Primitive{Name: "Function"}
	PrimError    = Primitive{Name: "error"}
)

func (Primitive) Kind() Kind       { return KindPrimitive }
func (p Primitive) String() string { return p.Name }
func (Primitive) shape()           {}

// Literal is a single-value shape: a string, number or boolean literal.
type Literal struct {
	value any
}

func StringLit(s string) Literal  { return Literal{value: s} }
func NumberLit(n float64) Literal { return Literal{value: n} }
func BoolLit(b bool) Literal      { return Literal{value: b} }

// Value returns the literal value (string, float64 or bool).
func (l Literal) Value() any { return l.value }

func (Literal) Kind() Kind { return KindLiteral }
func (Literal) shape()     {}

func (l Literal) String() string {
	switch v := l.value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return "unknown"
	}
}

// Union is a normalized union of at least two members. Build it with UnionOf.
type Union struct {
	members []Shape
}

// Members returns a copy of the union members in first-seen order.
func (u Union) Members() []Shape { return append([]Shape(nil), u.members...) }

func (Union) Kind() Kind { return KindUnion }
func (Union) shape()     {}

// UnionOf builds the union of the given shapes. Nested unions are flattened,
// duplicates are removed, never members drop out, any and unknown absorb the
// rest. An empty union is never and a single member is returned as-is.
func UnionOf(members ...Shape) Shape {
	var out []Shape
	var hasUnknown bool
	var add func(s Shape)
	add = func(s Shape) {
		switch t := s.(type) {
		case nil, Never:
		case Union:
			for _, m := range t.members {
				add(m)
			}
		case Unknown:
			hasUnknown = true
		default:
			for _, seen := range out {
				if Equal(seen, s) {
					return
				}
			}
			out = append(out, s)
		}
	}
	for _, m := range members {
		add(m)
	}
	for _, m := range out {
		if p, ok := m.(Primitive); ok && p == PrimAny {
			return PrimAny
		}
	}
	switch {
	case hasUnknown:
		return Unknown{}
	case len(out) == 0:
		return Never{}
	case len(out) == 1:
		return out[0]
	}
	return Union{members: out}
}

// Eventual describes a value that becomes available later. Inner is exactly
// one level of wrapping.
type Eventual struct {
	Inner Shape
}

func (Eventual) Kind() Kind       { return KindEventual }
func (e Eventual) String() string { return "Promise<" + render(e.Inner) + ">" }
func (Eventual) shape()           {}

// Callable describes a function signature.
type Callable struct {
	Params  Tuple
	Returns Shape
}

func (Callable) Kind() Kind { return KindCallable }
func (Callable) shape()     {}

// Never is the uninhabited shape.
type Never struct{}

func (Never) Kind() Kind     { return KindNever }
func (Never) String() string { return "never" }
func (Never) shape()         {}

// Unknown accepts any value.
type Unknown struct{}

func (Unknown) Kind() Kind     { return KindUnknown }
func (Unknown) String() string { return "unknown" }
func (Unknown) shape()         {}

// Absent is the explicit "no value" marker.
type Absent struct{}

func (Absent) Kind() Kind     { return KindAbsent }
func (Absent) String() string { return "undefined" }
func (Absent) shape()         {}

// Partial is the partial form of a shape that has no structural partial
// (an eventual or callable shape). Build it with PartialOf.
type Partial struct {
	Of Shape
}

func (Partial) Kind() Kind       { return KindPartial }
func (p Partial) String() string { return "Partial<" + render(p.Of) + ">" }
func (Partial) shape()           {}

// PartialOf returns the partial form of s. Object schemas get every field
// optional, tuples get every non-rest element optional, unions distribute,
// and shapes without members (primitives, literals, never, unknown, absent)
// are their own partial form.
func PartialOf(s Shape) Shape {
	switch t := s.(type) {
	case Schema:
		return MakePartial(t)
	case Union:
		parts := make([]Shape, len(t.members))
		for i, m := range t.members {
			parts[i] = PartialOf(m)
		}
		return UnionOf(parts...)
	case Tuple:
		elems := t.Elements()
		for i := range elems {
			if !elems[i].Rest {
				elems[i].Optional = true
			}
		}
		return TupleOf(elems...)
	case Eventual, Callable:
		return Partial{Of: s}
	default:
		return s
	}
}

// Equal reports structural equality of two shapes. Union members compare as
// sets; tuple element labels are ignored.
func Equal(a, b Shape) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case Primitive:
		return x.Name == b.(Primitive).Name
	case Literal:
		return x.value == b.(Literal).value
	case Schema:
		return x.Equal(b.(Schema))
	case Union:
		y := b.(Union)
		if len(x.members) != len(y.members) {
			return false
		}
		for _, m := range x.members {
			if !containsShape(y.members, m) {
				return false
			}
		}
		return true
	case Eventual:
		return Equal(x.Inner, b.(Eventual).Inner)
	case Callable:
		y := b.(Callable)
		return x.Params.Equal(y.Params) && Equal(x.Returns, y.Returns)
	case Tuple:
		return x.Equal(b.(Tuple))
	case Partial:
		return Equal(x.Of, b.(Partial).Of)
	default:
		// Never, Unknown and Absent carry no data.
		return true
	}
}

func containsShape(list []Shape, s Shape) bool {
	for _, m := range list {
		if Equal(m, s) {
			return true
		}
	}
	return false
}
