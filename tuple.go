package goshape

import "strings"

// Element is one position of a Tuple.
type Element struct {
	Label    string // optional parameter or element name; not part of identity
	Shape    Shape
	Optional bool
	// Rest marks a trailing variadic position: zero or more values of Shape.
	Rest bool
}

func (e Element) equal(o Element) bool {
	return e.Optional == o.Optional && e.Rest == o.Rest && Equal(e.Shape, o.Shape)
}

// Tuple is a fixed-arity, order-significant sequence of shapes. It is used
// for callable parameter lists and for tuple values. The zero value is the
// empty tuple.
type Tuple struct {
	elems []Element
}

// NewTuple builds a tuple of required, unlabeled elements.
func NewTuple(shapes ...Shape) Tuple {
	elems := make([]Element, len(shapes))
	for i, s := range shapes {
		elems[i] = Element{Shape: s}
	}
	return Tuple{elems: elems}
}

// TupleOf builds a tuple from elements. Elements with a nil shape get unknown.
func TupleOf(elems ...Element) Tuple {
	out := append([]Element(nil), elems...)
	for i := range out {
		if out[i].Shape == nil {
			out[i].Shape = Unknown{}
		}
	}
	return Tuple{elems: out}
}

func (Tuple) Kind() Kind { return KindTuple }
func (Tuple) shape()     {}

func (t Tuple) Len() int { return len(t.elems) }

// At returns the element at position i. It panics when i is out of range.
func (t Tuple) At(i int) Element { return t.elems[i] }

// Elements returns a copy of the elements.
func (t Tuple) Elements() []Element { return append([]Element(nil), t.elems...) }

// Shapes returns the element shapes in order.
func (t Tuple) Shapes() []Shape {
	out := make([]Shape, len(t.elems))
	for i, e := range t.elems {
		out[i] = e.Shape
	}
	return out
}

// Rest returns the tuple without its head. The rest of an empty tuple is
// empty; a leading rest element stays in place since it may match zero or
// more values.
func (t Tuple) Rest() Tuple {
	if len(t.elems) == 0 {
		return t
	}
	if t.elems[0].Rest {
		return t
	}
	return Tuple{elems: append([]Element(nil), t.elems[1:]...)}
}

func (t Tuple) Equal(o Tuple) bool {
	if len(t.elems) != len(o.elems) {
		return false
	}
	for i := range t.elems {
		if !t.elems[i].equal(o.elems[i]) {
			return false
		}
	}
	return true
}

func (t Tuple) String() string {
	parts := make([]string, len(t.elems))
	for i, e := range t.elems {
		parts[i] = renderElement(e, e.Label)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// First returns the head shape of t. An empty tuple yields never. A head that
// is optional or rest may be missing, so its shape is widened with undefined.
func First(t Tuple) Shape {
	if len(t.elems) == 0 {
		return Never{}
	}
	head := t.elems[0]
	if head.Optional || head.Rest {
		return UnionOf(head.Shape, Absent{})
	}
	return head.Shape
}

// FirstE is First for declaration boundaries: an empty tuple is rejected with
// an empty_sequence issue instead of yielding never.
func FirstE(t Tuple) (Shape, error) {
	if len(t.elems) == 0 {
		return nil, Issues{Root().Issue(CodeEmptySequence, "")}
	}
	return First(t), nil
}

// MustFirst is like FirstE but panics on error.
func MustFirst(t Tuple) Shape {
	s, err := FirstE(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Concat returns the elements of a followed by the elements of b.
func Concat(a, b Tuple) Tuple {
	out := make([]Element, 0, len(a.elems)+len(b.elems))
	out = append(out, a.elems...)
	out = append(out, b.elems...)
	return Tuple{elems: out}
}
