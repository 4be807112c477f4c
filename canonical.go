package goshape

import (
	"strconv"

	"github.com/reoring/goshape/internal/ir"
)

func toIR(s Shape) *ir.Node {
	if s == nil {
		s = Unknown{}
	}
	n := &ir.Node{Kind: s.Kind().String()}
	switch t := s.(type) {
	case Primitive:
		n.Name = t.Name
	case Literal:
		switch v := t.value.(type) {
		case string:
			n.Name = "s:" + v
		case float64:
			n.Name = "n:" + strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			n.Name = "b:" + strconv.FormatBool(v)
		}
	case Schema:
		n.Fields = make([]ir.Field, 0, t.Len())
		for _, f := range t.Fields() {
			n.Fields = append(n.Fields, ir.Field{
				Key:      ir.Key{Kind: f.Name.Kind().String(), Text: f.Name.Text(), Symbol: f.Name.symbolID()},
				Optional: f.Optional,
				Readonly: f.Readonly,
				Shape:    toIR(f.Shape),
			})
		}
	case Union:
		n.Members = make([]*ir.Node, len(t.members))
		for i, m := range t.members {
			n.Members[i] = toIR(m)
		}
	case Eventual:
		n.Inner = toIR(t.Inner)
	case Partial:
		n.Inner = toIR(t.Of)
	case Callable:
		n.Elems = elemsIR(t.Params)
		n.Inner = toIR(ReturnShapeOf(t))
	case Tuple:
		n.Elems = elemsIR(t)
	}
	return n
}

func elemsIR(t Tuple) []ir.Elem {
	out := make([]ir.Elem, len(t.elems))
	for i, e := range t.elems {
		out[i] = ir.Elem{Optional: e.Optional, Rest: e.Rest, Shape: toIR(e.Shape)}
	}
	return out
}

func canonicalNode(s Shape) (*ir.Node, error) {
	n := toIR(s)
	if err := ir.Canonicalize(n); err != nil {
		return nil, err
	}
	return n, nil
}

// Canonical returns the canonical JSON form of s. Structurally equal shapes
// produce identical output within a process (symbol keys carry a
// process-local identity).
func Canonical(s Shape) ([]byte, error) {
	n, err := canonicalNode(s)
	if err != nil {
		return nil, err
	}
	return ir.EncodeIndent(n)
}

// Fingerprint returns a compact string that is equal for structurally equal
// shapes.
func Fingerprint(s Shape) (string, error) {
	n, err := canonicalNode(s)
	if err != nil {
		return "", err
	}
	b, err := ir.Encode(n)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
