package jsonschema

import (
	"github.com/reoring/goshape"
)

// FromShape converts s to a JSON Schema document.
//
// Optional fields and fields whose shape admits undefined are left out of
// required. Readonly fields are marked readOnly. Literal unions become enum.
// Shapes without a JSON form (callables, eventual values, symbols, void) are
// reported as unsupported_shape issues at their position in s.
func FromShape(s goshape.Shape) (*Schema, error) {
	c := &exporter{}
	out := c.shape(s, goshape.Root())
	if len(c.iss) > 0 {
		goshape.SortIssues(c.iss)
		return nil, c.iss
	}
	out.SchemaURI = Draft
	return out, nil
}

type exporter struct {
	iss goshape.Issues
}

func (c *exporter) unsupported(p goshape.PathRef, s goshape.Shape) *Schema {
	c.iss = goshape.AppendIssues(c.iss, p.Issue(goshape.CodeUnsupportedShape, s.String()))
	return &Schema{}
}

func (c *exporter) shape(s goshape.Shape, p goshape.PathRef) *Schema {
	switch t := s.(type) {
	case goshape.Primitive:
		return c.primitive(t, p)
	case goshape.Literal:
		return &Schema{Const: t.Value()}
	case goshape.Schema:
		return c.object(t, p)
	case goshape.Union:
		return c.union(t, p)
	case goshape.Tuple:
		return c.tuple(t, p)
	case goshape.Unknown:
		return &Schema{}
	case goshape.Never, goshape.Absent:
		return &Schema{Not: &Schema{}}
	}
	return c.unsupported(p, s)
}

func (c *exporter) primitive(t goshape.Primitive, p goshape.PathRef) *Schema {
	switch t {
	case goshape.PrimString:
		return &Schema{Type: TypeList{"string"}}
	case goshape.PrimNumber:
		return &Schema{Type: TypeList{"number"}}
	case goshape.PrimBigInt:
		return &Schema{Type: TypeList{"integer"}}
	case goshape.PrimBoolean:
		return &Schema{Type: TypeList{"boolean"}}
	case goshape.PrimNull:
		return &Schema{Type: TypeList{"null"}}
	case goshape.PrimObject:
		return &Schema{Type: TypeList{"object"}}
	case goshape.PrimAny:
		return &Schema{}
	}
	return c.unsupported(p, t)
}

func (c *exporter) object(s goshape.Schema, p goshape.PathRef) *Schema {
	out := &Schema{Type: TypeList{"object"}, Properties: map[string]*Schema{}}
	for _, f := range s.Fields() {
		fp := p.Key(f.Name)
		if f.Name.Kind() == goshape.KeySymbol {
			c.iss = goshape.AppendIssues(c.iss, fp.Issue(goshape.CodeUnsupportedShape, "symbol key "+f.Name.String()))
			continue
		}
		prop := c.shape(f.Shape, fp)
		prop.ReadOnly = f.Readonly
		out.Properties[f.Name.Text()] = prop
		if !f.Optional && !admitsAbsent(f.Shape) {
			out.Required = append(out.Required, f.Name.Text())
		}
	}
	return out
}

func (c *exporter) union(u goshape.Union, p goshape.PathRef) *Schema {
	members := u.Members()
	var kept []goshape.Shape
	for _, m := range members {
		if _, ok := m.(goshape.Absent); !ok {
			kept = append(kept, m)
		}
	}
	if len(kept) == 1 {
		return c.shape(kept[0], p)
	}
	if enum, ok := literals(kept); ok {
		return &Schema{Enum: enum}
	}
	out := &Schema{}
	for _, m := range kept {
		out.AnyOf = append(out.AnyOf, c.shape(m, p))
	}
	return out
}

func (c *exporter) tuple(t goshape.Tuple, p goshape.PathRef) *Schema {
	out := &Schema{Type: TypeList{"array"}}
	required := 0
	closed := true
	for i, e := range t.Elements() {
		if !closed {
			c.unsupported(p.Index(i), e.Shape)
			continue
		}
		es := c.shape(e.Shape, p.Index(i))
		if e.Rest {
			out.Items = es
			closed = false
			continue
		}
		out.PrefixItems = append(out.PrefixItems, es)
		if !e.Optional {
			required = len(out.PrefixItems)
		}
	}
	if required > 0 {
		out.MinItems = intPtr(required)
	}
	if closed {
		out.MaxItems = intPtr(len(out.PrefixItems))
	}
	return out
}

func literals(ms []goshape.Shape) ([]any, bool) {
	out := make([]any, 0, len(ms))
	for _, m := range ms {
		l, ok := m.(goshape.Literal)
		if !ok {
			return nil, false
		}
		out = append(out, l.Value())
	}
	return out, true
}

func admitsAbsent(s goshape.Shape) bool {
	switch t := s.(type) {
	case goshape.Absent:
		return true
	case goshape.Union:
		for _, m := range t.Members() {
			if _, ok := m.(goshape.Absent); ok {
				return true
			}
		}
	}
	return false
}
