package goshape

import (
	"sort"
	"strings"
)

// Field is a named, shaped entry of a Schema.
type Field struct {
	Name     Key
	Shape    Shape
	Optional bool
	// Readonly marks fields that were fixed by a Builder; their shape may not
	// change in later builder steps.
	Readonly bool
}

// Equal reports structural equality of two fields.
func (f Field) Equal(o Field) bool {
	return f.Name == o.Name && f.Optional == o.Optional && f.Readonly == o.Readonly && Equal(f.Shape, o.Shape)
}

func (f Field) String() string {
	b := &strings.Builder{}
	if f.Readonly {
		b.WriteString("readonly ")
	}
	b.WriteString(f.Name.String())
	if f.Optional {
		b.WriteByte('?')
	}
	b.WriteString(": ")
	b.WriteString(render(f.Shape))
	return b.String()
}

// Schema is an immutable set of uniquely named fields. The zero value is the
// empty schema. A Schema is itself a Shape, so schemas nest.
type Schema struct {
	fields map[Key]Field
	keys   []Key // sorted
}

// NewSchema builds a schema from fields. When two fields share a name the
// later one wins. Fields with a nil shape get unknown.
func NewSchema(fields ...Field) Schema {
	m := make(map[Key]Field, len(fields))
	for _, f := range fields {
		if f.Shape == nil {
			f.Shape = Unknown{}
		}
		m[f.Name] = f
	}
	return fromMap(m)
}

// fromMap takes ownership of m.
func fromMap(m map[Key]Field) Schema {
	keys := make([]Key, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })
	return Schema{fields: m, keys: keys}
}

func (Schema) Kind() Kind { return KindObject }
func (Schema) shape()     {}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.keys) }

// Field returns the field named k.
func (s Schema) Field(k Key) (Field, bool) {
	f, ok := s.fields[k]
	return f, ok
}

// Lookup is Field for string keys.
func (s Schema) Lookup(name string) (Field, bool) { return s.Field(StringKey(name)) }

// Names returns the field names in deterministic order.
func (s Schema) Names() []Key { return append([]Key(nil), s.keys...) }

// Fields returns a copy of the fields in deterministic order.
func (s Schema) Fields() []Field {
	out := make([]Field, len(s.keys))
	for i, k := range s.keys {
		out[i] = s.fields[k]
	}
	return out
}

// Equal reports whether both schemas hold the same field set.
func (s Schema) Equal(o Schema) bool {
	if len(s.keys) != len(o.keys) {
		return false
	}
	for k, f := range s.fields {
		g, ok := o.fields[k]
		if !ok || !f.Equal(g) {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	if len(s.keys) == 0 {
		return "{}"
	}
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = s.fields[k].String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// with returns a copy of s with f added or replaced.
func (s Schema) with(f Field) Schema {
	m := make(map[Key]Field, len(s.fields)+1)
	for k, v := range s.fields {
		m[k] = v
	}
	m[f.Name] = f
	return fromMap(m)
}

// mapFields returns a copy of s with fn applied to every field.
func (s Schema) mapFields(fn func(Field) Field) Schema {
	m := make(map[Key]Field, len(s.fields))
	for k, v := range s.fields {
		m[k] = fn(v)
	}
	return Schema{fields: m, keys: append([]Key(nil), s.keys...)}
}

// HasField reports whether s has a field named name.
func HasField(s Schema, name Key) bool {
	_, ok := s.fields[name]
	return ok
}

// FieldsOf returns the fields of s in deterministic order.
func FieldsOf(s Schema) []Field { return s.Fields() }
