package goshape

import (
	"reflect"
)

// FieldToken identifies a top-level struct field of T using its schema key.
// Obtain it via FieldOf to ensure compile-time linkage to the struct field.
type FieldToken[T any] struct {
	key string
}

// Key returns the schema key associated with this field token.
func (t FieldToken[T]) Key() Key { return StringKey(t.key) }

// FieldOf builds a FieldToken for a top-level field of T.
// The selector must return the address of a top-level field, e.g.:
//
//	FieldOf[Order](func(o *Order) *string { return &o.Status })
//
// This guarantees compile-time errors if the field is renamed/removed.
func FieldOf[T any, F any](selector func(*T) *F) FieldToken[T] {
	if selector == nil {
		panic("goshape.FieldOf: selector must not be nil")
	}
	var zero T
	// Get pointer to selected field within zero value of T
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	if rt.Kind() != reflect.Struct {
		panic("goshape.FieldOf: T must be a struct type")
	}
	for i := 0; i < rt.NumField(); i++ {
		fv := rv.Field(i)
		if !fv.CanAddr() {
			continue
		}
		if fv.Addr().Pointer() == fp {
			sf := rt.Field(i)
			name := ResolveStructKey(sf)
			if !sf.IsExported() || name == "" || name == "-" {
				panic("goshape.FieldOf: selected field is not exported or disabled")
			}
			return FieldToken[T]{key: name}
		}
	}
	panic("goshape.FieldOf: selector must return address of a top-level field of T")
}

// SchemaFor derives the schema of the struct type T (see ShapeOfType).
// It panics when T is not a struct.
func SchemaFor[T any]() Schema {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	s, ok := ShapeOfType(rt).(Schema)
	if !ok {
		panic("goshape.SchemaFor: T must be a struct type, got " + rt.String())
	}
	return s
}

// PickOf is Pick over SchemaFor[T]. Tokens can only name fields of T, so
// there is no error path.
func PickOf[T any](fields ...FieldToken[T]) Schema {
	return MustPick(SchemaFor[T](), tokenKeys(fields)...)
}

// OmitOf is Omit over SchemaFor[T]; surviving fields become optional.
func OmitOf[T any](fields ...FieldToken[T]) Schema {
	return MustOmit(SchemaFor[T](), tokenKeys(fields)...)
}

func tokenKeys[T any](fields []FieldToken[T]) []Key {
	keys := make([]Key, len(fields))
	for i, f := range fields {
		keys[i] = f.Key()
	}
	return keys
}
