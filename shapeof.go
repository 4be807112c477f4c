package goshape

import (
	"encoding/json"
	"math/big"
	"reflect"
)

const _maxShapeDepth = 32

var (
	_typeJSONNumber = reflect.TypeOf(json.Number(""))
	_typeBigInt     = reflect.TypeOf((*big.Int)(nil))
	_typeObject     = reflect.TypeOf(Object{})
	_typeError      = reflect.TypeOf((*error)(nil)).Elem()
)

// ShapeOf infers the shape of a concrete value.
//
//   - nil, nil pointers, nil maps and nil slices are null
//   - strings and []byte are string; integers, floats and json.Number are number
//   - *big.Int is bigint; bool is boolean
//   - maps with string or integer keys and structs are object schemas; struct
//     keys follow ResolveStructKey and omitempty fields are optional
//   - an Object (builder snapshot) has its own schema
//   - slices and arrays are tuples of their element shapes
//   - receive channels are Eventual of their element type
//   - funcs are Callable (see SignatureOf)
//   - a pointer, map or slice already being walked is object
//
// Anything else is unknown.
func ShapeOf(v any) Shape {
	if v == nil {
		return PrimNull
	}
	return newWalker().value(reflect.ValueOf(v), 0)
}

// walker tracks what is on the current path so that cyclic values and
// recursive types end in a placeholder instead of being expanded again.
type walker struct {
	types map[reflect.Type]bool
	refs  map[valueRef]bool
}

type valueRef struct {
	ptr uintptr
	n   int
	typ reflect.Type
}

func newWalker() *walker {
	return &walker{types: map[reflect.Type]bool{}, refs: map[valueRef]bool{}}
}

// enter marks ref as being walked. It returns false when ref is already on
// the path.
func (w *walker) enter(rv reflect.Value) (valueRef, bool) {
	ref := valueRef{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		ref.n = rv.Len()
	}
	if w.refs[ref] {
		return ref, false
	}
	w.refs[ref] = true
	return ref, true
}

func (w *walker) value(rv reflect.Value, depth int) Shape {
	if !rv.IsValid() {
		return PrimNull
	}
	if depth > _maxShapeDepth {
		return Unknown{}
	}
	t := rv.Type()
	switch t {
	case _typeJSONNumber:
		return PrimNumber
	case _typeBigInt:
		if rv.IsNil() {
			return PrimNull
		}
		return PrimBigInt
	case _typeObject:
		if rv.CanInterface() {
			return rv.Interface().(Object).Schema()
		}
	}
	switch t.Kind() {
	case reflect.String:
		return PrimString
	case reflect.Bool:
		return PrimBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return PrimNumber
	case reflect.Interface:
		if rv.IsNil() {
			return PrimNull
		}
		return w.value(rv.Elem(), depth+1)
	case reflect.Pointer:
		if rv.IsNil() {
			return PrimNull
		}
		ref, ok := w.enter(rv)
		if !ok {
			return PrimObject
		}
		defer delete(w.refs, ref)
		return w.value(rv.Elem(), depth+1)
	case reflect.Map:
		if rv.IsNil() {
			return PrimNull
		}
		ref, ok := w.enter(rv)
		if !ok {
			return PrimObject
		}
		defer delete(w.refs, ref)
		m := make(map[Key]Field, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k, ok := keyOfValue(iter.Key())
			if !ok {
				return PrimObject
			}
			m[k] = Field{Name: k, Shape: w.value(iter.Value(), depth+1)}
		}
		return fromMap(m)
	case reflect.Struct:
		fs := fieldSet{}
		w.structFields(rv, depth, 0, fs)
		return fromMap(fs.fields())
	case reflect.Slice:
		if rv.IsNil() {
			return PrimNull
		}
		if t.Elem().Kind() == reflect.Uint8 {
			return PrimString
		}
		ref, ok := w.enter(rv)
		if !ok {
			return PrimObject
		}
		defer delete(w.refs, ref)
		return w.elements(rv, depth)
	case reflect.Array:
		return w.elements(rv, depth)
	case reflect.Chan, reflect.Func:
		return w.typ(t, depth)
	}
	return Unknown{}
}

func (w *walker) elements(rv reflect.Value, depth int) Shape {
	shapes := make([]Shape, rv.Len())
	for i := range shapes {
		shapes[i] = w.value(rv.Index(i), depth+1)
	}
	return NewTuple(shapes...)
}

func keyOfValue(k reflect.Value) (Key, bool) {
	switch k.Kind() {
	case reflect.String:
		return StringKey(k.String()), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberKey(float64(k.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return NumberKey(float64(k.Uint())), true
	case reflect.Float32, reflect.Float64:
		return NumberKey(k.Float()), true
	}
	return Key{}, false
}

// fieldSet collects struct fields by key using the encoding/json rules for
// promoted fields: the shallowest embedding depth wins, a tagged field beats
// an untagged one at the same depth, and any other tie drops the key.
type fieldSet map[Key]*fieldCandidate

type fieldCandidate struct {
	field     Field
	embed     int
	tagged    bool
	ambiguous bool
}

func (fs fieldSet) add(f Field, embed int, tagged bool) {
	cur, ok := fs[f.Name]
	switch {
	case !ok, embed < cur.embed, embed == cur.embed && tagged && !cur.tagged:
		fs[f.Name] = &fieldCandidate{field: f, embed: embed, tagged: tagged}
	case embed == cur.embed && tagged == cur.tagged:
		cur.ambiguous = true
	}
}

func (fs fieldSet) fields() map[Key]Field {
	m := make(map[Key]Field, len(fs))
	for k, c := range fs {
		if !c.ambiguous {
			m[k] = c.field
		}
	}
	return m
}

func (w *walker) structFields(rv reflect.Value, depth, embed int, fs fieldSet) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if embeddedInline(sf) {
			fv := rv.Field(i)
			if fv.Kind() == reflect.Pointer {
				if fv.IsNil() {
					continue
				}
				fv = fv.Elem()
			}
			if w.types[fv.Type()] {
				continue
			}
			w.types[fv.Type()] = true
			w.structFields(fv, depth+1, embed+1, fs)
			delete(w.types, fv.Type())
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		k := StringKey(name)
		fs.add(Field{Name: k, Shape: w.value(rv.Field(i), depth+1), Optional: structFieldOptional(sf)}, embed, structKeyTagged(sf))
	}
}

// ShapeOfType infers the shape of values of a Go type. Pointers are
// nullable, slices are rest tuples (T[]), maps are plain objects, interfaces
// other than error are unknown. A recursive reference to a struct type that
// is already being expanded is object.
func ShapeOfType(t reflect.Type) Shape {
	if t == nil {
		return PrimNull
	}
	return newWalker().typ(t, 0)
}

func (w *walker) typ(t reflect.Type, depth int) Shape {
	if depth > _maxShapeDepth {
		return Unknown{}
	}
	switch t {
	case _typeJSONNumber:
		return PrimNumber
	case _typeBigInt:
		return PrimBigInt
	case _typeObject:
		return PrimObject
	case _typeError:
		return PrimError
	}
	switch t.Kind() {
	case reflect.String:
		return PrimString
	case reflect.Bool:
		return PrimBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return PrimNumber
	case reflect.Map:
		return PrimObject
	}
	// every recursive Go type goes through a named type
	if t.Name() != "" {
		if w.types[t] {
			if t.Kind() == reflect.Struct {
				return PrimObject
			}
			return Unknown{}
		}
		w.types[t] = true
		defer delete(w.types, t)
	}
	switch t.Kind() {
	case reflect.Pointer:
		return UnionOf(w.typ(t.Elem(), depth+1), PrimNull)
	case reflect.Struct:
		fs := fieldSet{}
		w.structTypeFields(t, depth, 0, fs)
		return fromMap(fs.fields())
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return PrimString
		}
		return TupleOf(Element{Shape: w.typ(t.Elem(), depth+1), Rest: true})
	case reflect.Array:
		shapes := make([]Shape, t.Len())
		elem := w.typ(t.Elem(), depth+1)
		for i := range shapes {
			shapes[i] = elem
		}
		return NewTuple(shapes...)
	case reflect.Chan:
		if t.ChanDir()&reflect.RecvDir == 0 {
			return Unknown{}
		}
		return Eventual{Inner: w.typ(t.Elem(), depth+1)}
	case reflect.Func:
		return w.signature(t, depth)
	}
	return Unknown{}
}

func (w *walker) structTypeFields(t reflect.Type, depth, embed int, fs fieldSet) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if embeddedInline(sf) {
			et := sf.Type
			if et.Kind() == reflect.Pointer {
				et = et.Elem()
			}
			if w.types[et] {
				continue
			}
			w.types[et] = true
			w.structTypeFields(et, depth+1, embed+1, fs)
			delete(w.types, et)
			continue
		}
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" {
			continue
		}
		k := StringKey(name)
		fs.add(Field{Name: k, Shape: w.typ(sf.Type, depth+1), Optional: structFieldOptional(sf)}, embed, structKeyTagged(sf))
	}
}

func (w *walker) signature(t reflect.Type, depth int) Callable {
	params := make([]Element, t.NumIn())
	for i := range params {
		in := t.In(i)
		if t.IsVariadic() && i == len(params)-1 {
			params[i] = Element{Shape: w.typ(in.Elem(), depth+1), Rest: true}
			continue
		}
		params[i] = Element{Shape: w.typ(in, depth+1)}
	}
	var ret Shape
	switch t.NumOut() {
	case 0:
		ret = PrimVoid
	case 1:
		ret = w.typ(t.Out(0), depth+1)
	default:
		outs := make([]Shape, t.NumOut())
		for i := range outs {
			outs[i] = w.typ(t.Out(i), depth+1)
		}
		ret = NewTuple(outs...)
	}
	return Callable{Params: TupleOf(params...), Returns: ret}
}
