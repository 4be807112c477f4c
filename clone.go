package goshape

import (
	"math/big"
	"reflect"
)

// cloneValue deep-copies the maps, slices, arrays and pointers reachable from
// v through exported fields. Unexported struct fields, channels and funcs are
// shared. Objects are immutable and are not copied. Aliasing inside v is
// preserved, so cyclic values are copied with the same cycles.
func cloneValue(v any) any {
	if v == nil {
		return nil
	}
	c := cloner{seen: map[valueRef]reflect.Value{}}
	return c.clone(reflect.ValueOf(v)).Interface()
}

type cloner struct {
	seen map[valueRef]reflect.Value
}

func (c cloner) ref(rv reflect.Value) valueRef {
	ref := valueRef{ptr: rv.Pointer(), typ: rv.Type()}
	if rv.Kind() == reflect.Slice {
		ref.n = rv.Len()
	}
	return ref
}

func (c cloner) clone(rv reflect.Value) reflect.Value {
	t := rv.Type()
	switch t.Kind() {
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(t).Elem()
		out.Set(c.clone(rv.Elem()))
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		if t == _typeBigInt {
			return reflect.ValueOf(new(big.Int).Set(rv.Interface().(*big.Int)))
		}
		ref := c.ref(rv)
		if out, ok := c.seen[ref]; ok {
			return out
		}
		out := reflect.New(t.Elem())
		c.seen[ref] = out
		out.Elem().Set(c.clone(rv.Elem()))
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		ref := c.ref(rv)
		if out, ok := c.seen[ref]; ok {
			return out
		}
		out := reflect.MakeMapWithSize(t, rv.Len())
		c.seen[ref] = out
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), c.clone(iter.Value()))
		}
		return out
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		ref := c.ref(rv)
		if out, ok := c.seen[ref]; ok {
			return out
		}
		out := reflect.MakeSlice(t, rv.Len(), rv.Len())
		c.seen[ref] = out
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(c.clone(rv.Index(i)))
		}
		return out
	case reflect.Array:
		out := reflect.New(t).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(c.clone(rv.Index(i)))
		}
		return out
	case reflect.Struct:
		if t == _typeObject {
			return rv
		}
		out := reflect.New(t).Elem()
		out.Set(rv)
		for i := 0; i < t.NumField(); i++ {
			if f := out.Field(i); f.CanSet() {
				f.Set(c.clone(rv.Field(i)))
			}
		}
		return out
	}
	return rv
}
