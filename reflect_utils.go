package goshape

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external key used by ShapeOf, SchemaFor and FieldOf.
// Priority: goshape:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("goshape"); gt != "" {
		if gt == "-" {
			return "-"
		}
		for _, p := range strings.Split(gt, ",") {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			if jt[:i] != "" {
				return jt[:i]
			}
			return sf.Name
		}
		return jt
	}
	return sf.Name
}

// structFieldOptional reports whether a struct field maps to an optional
// schema field: json omitempty/omitzero or goshape:"optional".
func structFieldOptional(sf reflect.StructField) bool {
	if gt := sf.Tag.Get("goshape"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			if strings.TrimSpace(p) == "optional" {
				return true
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		parts := strings.Split(jt, ",")
		for _, opt := range parts[1:] {
			switch strings.TrimSpace(opt) {
			case "omitempty", "omitzero":
				return true
			}
		}
	}
	return false
}

// embeddedInline reports whether an anonymous struct field should have its
// fields promoted into the parent, as encoding/json does.
func embeddedInline(sf reflect.StructField) bool {
	if !sf.Anonymous {
		return false
	}
	if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" {
		return false
	}
	t := sf.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// structKeyTagged reports whether the key of sf comes from a tag rather than
// the Go field name.
func structKeyTagged(sf reflect.StructField) bool {
	if gt := sf.Tag.Get("goshape"); gt != "" {
		for _, p := range strings.Split(gt, ",") {
			if strings.HasPrefix(strings.TrimSpace(p), "name=") {
				return true
			}
		}
	}
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	return name != "" && name != "-"
}
