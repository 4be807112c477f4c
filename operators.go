package goshape

// MakePartial returns a copy of s with every field optional.
func MakePartial(s Schema) Schema {
	return s.mapFields(func(f Field) Field {
		f.Optional = true
		return f
	})
}

// MakeRequired returns a copy of s with every field required. Shapes are kept
// as they are; a shape widened earlier is not narrowed back.
func MakeRequired(s Schema) Schema {
	return s.mapFields(func(f Field) Field {
		f.Optional = false
		return f
	})
}

// Pick returns the fields of s named by keys, with their shape and
// optionality preserved. Every key must name a field of s; otherwise Pick
// returns an Issues error that matches ErrShapeMismatch.
func Pick(s Schema, keys ...Key) (Schema, error) {
	if err := checkKeys(s, keys); err != nil {
		return Schema{}, err
	}
	m := make(map[Key]Field, len(keys))
	for _, k := range keys {
		m[k] = s.fields[k]
	}
	return fromMap(m), nil
}

// Omit returns the fields of s not named by keys. Every surviving field is
// made optional, unlike Pick which keeps optionality as it is. Every key must
// name a field of s.
func Omit(s Schema, keys ...Key) (Schema, error) {
	if err := checkKeys(s, keys); err != nil {
		return Schema{}, err
	}
	drop := make(map[Key]struct{}, len(keys))
	for _, k := range keys {
		drop[k] = struct{}{}
	}
	m := make(map[Key]Field, len(s.fields))
	for k, f := range s.fields {
		if _, ok := drop[k]; ok {
			continue
		}
		f.Optional = true
		m[k] = f
	}
	return fromMap(m), nil
}

// MustPick is like Pick but panics on error.
func MustPick(s Schema, keys ...Key) Schema {
	out, err := Pick(s, keys...)
	if err != nil {
		panic(err)
	}
	return out
}

// MustOmit is like Omit but panics on error.
func MustOmit(s Schema, keys ...Key) Schema {
	out, err := Omit(s, keys...)
	if err != nil {
		panic(err)
	}
	return out
}

func checkKeys(s Schema, keys []Key) error {
	var iss Issues
	for _, k := range keys {
		if !HasField(s, k) {
			iss = AppendIssues(iss, Root().Key(k).Issue(CodeUnknownKey, "have "+s.String(), "key", k.String()))
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Record returns a schema with a required field of shape v for every key.
// Repeated keys collapse into one field.
func Record(keys []Key, v Shape) Schema {
	return keyed(keys, v, false)
}

// OptionalRecord returns a schema with an optional field for every key. Each
// field accepts v, the partial form of v, or an explicit absence.
func OptionalRecord(keys []Key, v Shape) Schema {
	return keyed(keys, UnionOf(v, PartialOf(v), Absent{}), true)
}

func keyed(keys []Key, v Shape, optional bool) Schema {
	if v == nil {
		v = Unknown{}
	}
	m := make(map[Key]Field, len(keys))
	for _, k := range keys {
		m[k] = Field{Name: k, Shape: v, Optional: optional}
	}
	return fromMap(m)
}
