package goshape

// Builder accumulates fields one at a time. It is persistent: Set never
// modifies the receiver and returns a new Builder, so any intermediate
// Builder can be extended along several branches. The zero value is an empty
// Builder, the same as NewBuilder().
type Builder struct {
	last *link
}

// link is one Set step. Links are shared between branches and never mutated.
type link struct {
	parent *link
	key    Key
	value  any
	schema Schema // accumulated schema after this step
	depth  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder { return Builder{} }

// Schema returns the accumulated schema.
func (b Builder) Schema() Schema {
	if b.last == nil {
		return Schema{}
	}
	return b.last.schema
}

// Len returns the number of distinct keys set so far.
func (b Builder) Len() int { return b.Schema().Len() }

// Set adds key with value under the shape inferred by ShapeOf.
func (b Builder) Set(key string, value any) (Builder, error) {
	return b.SetKey(StringKey(key), value)
}

// SetKey is Set for an arbitrary Key.
func (b Builder) SetKey(key Key, value any) (Builder, error) {
	v := cloneValue(value)
	return b.set(key, v, ShapeOf(v))
}

// SetShape adds key with value under an explicit shape. Keys become readonly
// once set: setting the same key again is allowed only with an equal shape,
// in which case the schema is unchanged and the new value is recorded.
// Setting it with another shape returns an error matching ErrShapeMismatch.
//
// The builder keeps its own copy of value's maps, slices and pointers, so
// later changes by the caller are not seen by snapshots. Each Set adds a step
// to the chain; re-setting the key of the immediately preceding step replaces
// that step instead.
func (b Builder) SetShape(key Key, value any, shape Shape) (Builder, error) {
	return b.set(key, cloneValue(value), shape)
}

func (b Builder) set(key Key, value any, shape Shape) (Builder, error) {
	if shape == nil {
		shape = Unknown{}
	}
	cur := b.Schema()
	next := cur
	if f, ok := cur.Field(key); ok {
		if !Equal(f.Shape, shape) {
			return b, Issues{Root().Key(key).Issue(CodeReadonlyField,
				"set as "+render(f.Shape)+", got "+render(shape), "key", key.String())}
		}
	} else {
		next = cur.with(Field{Name: key, Shape: shape, Readonly: true})
	}
	parent := b.last
	if parent != nil && parent.key == key {
		parent = parent.parent
	}
	depth := 1
	if parent != nil {
		depth = parent.depth + 1
	}
	return Builder{last: &link{parent: parent, key: key, value: value, schema: next, depth: depth}}, nil
}

// MustSet is like Set but panics on error.
func (b Builder) MustSet(key string, value any) Builder {
	nb, err := b.Set(key, value)
	if err != nil {
		panic(err)
	}
	return nb
}

// Snapshot returns the values set along the chain that produced b, typed by
// the accumulated schema. When a key was set more than once the latest value
// wins. The returned Object shares nothing mutable with b.
func (b Builder) Snapshot() Object {
	vals := make(map[Key]any, b.Len())
	if b.last != nil {
		steps := make([]*link, 0, b.last.depth)
		for l := b.last; l != nil; l = l.parent {
			steps = append(steps, l)
		}
		for i := len(steps) - 1; i >= 0; i-- {
			vals[steps[i].key] = steps[i].value
		}
	}
	return Object{schema: b.Schema(), values: vals}
}

// Object is a concrete record paired with its schema, as produced by
// Builder.Snapshot.
type Object struct {
	schema Schema
	values map[Key]any
}

// Schema returns the structural type of the record.
func (o Object) Schema() Schema { return o.schema }

func (o Object) Len() int { return len(o.values) }

// Keys returns the keys in schema order.
func (o Object) Keys() []Key { return o.schema.Names() }

// GetKey returns a copy of the value stored under k.
func (o Object) GetKey(k Key) (any, bool) {
	v, ok := o.values[k]
	return cloneValue(v), ok
}

// Get returns the value stored under the string key name.
func (o Object) Get(name string) (any, bool) { return o.GetKey(StringKey(name)) }

// Map returns the record as a fresh map keyed by Key.Text.
func (o Object) Map() map[string]any {
	out := make(map[string]any, len(o.values))
	for k, v := range o.values {
		out[k.Text()] = cloneValue(v)
	}
	return out
}
