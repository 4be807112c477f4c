package decl

import (
	"strings"

	"github.com/reoring/goshape"
)

func (l *loader) resolveAll() {
	l.state = map[string]int{}
	l.done = map[string]goshape.Shape{}
	for _, name := range l.order {
		l.resolve(name, nil)
	}
}

// resolve evaluates the named declaration after its dependencies. It reports
// false when the declaration or one of its dependencies failed; the failure
// itself is reported once, where it happened.
func (l *loader) resolve(name string, from goshape.PathRef) (goshape.Shape, bool) {
	if s, ok := l.done[name]; ok {
		return s, true
	}
	d, ok := l.decls[name]
	if !ok {
		if from != nil {
			l.issue(from, goshape.CodeUnresolvedRef, "", "name", name)
		}
		return nil, false
	}
	switch l.state[name] {
	case 1:
		cycle := append(l.cycleFrom(name), name)
		l.issue(d.path, goshape.CodeCycle, strings.Join(cycle, " -> "), "name", name)
		return nil, false
	case 2:
		// finished with a failure
		return nil, false
	}
	l.state[name] = 1
	l.stack = append(l.stack, name)
	s, ok := l.evaluate(d)
	l.stack = l.stack[:len(l.stack)-1]
	l.state[name] = 2
	if ok {
		l.done[name] = s
	}
	return s, ok
}

func (l *loader) cycleFrom(name string) []string {
	for i, n := range l.stack {
		if n == name {
			return append([]string(nil), l.stack[i:]...)
		}
	}
	return []string{name}
}

func (l *loader) evaluate(d *declaration) (goshape.Shape, bool) {
	var operand goshape.Shape
	if d.x != nil {
		s, ok := l.build(d.x, d.xPath, d.path)
		if !ok {
			return nil, false
		}
		operand = s
	}
	switch d.kind {
	case kindFields, kindShape:
		return operand, true
	case kindPartial:
		if s, ok := operand.(goshape.Schema); ok {
			return l.cached().partial(s), true
		}
		return goshape.PartialOf(operand), true
	case kindRequired:
		s, ok := l.asObject(operand, d.path)
		if !ok {
			return nil, false
		}
		return l.cached().required(s), true
	case kindPick, kindOmit:
		s, ok := l.asObject(operand, d.xPath)
		if !ok {
			return nil, false
		}
		keys := make([]goshape.Key, 0, len(d.keys))
		failed := false
		for _, k := range d.keys {
			if !goshape.HasField(s, k.key) {
				l.issue(k.path, goshape.CodeUnknownKey, "have "+s.String(), "key", k.key.String())
				failed = true
				continue
			}
			keys = append(keys, k.key)
		}
		if failed {
			return nil, false
		}
		if d.kind == kindPick {
			return l.cached().pick(s, keys), true
		}
		return l.cached().omit(s, keys), true
	case kindRecord, kindOptionalRecord:
		keys := make([]goshape.Key, len(d.keys))
		for i, k := range d.keys {
			keys[i] = k.key
		}
		if d.kind == kindRecord {
			return goshape.Record(keys, operand), true
		}
		return goshape.OptionalRecord(keys, operand), true
	case kindFirst:
		t, ok := l.asTuple(operand, d.path)
		if !ok {
			return nil, false
		}
		s, err := goshape.FirstE(t)
		if err != nil {
			l.issue(d.path, goshape.CodeEmptySequence, "")
			return nil, false
		}
		return s, true
	case kindConcat:
		out := goshape.NewTuple()
		for i, x := range d.list {
			s, ok := l.build(x, d.paths[i], d.paths[i])
			if !ok {
				return nil, false
			}
			t, ok := l.asTuple(s, d.paths[i])
			if !ok {
				return nil, false
			}
			out = goshape.Concat(out, t)
		}
		return out, true
	case kindParameters:
		return goshape.ParametersOf(operand), true
	case kindReturns:
		return goshape.ReturnShapeOf(operand), true
	case kindAwaited:
		return goshape.UnwrapEventual(operand), true
	}
	return nil, false
}

func (l *loader) asObject(s goshape.Shape, p goshape.PathRef) (goshape.Schema, bool) {
	o, ok := s.(goshape.Schema)
	if !ok {
		l.issue(p, goshape.CodeShapeMismatch, "expected an object, got "+s.String())
	}
	return o, ok
}

func (l *loader) asTuple(s goshape.Shape, p goshape.PathRef) (goshape.Tuple, bool) {
	t, ok := s.(goshape.Tuple)
	if !ok {
		l.issue(p, goshape.CodeShapeMismatch, "expected a tuple, got "+s.String())
	}
	return t, ok
}

// build turns an expression into a shape. refPath is where unresolved
// references are reported.
func (l *loader) build(x *expr, refPath, p goshape.PathRef) (goshape.Shape, bool) {
	switch x.op {
	case opShape:
		return x.shape, true
	case opRef:
		return l.resolve(x.name, refPath)
	case opUnion:
		members := make([]goshape.Shape, len(x.args))
		for i, a := range x.args {
			s, ok := l.build(a, refPath, p)
			if !ok {
				return nil, false
			}
			members[i] = s
		}
		return goshape.UnionOf(members...), true
	case opPromise, opPartial:
		inner, ok := l.build(x.args[0], refPath, p)
		if !ok {
			return nil, false
		}
		if x.op == opPromise {
			return goshape.Eventual{Inner: inner}, true
		}
		return goshape.PartialOf(inner), true
	case opTuple:
		elems, ok := l.elems(x.elems, refPath, p)
		if !ok {
			return nil, false
		}
		return goshape.TupleOf(elems...), true
	case opFunc:
		params, ok := l.elems(x.elems, refPath, p)
		if !ok {
			return nil, false
		}
		ret, ok := l.build(x.args[0], refPath, p)
		if !ok {
			return nil, false
		}
		return goshape.Callable{Params: goshape.TupleOf(params...), Returns: ret}, true
	case opObject:
		fields := make([]goshape.Field, 0, len(x.fields))
		for _, f := range x.fields {
			fp := f.path
			if fp == nil {
				fp = refPath
			}
			s, ok := l.build(f.x, fp, fp)
			if !ok {
				return nil, false
			}
			fields = append(fields, goshape.Field{Name: f.key, Shape: s, Optional: f.optional, Readonly: f.readonly})
		}
		return goshape.NewSchema(fields...), true
	}
	return nil, false
}

func (l *loader) elems(in []elemExpr, refPath, p goshape.PathRef) ([]goshape.Element, bool) {
	out := make([]goshape.Element, len(in))
	for i, e := range in {
		s, ok := l.build(e.x, refPath, p)
		if !ok {
			return nil, false
		}
		out[i] = goshape.Element{Label: e.label, Shape: s, Optional: e.optional, Rest: e.rest}
	}
	return out, true
}

// ops routes the object operators through the configured cache.
type ops struct{ c *goshape.Cache }

func (l *loader) cached() ops { return ops{l.opts.Cache} }

func (o ops) partial(s goshape.Schema) goshape.Schema {
	if o.c == nil {
		return goshape.MakePartial(s)
	}
	return o.c.MakePartial(s)
}

func (o ops) required(s goshape.Schema) goshape.Schema {
	if o.c == nil {
		return goshape.MakeRequired(s)
	}
	return o.c.MakeRequired(s)
}

func (o ops) pick(s goshape.Schema, keys []goshape.Key) goshape.Schema {
	if o.c == nil {
		return goshape.MustPick(s, keys...)
	}
	out, _ := o.c.Pick(s, keys...)
	return out
}

func (o ops) omit(s goshape.Schema, keys []goshape.Key) goshape.Schema {
	if o.c == nil {
		return goshape.MustOmit(s, keys...)
	}
	out, _ := o.c.Omit(s, keys...)
	return out
}
