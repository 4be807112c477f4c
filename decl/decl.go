package decl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reoring/goshape"
)

// Options controls how a declaration document is evaluated.
type Options struct {
	// Cache memoizes the object operators across documents. Nil disables
	// memoization.
	Cache *goshape.Cache
}

// Document is a set of resolved, named shapes.
type Document struct {
	shapes map[string]goshape.Shape
	names  []string
}

// Names returns the declared names in sorted order.
func (d *Document) Names() []string { return append([]string(nil), d.names...) }

// Shape returns the shape declared under name.
func (d *Document) Shape(name string) (goshape.Shape, bool) {
	s, ok := d.shapes[name]
	return s, ok
}

// Schema returns the object schema declared under name. It reports false when
// the name is undeclared or its shape is not an object.
func (d *Document) Schema(name string) (goshape.Schema, bool) {
	s, ok := d.shapes[name].(goshape.Schema)
	return s, ok
}

// Load parses and resolves a YAML declaration document. Every problem found
// is returned as goshape.Issues with JSON Pointer paths into the document.
func Load(data []byte) (*Document, error) { return LoadWithOptions(data, Options{}) }

// LoadFile reads and loads the document at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(data)
}

// LoadWithOptions is Load with explicit options.
func LoadWithOptions(data []byte, opts Options) (*Document, error) {
	var root yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Document{shapes: map[string]goshape.Shape{}}, nil
		}
		it := goshape.Root().Issue(goshape.CodeParseError, err.Error())
		it.Cause = err
		return nil, goshape.Issues{it}
	}
	l := &loader{opts: opts, decls: map[string]*declaration{}}
	l.document(&root)
	if len(l.iss) == 0 {
		l.resolveAll()
	}
	if len(l.iss) > 0 {
		goshape.SortIssues(l.iss)
		return nil, l.iss
	}
	doc := &Document{shapes: l.done, names: make([]string, 0, len(l.done))}
	for name := range l.done {
		doc.names = append(doc.names, name)
	}
	sort.Strings(doc.names)
	return doc, nil
}

type declKind string

const (
	kindFields         declKind = "fields"
	kindShape          declKind = "shape"
	kindPartial        declKind = "partial"
	kindRequired       declKind = "required"
	kindPick           declKind = "pick"
	kindOmit           declKind = "omit"
	kindRecord         declKind = "record"
	kindOptionalRecord declKind = "optionalRecord"
	kindFirst          declKind = "first"
	kindConcat         declKind = "concat"
	kindParameters     declKind = "parameters"
	kindReturns        declKind = "returns"
	kindAwaited        declKind = "awaited"
)

type fieldDecl struct {
	key      goshape.Key
	optional bool
	readonly bool
	x        *expr
	path     goshape.PathRef
}

type keyDecl struct {
	key  goshape.Key
	path goshape.PathRef
}

// declaration is one entry under schemas. Which members are set depends on
// kind.
type declaration struct {
	name  string
	kind  declKind
	path  goshape.PathRef // /schemas/<name>/<kind>
	x     *expr           // operand; the value of record declarations
	xPath goshape.PathRef
	keys  []keyDecl
	list  []*expr // concat operands
	paths []goshape.PathRef
}

type loader struct {
	opts  Options
	iss   goshape.Issues
	decls map[string]*declaration
	order []string

	state map[string]int // 1 visiting, 2 finished
	stack []string
	done  map[string]goshape.Shape
}

func (l *loader) issue(p goshape.PathRef, code, hint string, kv ...any) {
	l.iss = goshape.AppendIssues(l.iss, p.Issue(code, hint, kv...))
}

func (l *loader) document(root *yaml.Node) {
	top := goshape.Root()
	pairs, ok := l.mapping(root, top)
	if !ok {
		return
	}
	for _, kv := range pairs {
		switch kv.key.Value {
		case "schemas":
			l.schemas(kv.val, top.Field("schemas"))
		default:
			l.issue(top.Field(kv.key.Value), goshape.CodeParseError, "unknown section "+kv.key.Value)
		}
	}
}

func (l *loader) schemas(n *yaml.Node, p goshape.PathRef) {
	pairs, ok := l.mapping(n, p)
	if !ok {
		return
	}
	for _, kv := range pairs {
		name := kv.key.Value
		if _, ok := primitives[name]; ok || name == "true" || name == "false" {
			l.issue(p.Field(name), goshape.CodeParseError, "name is reserved: "+name)
			continue
		}
		if d := l.declaration(name, kv.val, p.Field(name)); d != nil {
			l.decls[name] = d
			l.order = append(l.order, name)
		}
	}
}

func (l *loader) declaration(name string, n *yaml.Node, p goshape.PathRef) *declaration {
	pairs, ok := l.mapping(n, p)
	if !ok {
		return nil
	}
	if len(pairs) != 1 {
		kinds := make([]string, len(pairs))
		for i, kv := range pairs {
			kinds[i] = kv.key.Value
		}
		l.issue(p, goshape.CodeParseError, "expected exactly one declaration, got ["+strings.Join(kinds, ", ")+"]")
		return nil
	}
	kv := pairs[0]
	d := &declaration{name: name, kind: declKind(kv.key.Value), path: p.Field(kv.key.Value)}
	before := len(l.iss)
	switch d.kind {
	case kindFields:
		d.x, d.xPath = l.object(kv.val, d.path), d.path
	case kindShape, kindPartial, kindRequired, kindFirst, kindParameters, kindReturns, kindAwaited:
		d.x, d.xPath = l.expr(kv.val, d.path), d.path
	case kindPick, kindOmit:
		l.operands(d, kv.val, "from")
	case kindRecord, kindOptionalRecord:
		l.operands(d, kv.val, "value")
	case kindConcat:
		items, ok := l.sequence(kv.val, d.path)
		if !ok {
			return nil
		}
		for i, it := range items {
			d.list = append(d.list, l.expr(it, d.path.Index(i)))
			d.paths = append(d.paths, d.path.Index(i))
		}
	default:
		l.issue(d.path, goshape.CodeParseError, "unknown declaration "+kv.key.Value)
		return nil
	}
	if len(l.iss) > before {
		return nil
	}
	return d
}

// operands reads {<operand>: expr, keys: [...]} of pick, omit and the record
// declarations.
func (l *loader) operands(d *declaration, n *yaml.Node, operand string) {
	pairs, ok := l.mapping(n, d.path)
	if !ok {
		return
	}
	seenKeys := false
	for _, kv := range pairs {
		switch kv.key.Value {
		case operand:
			d.xPath = d.path.Field(operand)
			d.x = l.expr(kv.val, d.xPath)
		case "keys":
			seenKeys = true
			items, ok := l.sequence(kv.val, d.path.Field("keys"))
			if !ok {
				continue
			}
			for i, it := range items {
				kp := d.path.Field("keys").Index(i)
				k, ok := scalarKey(it)
				if !ok {
					l.issue(kp, goshape.CodeParseError, "keys must be scalars"+at(it))
					continue
				}
				d.keys = append(d.keys, keyDecl{key: k, path: kp})
			}
		default:
			l.issue(d.path.Field(kv.key.Value), goshape.CodeParseError, "unknown key "+kv.key.Value)
		}
	}
	if d.x == nil {
		l.issue(d.path, goshape.CodeParseError, "missing "+operand)
	}
	if !seenKeys {
		l.issue(d.path, goshape.CodeParseError, "missing keys")
	}
}

// expr reads a shape expression. Scalars are parsed with the expression
// grammar, sequences are tuples and mappings are inline objects.
func (l *loader) expr(n *yaml.Node, p goshape.PathRef) *expr {
	n = deref(n)
	if n == nil {
		l.issue(p, goshape.CodeParseError, "missing shape expression")
		return nil
	}
	switch n.Kind {
	case yaml.SequenceNode:
		x := &expr{op: opTuple}
		for i, it := range n.Content {
			el := l.expr(it, p.Index(i))
			if el == nil {
				return nil
			}
			x.elems = append(x.elems, elemExpr{x: el})
		}
		return x
	case yaml.MappingNode:
		return l.object(n, p)
	}
	src := n.Value
	if n.ShortTag() == "!!str" && n.Style&(yaml.SingleQuotedStyle|yaml.DoubleQuotedStyle) != 0 && n.Value == "" {
		return &expr{op: opShape, shape: goshape.StringLit("")}
	}
	if n.ShortTag() == "!!null" && (src == "" || src == "~") {
		l.issue(p, goshape.CodeParseError, "missing shape expression"+at(n))
		return nil
	}
	x, err := parseExpr(src)
	if err != nil {
		it := p.Issue(goshape.CodeParseError, err.Error()+at(n))
		it.Cause = err
		l.iss = goshape.AppendIssues(l.iss, it)
		return nil
	}
	return x
}

// object reads a field mapping into an inline object expression.
func (l *loader) object(n *yaml.Node, p goshape.PathRef) *expr {
	pairs, ok := l.mapping(n, p)
	if !ok {
		return nil
	}
	x := &expr{op: opObject}
	seen := map[goshape.Key]string{}
	for _, kv := range pairs {
		fp := p.Field(kv.key.Value)
		k, optional, readonly := fieldKey(kv.key)
		if prev, dup := seen[k]; dup {
			l.issue(fp, goshape.CodeDuplicateKey, "also declared as "+prev, "key", k.String())
			continue
		}
		seen[k] = kv.key.Value
		fx := l.expr(kv.val, fp)
		if fx == nil {
			continue
		}
		x.fields = append(x.fields, fieldDecl{key: k, optional: optional, readonly: readonly, x: fx, path: fp})
	}
	return x
}
