// Package gen renders Go type declarations for object schemas.
package gen

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/reoring/goshape"
)

// TypeDef names an object schema to render as a Go struct.
type TypeDef struct {
	Name   string
	Schema goshape.Schema
}

// File is one generated Go source file.
type File struct {
	Package string
	Types   []TypeDef
}

type structField struct {
	Name string
	Type string
	Tag  string
	Doc  string
}

type structDecl struct {
	Name   string
	Fields []structField
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by goshape. DO NOT EDIT.

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- range .Structs}}
type {{.Name}} struct {
{{- range .Fields}}
	{{if .Doc}}// {{.Doc}}
	{{end}}{{.Name}} {{.Type}} {{.Tag}}
{{- end}}
}
{{end}}`))

// RenderFile renders the structs of f, one per TypeDef plus one per nested
// object shape, and formats the result.
func RenderFile(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: package name required")
	}
	r := &renderer{taken: map[string]bool{}, imports: map[string]bool{}}
	for _, td := range f.Types {
		r.taken[td.Name] = true
	}
	for _, td := range f.Types {
		if !token(td.Name) {
			return nil, fmt.Errorf("gen: invalid type name %q", td.Name)
		}
		r.object(td.Name, td.Schema)
	}
	imps := make([]string, 0, len(r.imports))
	for p := range r.imports {
		imps = append(imps, p)
	}
	sort.Strings(imps)

	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, map[string]any{
		"Package": f.Package,
		"Imports": imps,
		"Structs": r.structs,
	})
	if err != nil {
		return nil, fmt.Errorf("gen: executing template: %w", err)
	}
	out, err := imports.Process("generated.go", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("gen: formatting: %w\n%s", err, buf.String())
	}
	return out, nil
}

type renderer struct {
	structs []structDecl
	taken   map[string]bool
	imports map[string]bool
}

func (r *renderer) object(name string, s goshape.Schema) {
	decl := structDecl{Name: name}
	idx := len(r.structs)
	r.structs = append(r.structs, decl)
	used := map[string]bool{}
	for _, f := range s.Fields() {
		if f.Name.Kind() == goshape.KeySymbol {
			continue
		}
		fname := unique(used, goName(f.Name))
		typ := r.goType(name+fname, f.Shape)
		if f.Optional && !nillable(typ) {
			typ = "*" + typ
		}
		tag := f.Name.Text()
		if f.Optional {
			tag += ",omitempty"
		}
		sf := structField{Name: fname, Type: typ, Tag: "`json:" + strconv.Quote(tag) + "`"}
		if f.Readonly {
			sf.Doc = fname + " is readonly."
		}
		decl.Fields = append(decl.Fields, sf)
	}
	r.structs[idx] = decl
}

// goType maps a shape to a Go type expression. hint names nested structs.
func (r *renderer) goType(hint string, s goshape.Shape) string {
	switch t := s.(type) {
	case goshape.Primitive:
		switch t {
		case goshape.PrimString:
			return "string"
		case goshape.PrimNumber:
			return "float64"
		case goshape.PrimBoolean:
			return "bool"
		case goshape.PrimBigInt:
			r.imports["math/big"] = true
			return "*big.Int"
		case goshape.PrimError:
			return "error"
		case goshape.PrimObject:
			return "map[string]any"
		case goshape.PrimNull, goshape.PrimVoid:
			return "struct{}"
		}
		return "any"
	case goshape.Literal:
		switch t.Value().(type) {
		case string:
			return "string"
		case float64:
			return "float64"
		case bool:
			return "bool"
		}
	case goshape.Schema:
		name := r.claim(hint)
		r.object(name, t)
		return name
	case goshape.Union:
		return r.union(hint, t)
	case goshape.Eventual:
		return "<-chan " + r.goType(hint, t.Inner)
	case goshape.Tuple:
		return r.tuple(hint, t)
	case goshape.Callable:
		return r.function(hint, t)
	case goshape.Never:
		return "struct{}"
	}
	return "any"
}

// union keeps the single non-null member of T | null | undefined as a
// pointer, and collapses literal unions of one base type. Anything else is any.
func (r *renderer) union(hint string, u goshape.Union) string {
	var rest []goshape.Shape
	nullable := false
	for _, m := range u.Members() {
		if _, ok := m.(goshape.Absent); ok {
			continue
		}
		if isNull(m) {
			nullable = true
			continue
		}
		rest = append(rest, m)
	}
	if len(rest) == 0 {
		return "any"
	}
	if len(rest) > 1 {
		base := ""
		for _, m := range rest {
			if _, ok := m.(goshape.Literal); !ok {
				return "any"
			}
			typ := r.goType(hint, m)
			if base != "" && typ != base {
				return "any"
			}
			base = typ
		}
	}
	typ := r.goType(hint, rest[0])
	if nullable && !nillable(typ) {
		return "*" + typ
	}
	return typ
}

func isNull(s goshape.Shape) bool {
	p, ok := s.(goshape.Primitive)
	return ok && p == goshape.PrimNull
}

func (r *renderer) tuple(hint string, t goshape.Tuple) string {
	if t.Len() == 1 && t.At(0).Rest {
		return "[]" + r.goType(hint+"Item", t.At(0).Shape)
	}
	if t.Len() == 0 {
		return "[0]any"
	}
	elem := ""
	for _, e := range t.Elements() {
		if e.Rest || e.Optional {
			return "[]any"
		}
		typ := r.goType(hint+"Item", e.Shape)
		if elem != "" && typ != elem {
			return "[" + strconv.Itoa(t.Len()) + "]any"
		}
		elem = typ
	}
	return "[" + strconv.Itoa(t.Len()) + "]" + elem
}

func (r *renderer) function(hint string, c goshape.Callable) string {
	params := make([]string, 0, c.Params.Len())
	for i, e := range c.Params.Elements() {
		typ := r.goType(hint+"Arg"+strconv.Itoa(i), e.Shape)
		if e.Rest {
			typ = "..." + typ
		}
		params = append(params, typ)
	}
	out := ""
	if ret := goshape.ReturnShapeOf(c); ret.Kind() != goshape.KindPrimitive || ret.(goshape.Primitive) != goshape.PrimVoid {
		out = " " + r.goType(hint+"Result", ret)
	}
	return "func(" + strings.Join(params, ", ") + ")" + out
}

// claim reserves a unique top-level type name.
func (r *renderer) claim(name string) string {
	n := name
	for i := 2; r.taken[n]; i++ {
		n = name + strconv.Itoa(i)
	}
	r.taken[n] = true
	return n
}

func unique(used map[string]bool, name string) string {
	n := name
	for i := 2; used[n]; i++ {
		n = name + strconv.Itoa(i)
	}
	used[n] = true
	return n
}

func nillable(typ string) bool {
	return typ == "any" || typ == "error" || strings.HasPrefix(typ, "*") ||
		strings.HasPrefix(typ, "[]") || strings.HasPrefix(typ, "map[") ||
		strings.HasPrefix(typ, "func(") || strings.HasPrefix(typ, "<-chan ")
}

var initialisms = map[string]string{
	"id": "ID", "url": "URL", "uri": "URI", "http": "HTTP", "json": "JSON",
	"api": "API", "ip": "IP", "uuid": "UUID", "html": "HTML",
}

// goName converts a key to an exported Go identifier: "in_stock" -> InStock,
// "user id" -> UserID, 2 -> Key2.
func goName(k goshape.Key) string {
	if k.Kind() == goshape.KeyNumber {
		return "Key" + strings.NewReplacer("-", "Neg", ".", "_", "+", "").Replace(k.Text())
	}
	parts := strings.FieldsFunc(k.Text(), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	b := &strings.Builder{}
	for _, p := range parts {
		if up, ok := initialisms[strings.ToLower(p)]; ok {
			b.WriteString(up)
			continue
		}
		rs := []rune(p)
		rs[0] = unicode.ToUpper(rs[0])
		b.WriteString(string(rs))
	}
	name := b.String()
	if name == "" {
		return "Field"
	}
	if !unicode.IsLetter([]rune(name)[0]) {
		name = "F" + name
	}
	return name
}

func token(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if !(unicode.IsLetter(r) || r == '_' || i > 0 && unicode.IsDigit(r)) {
			return false
		}
	}
	return true
}
