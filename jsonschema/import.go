package jsonschema

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/reoring/goshape"
)

// Import reads a JSON or YAML schema document and converts it to a shape.
// An OpenAPI wrapper ({openAPIV3Schema: ...}) or a CustomResourceDefinition
// is unwrapped to the schema it carries.
func Import(data []byte) (goshape.Shape, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("jsonschema: invalid document: %w", err)
	}
	m := stringMap(root)
	if m == nil {
		return nil, errors.New("jsonschema: document is not an object")
	}
	return importMap(unwrap(m))
}

// ImportCRD scans a multi-document YAML stream and converts the schema of the
// first CustomResourceDefinition whose spec.names.kind equals kind.
func ImportCRD(data []byte, kind string) (goshape.Shape, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("jsonschema: invalid document: %w", err)
		}
		m := stringMap(doc)
		if k, _ := m["kind"].(string); k != "CustomResourceDefinition" {
			continue
		}
		spec, _ := m["spec"].(map[string]any)
		names, _ := spec["names"].(map[string]any)
		if k, _ := names["kind"].(string); k == kind {
			return importMap(unwrap(m))
		}
	}
	return nil, fmt.Errorf("jsonschema: CRD kind %q not found", kind)
}

func importMap(m map[string]any) (goshape.Shape, error) {
	b, err := gojson.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	var s Schema
	if err := gojson.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("jsonschema: %w", err)
	}
	return s.Shape()
}

// unwrap returns the openAPIV3Schema of an OpenAPI wrapper or CRD. A CRD
// version that is served wins over one that is not; the legacy
// spec.validation location is tried last.
func unwrap(root map[string]any) map[string]any {
	if oas, ok := root["openAPIV3Schema"].(map[string]any); ok {
		return oas
	}
	spec, ok := root["spec"].(map[string]any)
	if !ok {
		return root
	}
	var first map[string]any
	versions, _ := spec["versions"].([]any)
	for _, v := range versions {
		vm, _ := v.(map[string]any)
		sch, _ := vm["schema"].(map[string]any)
		oas, ok := sch["openAPIV3Schema"].(map[string]any)
		if !ok {
			continue
		}
		if served, ok := vm["served"].(bool); !ok || served {
			return oas
		}
		if first == nil {
			first = oas
		}
	}
	if first != nil {
		return first
	}
	if val, ok := spec["validation"].(map[string]any); ok {
		if oas, ok := val["openAPIV3Schema"].(map[string]any); ok {
			return oas
		}
	}
	return root
}

// stringMap normalizes YAML maps with interface keys. Non-string keys are
// dropped.
func stringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalize(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if ks, ok := k.(string); ok {
				out[ks] = normalize(vv)
			}
		}
		return out
	}
	return nil
}

func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return stringMap(t)
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = normalize(t[i])
		}
		return out
	}
	return v
}

// Shape converts s to a shape. Local references into $defs or definitions
// are resolved; a reference cycle is reported as a cycle issue, since shapes
// are finite trees.
func (s *Schema) Shape() (goshape.Shape, error) {
	im := &importer{root: s, visiting: map[string]bool{}}
	out := im.shape(s, goshape.Root())
	if len(im.iss) > 0 {
		goshape.SortIssues(im.iss)
		return nil, im.iss
	}
	return out, nil
}

type importer struct {
	root     *Schema
	visiting map[string]bool
	iss      goshape.Issues
}

func (im *importer) issue(p goshape.PathRef, code, hint string, kv ...any) goshape.Shape {
	im.iss = goshape.AppendIssues(im.iss, p.Issue(code, hint, kv...))
	return goshape.Unknown{}
}

func (im *importer) shape(s *Schema, p goshape.PathRef) goshape.Shape {
	if s == nil {
		return goshape.Unknown{}
	}
	if s.Ref != "" {
		return im.ref(s.Ref, p.Field("$ref"))
	}
	out := im.core(s, p)
	if s.Nullable {
		out = goshape.UnionOf(out, goshape.PrimNull)
	}
	return out
}

func (im *importer) ref(ref string, p goshape.PathRef) goshape.Shape {
	var defs map[string]*Schema
	var name string
	switch {
	case strings.HasPrefix(ref, "#/$defs/"):
		defs, name = im.root.Defs, strings.TrimPrefix(ref, "#/$defs/")
	case strings.HasPrefix(ref, "#/definitions/"):
		defs, name = im.root.Definitions, strings.TrimPrefix(ref, "#/definitions/")
	default:
		return im.issue(p, goshape.CodeUnresolvedRef, "only local $defs and definitions references are supported", "name", ref)
	}
	target, ok := defs[name]
	if !ok {
		return im.issue(p, goshape.CodeUnresolvedRef, "", "name", ref)
	}
	if im.visiting[ref] {
		return im.issue(p, goshape.CodeCycle, "", "name", ref)
	}
	im.visiting[ref] = true
	defer delete(im.visiting, ref)
	return im.shape(target, goshape.PathAt(strings.TrimPrefix(ref, "#")))
}

func (im *importer) core(s *Schema, p goshape.PathRef) goshape.Shape {
	switch {
	case s.Const != nil:
		return im.literal(s.Const, p.Field("const"))
	case len(s.Enum) > 0:
		members := make([]goshape.Shape, len(s.Enum))
		for i, v := range s.Enum {
			members[i] = im.literal(v, p.Field("enum").Index(i))
		}
		return goshape.UnionOf(members...)
	case len(s.AnyOf) > 0:
		return im.alternatives(s.AnyOf, p.Field("anyOf"))
	case len(s.OneOf) > 0:
		return im.alternatives(s.OneOf, p.Field("oneOf"))
	case s.Not != nil && isEmpty(s.Not):
		return goshape.Never{}
	case s.IntOrString:
		return goshape.UnionOf(goshape.PrimNumber, goshape.PrimString)
	}
	types := s.Type
	if len(types) == 0 {
		switch {
		case len(s.Properties) > 0 || s.AdditionalProperties != nil:
			types = TypeList{"object"}
		case len(s.PrefixItems) > 0 || s.Items != nil:
			types = TypeList{"array"}
		default:
			return goshape.Unknown{}
		}
	}
	members := make([]goshape.Shape, 0, len(types))
	for _, t := range types {
		switch t {
		case "string":
			members = append(members, goshape.PrimString)
		case "number", "integer":
			members = append(members, goshape.PrimNumber)
		case "boolean":
			members = append(members, goshape.PrimBoolean)
		case "null":
			members = append(members, goshape.PrimNull)
		case "object":
			members = append(members, im.object(s, p))
		case "array":
			members = append(members, im.array(s, p))
		default:
			im.issue(p.Field("type"), goshape.CodeUnsupportedShape, "unknown type "+t)
		}
	}
	return goshape.UnionOf(members...)
}

func (im *importer) literal(v any, p goshape.PathRef) goshape.Shape {
	switch t := v.(type) {
	case string:
		return goshape.StringLit(t)
	case bool:
		return goshape.BoolLit(t)
	case float64:
		return goshape.NumberLit(t)
	case nil:
		return goshape.PrimNull
	}
	return im.issue(p, goshape.CodeUnsupportedShape, fmt.Sprintf("literal %v", v))
}

func (im *importer) alternatives(list []*Schema, p goshape.PathRef) goshape.Shape {
	members := make([]goshape.Shape, len(list))
	for i, m := range list {
		members[i] = im.shape(m, p.Index(i))
	}
	return goshape.UnionOf(members...)
}

// object maps properties to fields. A schema with no properties is the
// object primitive.
func (im *importer) object(s *Schema, p goshape.PathRef) goshape.Shape {
	if len(s.Properties) == 0 {
		return goshape.PrimObject
	}
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	fields := make([]goshape.Field, 0, len(names))
	for _, name := range names {
		ps := s.Properties[name]
		fields = append(fields, goshape.Field{
			Name:     goshape.StringKey(name),
			Shape:    im.shape(ps, p.Field("properties").Field(name)),
			Optional: !required[name],
			Readonly: ps != nil && ps.ReadOnly,
		})
	}
	return goshape.NewSchema(fields...)
}

// array maps prefixItems to leading elements and items to a rest element.
// Elements at or past minItems are optional.
func (im *importer) array(s *Schema, p goshape.PathRef) goshape.Shape {
	minItems := 0
	if s.MinItems != nil {
		minItems = *s.MinItems
	}
	elems := make([]goshape.Element, 0, len(s.PrefixItems)+1)
	for i, it := range s.PrefixItems {
		elems = append(elems, goshape.Element{
			Shape:    im.shape(it, p.Field("prefixItems").Index(i)),
			Optional: i >= minItems,
		})
	}
	closed := s.MaxItems != nil && *s.MaxItems <= len(s.PrefixItems)
	switch {
	case s.Items != nil && s.Items.Not != nil && isEmpty(s.Items.Not):
	case s.Items != nil:
		elems = append(elems, goshape.Element{Shape: im.shape(s.Items, p.Field("items")), Rest: true})
	case !closed:
		elems = append(elems, goshape.Element{Shape: goshape.Unknown{}, Rest: true})
	}
	return goshape.TupleOf(elems...)
}

func isEmpty(s *Schema) bool { return reflect.DeepEqual(*s, Schema{}) }
