// Package jsonschema converts shapes to and from JSON Schema (draft 2020-12)
// documents. Import also accepts OpenAPI v3 schemas and Kubernetes CRDs.
package jsonschema

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// Draft is the $schema URI written on exported documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is the subset of JSON Schema that shapes map onto.
type Schema struct {
	SchemaURI   string             `json:"$schema,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`
	Description string             `json:"description,omitempty"`

	// Core
	Type     TypeList `json:"type,omitempty"`
	Format   string   `json:"format,omitempty"`
	Const    any      `json:"const,omitempty"`
	Enum     []any    `json:"enum,omitempty"`
	Default  any      `json:"default,omitempty"`
	ReadOnly bool     `json:"readOnly,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties *Schema            `json:"additionalProperties,omitempty"`

	// Array
	PrefixItems []*Schema `json:"prefixItems,omitempty"`
	Items       *Schema   `json:"items,omitempty"`
	MinItems    *int      `json:"minItems,omitempty"`
	MaxItems    *int      `json:"maxItems,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	// OpenAPI v3.0 and Kubernetes extensions, read on import only.
	Nullable    bool `json:"nullable,omitempty"`
	IntOrString bool `json:"x-kubernetes-int-or-string,omitempty"`
}

// UnmarshalJSON accepts the boolean schemas true and false.
func (s *Schema) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true":
		*s = Schema{}
		return nil
	case "false":
		*s = Schema{Not: &Schema{}}
		return nil
	}
	type plain Schema
	return gojson.Unmarshal(b, (*plain)(s))
}

// MarshalIndent renders s as indented JSON with sorted property names.
func (s *Schema) MarshalIndent() ([]byte, error) {
	return gojson.MarshalIndent(s, "", "  ")
}

// TypeList is the type keyword: a single type name or a list of them.
type TypeList []string

func (t TypeList) MarshalJSON() ([]byte, error) {
	if len(t) == 1 {
		return gojson.Marshal(t[0])
	}
	return gojson.Marshal([]string(t))
}

func (t *TypeList) UnmarshalJSON(b []byte) error {
	var one string
	if err := gojson.Unmarshal(b, &one); err == nil {
		*t = TypeList{one}
		return nil
	}
	var many []string
	if err := gojson.Unmarshal(b, &many); err != nil {
		return err
	}
	*t = many
	return nil
}

func (t TypeList) has(name string) bool {
	for _, n := range t {
		if n == name {
			return true
		}
	}
	return false
}

func intPtr(n int) *int { return &n }
