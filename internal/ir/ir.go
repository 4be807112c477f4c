// Package ir defines the canonical node form of a shape. Two structurally
// equal shapes encode to the same bytes once canonicalized, which makes the
// encoding usable as a memoization key. This package is internal and not part
// of the public API.
package ir

import (
	"bytes"
	"sort"

	json "github.com/goccy/go-json"
)

// Node is one shape in canonical form. Which members are set depends on Kind.
type Node struct {
	Kind    string  `json:"kind"`
	Name    string  `json:"name,omitempty"`    // primitive name or typed literal text
	Fields  []Field `json:"fields,omitempty"`  // object
	Elems   []Elem  `json:"elems,omitempty"`   // tuple, callable parameters
	Members []*Node `json:"members,omitempty"` // union
	Inner   *Node   `json:"inner,omitempty"`   // eventual, partial, callable result
}

// Field maps a key to a shape.
type Field struct {
	Key      Key   `json:"key"`
	Optional bool  `json:"optional,omitempty"`
	Readonly bool  `json:"readonly,omitempty"`
	Shape    *Node `json:"shape"`
}

// Elem is a tuple or parameter position. Labels are not part of the
// canonical form.
type Elem struct {
	Optional bool  `json:"optional,omitempty"`
	Rest     bool  `json:"rest,omitempty"`
	Shape    *Node `json:"shape"`
}

// Key is a field name. Symbol is a process-local identity for symbol keys.
type Key struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Symbol uint64 `json:"symbol,omitempty"`
}

// Encode returns the compact JSON encoding of n.
func Encode(n *Node) ([]byte, error) { return json.Marshal(n) }

// EncodeIndent returns the indented JSON encoding of n.
func EncodeIndent(n *Node) ([]byte, error) { return json.MarshalIndent(n, "", "  ") }

// Canonicalize sorts union members by their encoding, bottom-up, so that
// unions built in different orders encode identically.
func Canonicalize(n *Node) error {
	if n == nil {
		return nil
	}
	for i := range n.Fields {
		if err := Canonicalize(n.Fields[i].Shape); err != nil {
			return err
		}
	}
	for i := range n.Elems {
		if err := Canonicalize(n.Elems[i].Shape); err != nil {
			return err
		}
	}
	if err := Canonicalize(n.Inner); err != nil {
		return err
	}
	if len(n.Members) == 0 {
		return nil
	}
	enc := make([][]byte, len(n.Members))
	for i, m := range n.Members {
		if err := Canonicalize(m); err != nil {
			return err
		}
		b, err := Encode(m)
		if err != nil {
			return err
		}
		enc[i] = b
	}
	idx := make([]int, len(n.Members))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return bytes.Compare(enc[idx[a]], enc[idx[b]]) < 0 })
	sorted := make([]*Node, len(n.Members))
	for i, j := range idx {
		sorted[i] = n.Members[j]
	}
	n.Members = sorted
	return nil
}
