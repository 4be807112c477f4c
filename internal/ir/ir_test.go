package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func union(names ...string) *Node {
	n := &Node{Kind: "Union"}
	for _, name := range names {
		n.Members = append(n.Members, &Node{Kind: "Primitive", Name: name})
	}
	return n
}

func TestCanonicalize_SortsUnionMembers(t *testing.T) {
	a, b := union("string", "number"), union("number", "string")
	require.NoError(t, Canonicalize(a))
	require.NoError(t, Canonicalize(b))
	ea, err := Encode(a)
	require.NoError(t, err)
	eb, err := Encode(b)
	require.NoError(t, err)
	assert.Equal(t, string(ea), string(eb))
}

func TestCanonicalize_Nested(t *testing.T) {
	obj := func(u *Node) *Node {
		return &Node{Kind: "Object", Fields: []Field{{Key: Key{Kind: "String", Text: "x"}, Shape: u}}}
	}
	a, b := obj(union("null", "boolean")), obj(union("boolean", "null"))
	require.NoError(t, Canonicalize(a))
	require.NoError(t, Canonicalize(b))
	assert.Equal(t, a, b)
	assert.NoError(t, Canonicalize(nil))
}

func TestEncode_OmitsEmpty(t *testing.T) {
	b, err := Encode(&Node{Kind: "Never"})
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"Never"}`, string(b))
}
