package goshape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_RepeatedResetReplacesStep(t *testing.T) {
	b := NewBuilder().MustSet("a", 1)
	for i := 0; i < 100; i++ {
		b = b.MustSet("n", i)
	}
	assert.Equal(t, 2, b.last.depth)
	assert.Equal(t, 2, b.Len())
	v, _ := b.Snapshot().Get("n")
	assert.Equal(t, 99, v)

	// a re-set further back in the chain still adds a step
	b = b.MustSet("a", 2)
	assert.Equal(t, 3, b.last.depth)
	obj := b.Snapshot()
	assert.Equal(t, map[string]any{"a": 2, "n": 99}, obj.Map())
}
