package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

func TestUnion(t *testing.T) {
	assert.Equal(t, "string | number", g.Union(g.String(), g.Number()).String())
	assert.Equal(t, goshape.Never{}, g.Union())
	assert.Equal(t, g.String(), g.Union(g.String(), g.String()))
}

func TestNullableAndOptional(t *testing.T) {
	assert.Equal(t, "string | null", g.Nullable(g.String()).String())
	assert.Equal(t, "string | undefined", g.Optional(g.String()).String())
	assert.True(t, goshape.Equal(g.Optional(g.Optional(g.String())), g.Optional(g.String())))
}
