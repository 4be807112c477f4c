package dsl

import (
	"github.com/reoring/goshape"
)

// Union returns the normalized union of members (see goshape.UnionOf).
func Union(members ...goshape.Shape) goshape.Shape { return goshape.UnionOf(members...) }

// Nullable is s | null.
func Nullable(s goshape.Shape) goshape.Shape { return goshape.UnionOf(s, goshape.PrimNull) }

// Optional is s | undefined.
func Optional(s goshape.Shape) goshape.Shape { return goshape.UnionOf(s, goshape.Absent{}) }
