package goshape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/goshape"
)

type order struct {
	ID     string  `json:"id"`
	Status string  `json:"status"`
	Total  float64 `json:"total"`
	Note   string  `json:"note,omitempty"`
	secret string
}

func TestFieldOf_ResolvesTagName(t *testing.T) {
	tok := goshape.FieldOf[order](func(o *order) *string { return &o.Status })
	assert.Equal(t, goshape.StringKey("status"), tok.Key())
}

func TestFieldOf_PanicsOnBadSelectors(t *testing.T) {
	assert.Panics(t, func() { goshape.FieldOf[order, string](nil) })
	assert.Panics(t, func() {
		goshape.FieldOf[order](func(o *order) *string { return &o.secret })
	})
	assert.Panics(t, func() {
		goshape.FieldOf[order](func(o *order) *string { s := ""; return &s })
	})
}

func TestSchemaFor(t *testing.T) {
	s := goshape.SchemaFor[order]()
	assert.Equal(t, "{ id: string; note?: string; status: string; total: number }", s.String())
	assert.Panics(t, func() { goshape.SchemaFor[int]() })
}

func TestPickOfAndOmitOf(t *testing.T) {
	id := goshape.FieldOf[order](func(o *order) *string { return &o.ID })
	total := goshape.FieldOf[order](func(o *order) *float64 { return &o.Total })

	assert.Equal(t, "{ id: string; total: number }", goshape.PickOf(id, total).String())
	assert.Equal(t, "{ note?: string; status?: string }", goshape.OmitOf(id, total).String())
	assert.Equal(t, "{}", goshape.PickOf[order]().String())
}
