package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reoring/goshape"
	g "github.com/reoring/goshape/dsl"
)

type user struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Tags  []string `json:"tags,omitempty"`
}

var (
	userID    = goshape.FieldOf[user](func(u *user) *string { return &u.ID })
	userEmail = goshape.FieldOf[user](func(u *user) *string { return &u.Email })
	userTags  = goshape.FieldOf[user](func(u *user) *[]string { return &u.Tags })
)

func TestObjectOf_TokensNameFields(t *testing.T) {
	s := g.ObjectOf[user]().
		Field(userID, g.String()).Required().Readonly().
		Field(userEmail, g.Union(g.String(), g.Null())).
		Inferred(userTags).
		Require(userEmail).
		MustBuild()
	assert.Equal(t, "{ email: string | null; readonly id: string; tags?: [...string[]] }", s.String())
}

func TestObjectOf_InferredMatchesSchemaFor(t *testing.T) {
	s := g.ObjectOf[user]().
		Inferred(userID).Required().
		Inferred(userEmail).Required().
		Inferred(userTags).
		MustBuild()
	assert.True(t, s.Equal(goshape.SchemaFor[user]()))
}
