package jsonschema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromProperties(t *testing.T) {
	schema, err := FromProperties("intake", []Property{
		{Path: "applicant.firstName", Required: true},
		{Path: "applicant.birthDate", Format: "date"},
		{Path: "applicant.address.city"},
		{Path: "consent", Type: "boolean", Required: true},
		{Path: "children[0].name"},
		{Path: "children[1].age", Type: "integer"},
		{Path: "scores[]", Type: "number"},
		{Path: "grid[0][1]", Type: "integer"},
		{Path: "plan", Enum: []any{"basic", "plus"}, Description: "Chosen plan"},
	})
	require.NoError(t, err)

	assert.Equal(t, Draft, schema.SchemaURI)
	assert.Equal(t, "intake", schema.Title)
	assert.Equal(t, []string{"applicant", "consent"}, schema.Required)

	applicant := schema.Properties["applicant"]
	assert.Equal(t, "object", applicant.Type)
	assert.Equal(t, []string{"firstName"}, applicant.Required)
	assert.Equal(t, "string", applicant.Properties["firstName"].Type)
	assert.Equal(t, "date", applicant.Properties["birthDate"].Format)
	assert.Equal(t, "string", applicant.Properties["address"].Properties["city"].Type)

	assert.Equal(t, "boolean", schema.Properties["consent"].Type)

	children := schema.Properties["children"]
	assert.Equal(t, "array", children.Type)
	assert.Equal(t, "object", children.Items.Type)
	assert.Equal(t, "string", children.Items.Properties["name"].Type)
	assert.Equal(t, "integer", children.Items.Properties["age"].Type)

	assert.Equal(t, &Schema{Type: "array", Items: &Schema{Type: "number"}}, schema.Properties["scores"])
	assert.Equal(t, &Schema{Type: "array", Items: &Schema{Type: "array", Items: &Schema{Type: "integer"}}}, schema.Properties["grid"])

	plan := schema.Properties["plan"]
	assert.Equal(t, []any{"basic", "plus"}, plan.Enum)
	assert.Equal(t, "Chosen plan", plan.Description)
}

func TestFromProperties_Errors(t *testing.T) {
	tests := []struct {
		name  string
		props []Property
		want  string
	}{
		{name: "empty segment", props: []Property{{Path: "a..b"}}, want: `"a..b"`},
		{name: "bad brackets", props: []Property{{Path: "a[x]"}}, want: `"a[x]"`},
		{name: "leaf then object", props: []Property{{Path: "a"}, {Path: "a.b"}}, want: "a is a string, not an object"},
		{name: "object then leaf", props: []Property{{Path: "a.b"}, {Path: "a"}}, want: "a already has nested properties"},
		{name: "array without index", props: []Property{{Path: "a[0]"}, {Path: "a"}}, want: "a is an array"},
		{name: "object used as array", props: []Property{{Path: "a.b"}, {Path: "a[0]"}}, want: "a is not an array"},
		{name: "type conflict", props: []Property{{Path: "a", Type: "integer"}, {Path: "a"}}, want: "declared twice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromProperties("x", tt.props)
			require.ErrorIs(t, err, ErrInvalidPath)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
