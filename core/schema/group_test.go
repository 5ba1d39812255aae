package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHumanize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "applicant_firstName", want: "Applicant First Name"},
		{in: "PDFFieldName", want: "PDF Field Name"},
		{in: "Page1[0].zip-code", want: "Page1 Zip Code"},
		{in: "address2Line", want: "Address2 Line"},
		{in: "dob", want: "Dob"},
		{in: "  spaced   out ", want: "Spaced Out"},
		{in: "ZIP_code", want: "ZIP Code"},
		{in: "état_civil", want: "État Civil"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Humanize(tt.in))
		})
	}
}

func TestAutoGroup(t *testing.T) {
	def := &Definition{
		Name:   "x",
		Groups: []Group{{ID: "spouse", Label: "Partner"}},
		Fields: []Field{
			{ID: "applicant_first", Type: FieldText},
			{ID: "applicant_last", Type: FieldText},
			{ID: "spouse.first", Type: FieldText},
			{ID: "spouse.last", Type: FieldText},
			{ID: "lonely_one", Type: FieldText},
			{ID: "signature", Type: FieldSignature},
			{ID: "applicant_dob", Type: FieldDate, Group: "other"},
			{ID: "child[0]-name", Type: FieldText},
			{ID: "child[1]-name", Type: FieldText},
		},
	}

	n := def.AutoGroup("")

	assert.Equal(t, 6, n)
	assert.Equal(t, []Group{
		{ID: "spouse", Label: "Partner"},
		{ID: "applicant", Label: "Applicant"},
		{ID: "child", Label: "Child"},
	}, def.Groups)

	groups := make(map[string]string, len(def.Fields))
	for _, f := range def.Fields {
		groups[f.ID] = f.Group
	}
	assert.Equal(t, map[string]string{
		"applicant_first": "applicant",
		"applicant_last":  "applicant",
		"spouse.first":    "spouse",
		"spouse.last":     "spouse",
		"lonely_one":      "",
		"signature":       "",
		"applicant_dob":   "other",
		"child[0]-name":   "child",
		"child[1]-name":   "child",
	}, groups)

	// grouped fields are left alone on a second run
	assert.Zero(t, def.AutoGroup(""))
}

func TestAutoGroup_CustomSeparators(t *testing.T) {
	def := &Definition{Fields: []Field{
		{ID: "a/x", Type: FieldText},
		{ID: "a/y", Type: FieldText},
		{ID: "b_x", Type: FieldText},
		{ID: "b_y", Type: FieldText},
	}}

	require.Equal(t, 2, def.AutoGroup("/"))
	assert.Equal(t, "a", def.Fields[0].Group)
	assert.Empty(t, def.Fields[2].Group)
}

func TestFillLabels(t *testing.T) {
	def := &Definition{
		Groups: []Group{{ID: "applicant_info"}, {ID: "misc", Label: "Other"}},
		Fields: []Field{
			{ID: "firstName"},
			{ID: "dob", Label: "Date of birth"},
		},
	}

	assert.Equal(t, 2, def.FillLabels())
	assert.Equal(t, "Applicant Info", def.Groups[0].Label)
	assert.Equal(t, "Other", def.Groups[1].Label)
	assert.Equal(t, "First Name", def.Fields[0].Label)
	assert.Equal(t, "Date of birth", def.Fields[1].Label)
	assert.Zero(t, def.FillLabels())
}
