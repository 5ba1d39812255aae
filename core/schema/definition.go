package schema

import (
	"encoding/json"
	"fmt"

	"github.com/leofalp/schemafix/core/autofix"
)

// FieldType is the kind of input a PDF form field collects.
type FieldType string

const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldDate      FieldType = "date"
	FieldCheckbox  FieldType = "checkbox"
	FieldRadio     FieldType = "radio"
	FieldSelect    FieldType = "select"
	FieldSignature FieldType = "signature"
)

// FieldTypes lists every supported field type.
var FieldTypes = []FieldType{FieldText, FieldNumber, FieldDate, FieldCheckbox, FieldRadio, FieldSelect, FieldSignature}

// HasOptions reports whether fields of this type choose among fixed options.
func (t FieldType) HasOptions() bool {
	return t == FieldRadio || t == FieldSelect
}

// Definition describes one PDF form and its mapping to a data model.
type Definition struct {
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version,omitempty" validate:"omitempty,semver"`
	Description string `json:"description,omitempty"`
	// Document is the file name of the PDF the fields were detected in.
	Document string  `json:"document,omitempty"`
	Groups   []Group `json:"groups,omitempty" validate:"dive"`
	Fields   []Field `json:"fields" validate:"dive"`
}

// Group is a named section of related fields.
type Group struct {
	ID          string `json:"id" validate:"required"`
	Label       string `json:"label,omitempty"`
	Description string `json:"description,omitempty"`
}

// Field is one form field. ID is the field name inside the PDF; Path is
// where its value is stored in the data model, e.g. "applicant.address.city".
type Field struct {
	ID         string            `json:"id" validate:"required"`
	Path       string            `json:"path,omitempty" validate:"omitempty,datapath"`
	Label      string            `json:"label,omitempty"`
	Type       FieldType         `json:"type" validate:"required,fieldtype"`
	Group      string            `json:"group,omitempty"`
	Page       int               `json:"page,omitempty" validate:"min=0"`
	Required   bool              `json:"required,omitempty"`
	Options    []string          `json:"options,omitempty" validate:"omitempty,dive,required"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Group returns the group with the given ID, or nil.
func (d *Definition) Group(id string) *Group {
	for i := range d.Groups {
		if d.Groups[i].ID == id {
			return &d.Groups[i]
		}
	}
	return nil
}

// Field returns the field with the given ID, or nil.
func (d *Definition) Field(id string) *Field {
	for i := range d.Fields {
		if d.Fields[i].ID == id {
			return &d.Fields[i]
		}
	}
	return nil
}

// Marshal renders the definition as indented JSON. An empty indent uses the
// engine's default.
func (d *Definition) Marshal(indent string) ([]byte, error) {
	if indent == "" {
		indent = autofix.DefaultIndent
	}
	out, err := json.MarshalIndent(d, "", indent)
	if err != nil {
		return nil, fmt.Errorf("marshal definition %q: %w", d.Name, err)
	}
	return out, nil
}
