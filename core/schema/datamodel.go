package schema

import (
	"fmt"

	"github.com/leofalp/schemafix/internal/jsonschema"
)

// JSONSchema describes the data model the definition fills: one property per
// field with a path, typed after the field type. Radio and select options
// become enums and field labels become descriptions.
func (d *Definition) JSONSchema() (*jsonschema.Schema, error) {
	props := make([]jsonschema.Property, 0, len(d.Fields))
	for _, f := range d.Fields {
		if f.Path == "" {
			continue
		}
		prop := jsonschema.Property{
			Path:        f.Path,
			Description: f.Label,
			Required:    f.Required,
		}
		switch f.Type {
		case FieldNumber:
			prop.Type = "number"
		case FieldCheckbox:
			prop.Type = "boolean"
		case FieldDate:
			prop.Type, prop.Format = "string", "date"
		default:
			prop.Type = "string"
		}
		if f.Type.HasOptions() {
			for _, o := range f.Options {
				prop.Enum = append(prop.Enum, o)
			}
		}
		props = append(props, prop)
	}

	s, err := jsonschema.FromProperties(d.Name, props)
	if err != nil {
		return nil, fmt.Errorf("data model of %q: %w", d.Name, err)
	}
	s.Description = d.Description
	return s, nil
}
