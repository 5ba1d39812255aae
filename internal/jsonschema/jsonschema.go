package jsonschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Draft is the dialect written to $schema by FromProperties.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a subset of JSON Schema sufficient to describe documents and
// assistant replies.
type Schema struct {
	SchemaURI   string `json:"$schema,omitempty"`
	Title       string `json:"title,omitempty"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Format      string `json:"format,omitempty"`

	Properties map[string]*Schema `json:"properties,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Items      *Schema            `json:"items,omitempty"`

	// AdditionalProperties is either a *Schema or a bool.
	AdditionalProperties any   `json:"additionalProperties,omitempty"`
	Default              any   `json:"default,omitempty"`
	Enum                 []any `json:"enum,omitempty"`

	Ref  string             `json:"$ref,omitempty"`
	Defs map[string]*Schema `json:"$defs,omitempty"`
}

// GenerateJSONSchema derives a schema for T. Struct fields are named after
// their json tag and are required unless they are pointers, tagged
// omitempty, or both. A jsonschema tag refines a field:
//
//	Label string `json:"label" jsonschema:"description=Display text,required"`
//	Kind  string `json:"kind,omitempty" jsonschema:"enum=text,enum=date"`
//	When  string `json:"when" jsonschema:"format=date"`
//
// Commas inside a description are written as \,.
func GenerateJSONSchema[T any]() (*Schema, error) {
	g := &generator{
		visited: make(map[reflect.Type]string),
		defs:    make(map[string]*Schema),
	}

	t := reflect.TypeFor[T]()
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	var schema *Schema
	if t.Kind() == reflect.Struct {
		schema = g.rootStruct(t)
	} else {
		schema = g.schemaFor(t)
	}
	if g.err != nil {
		return nil, g.err
	}
	if len(g.defs) > 0 {
		schema.Defs = g.defs
	}
	return schema, nil
}

type generator struct {
	visited map[reflect.Type]string
	defs    map[string]*Schema
	err     error
}

// rootStruct returns the root object inline. When the type refers to itself
// it is also registered under $defs so that inner references resolve.
func (g *generator) rootStruct(t reflect.Type) *Schema {
	if !isRecursive(t) {
		return g.objectSchema(t)
	}
	name := defName(t)
	g.visited[t] = name
	schema := g.objectSchema(t)
	g.defs[name] = &Schema{
		Type:       schema.Type,
		Properties: schema.Properties,
		Required:   schema.Required,
	}
	return schema
}

func (g *generator) schemaFor(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: g.schemaFor(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", AdditionalProperties: g.schemaFor(t.Elem())}
	case reflect.Pointer:
		return g.schemaFor(t.Elem())
	case reflect.Struct:
		return g.nestedStruct(t)
	default:
		return &Schema{Type: "object"}
	}
}

// nestedStruct inlines plain structs and turns recursive ones into $refs.
func (g *generator) nestedStruct(t reflect.Type) *Schema {
	if name, ok := g.visited[t]; ok {
		return &Schema{Ref: "#/$defs/" + name}
	}
	if !isRecursive(t) {
		return g.objectSchema(t)
	}
	name := defName(t)
	g.visited[t] = name
	g.defs[name] = g.objectSchema(t)
	return &Schema{Ref: "#/$defs/" + name}
}

func (g *generator) objectSchema(t reflect.Type) *Schema {
	schema := &Schema{Type: "object", Properties: map[string]*Schema{}}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, omitEmpty, skip := jsonName(field)
		if skip {
			continue
		}

		prop := g.schemaFor(field.Type)
		schema.Properties[name] = prop

		requiredByTag := false
		if prop.Ref == "" {
			var err error
			requiredByTag, err = applyTag(field.Type, field.Tag.Get("jsonschema"), prop)
			if err != nil && g.err == nil {
				g.err = fmt.Errorf("field %s.%s: %w", t.Name(), field.Name, err)
			}
		}
		if requiredByTag || (field.Type.Kind() != reflect.Pointer && !omitEmpty) {
			schema.Required = append(schema.Required, name)
		}
	}
	return schema
}

func jsonName(field reflect.StructField) (name string, omitEmpty, skip bool) {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return "", false, true
	}
	name, opts, _ := strings.Cut(tag, ",")
	if name == "" {
		name = field.Name
	}
	return name, strings.Contains(","+opts+",", ",omitempty,"), false
}

// applyTag copies jsonschema tag settings onto schema and reports whether
// the field was marked required.
func applyTag(fieldType reflect.Type, tag string, schema *Schema) (bool, error) {
	if tag == "" {
		return false, nil
	}
	for fieldType.Kind() == reflect.Pointer {
		fieldType = fieldType.Elem()
	}

	required := false
	for _, item := range splitTag(tag) {
		key, value, hasValue := strings.Cut(item, "=")
		switch {
		case key == "required" && !hasValue:
			required = true
		case key == "description":
			schema.Description = value
		case key == "format":
			schema.Format = value
		case key == "title":
			schema.Title = value
		case key == "enum":
			v, err := enumValue(fieldType, value)
			if err != nil {
				return false, err
			}
			schema.Enum = append(schema.Enum, v)
		default:
			return false, fmt.Errorf("unknown jsonschema tag option %q", item)
		}
	}
	return required, nil
}

// splitTag splits on commas not preceded by a backslash.
func splitTag(tag string) []string {
	var items []string
	var cur strings.Builder
	for i := 0; i < len(tag); i++ {
		switch {
		case tag[i] == '\\' && i+1 < len(tag) && tag[i+1] == ',':
			cur.WriteByte(',')
			i++
		case tag[i] == ',':
			items = append(items, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(tag[i])
		}
	}
	return append(items, cur.String())
}

// enumValue converts an enum literal to the field's JSON type.
func enumValue(t reflect.Type, value string) (any, error) {
	switch t.Kind() {
	case reflect.String:
		return value, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as integer: %w", value, err)
		}
		return v, nil
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as number: %w", value, err)
		}
		return v, nil
	case reflect.Bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("parse enum value %q as boolean: %w", value, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("enum is not supported for %v", t)
	}
}

// isRecursive reports whether t can reach itself through its fields.
func isRecursive(t reflect.Type) bool {
	return reaches(t, t, map[reflect.Type]bool{})
}

func reaches(target, current reflect.Type, seen map[reflect.Type]bool) bool {
	if seen[current] || current.Kind() != reflect.Struct {
		return false
	}
	seen[current] = true

	for i := 0; i < current.NumField(); i++ {
		field := current.Field(i)
		if !field.IsExported() {
			continue
		}
		ft := field.Type
		for ft.Kind() == reflect.Pointer || ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array || ft.Kind() == reflect.Map {
			ft = ft.Elem()
		}
		if ft == target || reaches(target, ft, seen) {
			return true
		}
	}
	return false
}

func defName(t reflect.Type) string {
	if t.Name() != "" {
		return strings.ToLower(t.Name())
	}
	return "anonymousStruct"
}

// JSONString renders the schema, indented with two spaces when indent is true.
func (s *Schema) JSONString(indent bool) (string, error) {
	var (
		out []byte
		err error
	)
	if indent {
		out, err = json.MarshalIndent(s, "", "  ")
	} else {
		out, err = json.Marshal(s)
	}
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema to JSON: %w", err)
	}
	return string(out), nil
}

func (s *Schema) String() string {
	out, err := s.JSONString(false)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return out
}

// ErrInvalidPath is returned by FromProperties for malformed property paths.
var ErrInvalidPath = errors.New("invalid property path")
