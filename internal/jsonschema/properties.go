package jsonschema

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Property is one leaf of a data model addressed by a dotted path. A segment
// may carry one or more array suffixes ("items[]", "rows[0][1]"); the index
// itself is ignored since all elements share one schema.
type Property struct {
	Path        string
	Type        string // JSON Schema type of the leaf, "string" when empty
	Format      string
	Description string
	Enum        []any
	Required    bool
}

var segmentPattern = regexp.MustCompile(`^([^\[\]]+)((?:\[\d*\])*)$`)

// FromProperties builds an object schema from leaf properties. Intermediate
// objects and arrays are created as needed; a required leaf makes every
// segment on its path required. A path that treats an existing leaf as an
// object, or vice versa, is an error.
func FromProperties(title string, props []Property) (*Schema, error) {
	root := &Schema{SchemaURI: Draft, Title: title, Type: "object", Properties: map[string]*Schema{}}

	for _, prop := range props {
		if err := insert(root, prop); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func insert(root *Schema, prop Property) error {
	segments := strings.Split(prop.Path, ".")
	node := root

	for i, segment := range segments {
		m := segmentPattern.FindStringSubmatch(segment)
		if m == nil {
			return fmt.Errorf("%w: %q", ErrInvalidPath, prop.Path)
		}
		name, depth := m[1], strings.Count(m[2], "[")
		leaf := i == len(segments)-1

		if prop.Required && !slices.Contains(node.Required, name) {
			node.Required = append(node.Required, name)
		}

		child, exists := node.Properties[name]
		if !exists {
			child = &Schema{}
			node.Properties[name] = child
		}

		elem := child
		for range depth {
			if elem.Type == "" {
				elem.Type = "array"
			}
			if elem.Type != "array" {
				return fmt.Errorf("%w: %q: %s is not an array", ErrInvalidPath, prop.Path, name)
			}
			if elem.Items == nil {
				elem.Items = &Schema{}
			}
			elem = elem.Items
		}
		if exists && depth == 0 && child.Type == "array" {
			return fmt.Errorf("%w: %q: %s is an array", ErrInvalidPath, prop.Path, name)
		}

		if leaf {
			if elem.Type == "object" || len(elem.Properties) > 0 {
				return fmt.Errorf("%w: %q: %s already has nested properties", ErrInvalidPath, prop.Path, name)
			}
			if elem.Type != "" && elem.Type != leafType(prop) {
				return fmt.Errorf("%w: %q: %s is declared twice with different types", ErrInvalidPath, prop.Path, name)
			}
			elem.Type = leafType(prop)
			elem.Format = prop.Format
			elem.Description = prop.Description
			elem.Enum = prop.Enum
			return nil
		}

		switch elem.Type {
		case "":
			elem.Type = "object"
			elem.Properties = map[string]*Schema{}
		case "object":
		default:
			return fmt.Errorf("%w: %q: %s is a %s, not an object", ErrInvalidPath, prop.Path, name, elem.Type)
		}
		node = elem
	}
	return nil
}

func leafType(prop Property) string {
	if prop.Type == "" {
		return "string"
	}
	return prop.Type
}
