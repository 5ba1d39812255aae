// Package jsonschema builds JSON Schema documents, either by reflection over
// Go types or from a flat list of dotted property paths.
//
// [GenerateJSONSchema] derives a schema from a Go type without a value.
// Recursive types are emitted once under $defs and referenced with $ref.
// [FromProperties] describes a data model given as paths such as
// "applicant.address.city" or "children[0].name".
package jsonschema
