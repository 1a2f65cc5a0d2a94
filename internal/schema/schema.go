// Package schema derives JSON Schema fragments from Go types, used to
// retype tool arguments in derived tools.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// TypeOf produces a JSON Schema fragment for a Go type T. It uses
// struct tags (json, jsonschema) to derive the shape.
func TypeOf[T any]() map[string]any {
	var zero T
	s := jsonschema.Reflect(&zero)

	// The top-level schema wraps the actual type; resolve $ref into
	// $defs to reach the real definition.
	return propertySchema(extractRoot(s))
}

// extractRoot resolves the root schema, following $ref to $defs if needed.
func extractRoot(s *jsonschema.Schema) *jsonschema.Schema {
	if s.Ref != "" && s.Definitions != nil {
		for _, def := range s.Definitions {
			if def.Type == "object" {
				return def
			}
		}
	}
	return s
}

// propertySchema converts a single schema node to a serializable map.
func propertySchema(s *jsonschema.Schema) map[string]any {
	m := make(map[string]any)

	if s.Type != "" {
		m["type"] = s.Type
	}
	if s.Format != "" {
		m["format"] = s.Format
	}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if s.Default != nil {
		m["default"] = s.Default
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}

	// Handle pointer types: invopop/jsonschema uses anyOf for nullable types
	if len(s.AnyOf) > 0 {
		for _, sub := range s.AnyOf {
			if sub.Type != "null" && sub.Type != "" {
				m["type"] = sub.Type
				break
			}
		}
	}

	// Nested object properties
	if s.Properties != nil {
		m["type"] = "object"
		m["properties"] = schemaProperties(s)
		if len(s.Required) > 0 {
			m["required"] = s.Required
		}
	}

	// Array items
	if s.Items != nil {
		m["items"] = propertySchema(s.Items)
	}

	return m
}

// schemaProperties converts an ordered map of properties into a plain
// map[string]any.
func schemaProperties(s *jsonschema.Schema) map[string]any {
	if s.Properties == nil {
		return nil
	}
	props := make(map[string]any)
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		props[pair.Key] = propertySchema(pair.Value)
	}
	return props
}

// TypeOfJSON is a convenience that returns the fragment as raw JSON bytes.
func TypeOfJSON[T any]() (json.RawMessage, error) {
	return json.Marshal(TypeOf[T]())
}
