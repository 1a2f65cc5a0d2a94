// Package codegen renders typed declarations for tool schemas, so
// callers can work against generated structs, interfaces, or models
// instead of raw maps.
package codegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Format selects the output language.
type Format string

const (
	FormatGo         Format = "go"
	FormatTypeScript Format = "typescript"
	FormatPython     Format = "python"
)

// Filter selects which schemas of a tool are rendered.
type Filter string

const (
	FilterInput  Filter = "input"
	FilterOutput Filter = "output"
	FilterAll    Filter = "all"
)

// ErrUnsupportedFormat is returned for formats Generate cannot render.
var ErrUnsupportedFormat = errors.New("codegen: unsupported format")

// ToolSchemaDef is one tool's schemas as raw JSON Schema maps. A nil
// schema is skipped.
type ToolSchemaDef struct {
	Name         string
	Description  string
	InputSchema  map[string]any
	OutputSchema map[string]any
}

// Generate renders type declarations for the given tools. The output is
// deterministic: tools render in the given order and properties render
// sorted by name.
func Generate(defs []ToolSchemaDef, format Format, filter Filter) (string, error) {
	var r renderer
	switch format {
	case FormatGo:
		r = goRenderer{}
	case FormatTypeScript:
		r = tsRenderer{}
	case FormatPython:
		r = pyRenderer{}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if filter == "" {
		filter = FilterAll
	}

	var b strings.Builder
	b.WriteString(r.header())
	for _, def := range defs {
		if (filter == FilterInput || filter == FilterAll) && def.InputSchema != nil {
			r.renderType(&b, typeName(def.Name)+"Input", def.Description, def.InputSchema)
		}
		if (filter == FilterOutput || filter == FilterAll) && def.OutputSchema != nil {
			r.renderType(&b, typeName(def.Name)+"Output", "", def.OutputSchema)
		}
	}
	return b.String(), nil
}

type renderer interface {
	header() string
	renderType(b *strings.Builder, name, doc string, schema map[string]any)
}

// typeName converts a snake_case tool name into PascalCase.
func typeName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

// property is one resolved schema property.
type property struct {
	name     string
	schema   map[string]any
	required bool
}

// properties extracts the sorted property list of an object schema.
func properties(schema map[string]any) []property {
	required := map[string]bool{}
	if list, ok := schema["required"].([]any); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				required[s] = true
			}
		}
	}
	props, _ := schema["properties"].(map[string]any)
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]property, 0, len(names))
	for _, name := range names {
		ps, _ := props[name].(map[string]any)
		out = append(out, property{name: name, schema: ps, required: required[name]})
	}
	return out
}

func schemaType(schema map[string]any) (typ, format string) {
	if schema == nil {
		return "", ""
	}
	typ, _ = schema["type"].(string)
	format, _ = schema["format"].(string)
	return typ, format
}

func schemaDefault(schema map[string]any) (any, bool) {
	if schema == nil {
		return nil, false
	}
	v, ok := schema["default"]
	return v, ok
}

func defaultLiteral(v any) string {
	switch tv := v.(type) {
	case string:
		return fmt.Sprintf("%q", tv)
	case bool:
		if tv {
			return "true"
		}
		return "false"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%v", tv)
	}
}
