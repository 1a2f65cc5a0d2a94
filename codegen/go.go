package codegen

import (
	"fmt"
	"strings"
)

type goRenderer struct{}

func (goRenderer) header() string {
	return "// Code generated from tool schemas. DO NOT EDIT.\n\n"
}

func (goRenderer) renderType(b *strings.Builder, name, doc string, schema map[string]any) {
	if doc != "" {
		fmt.Fprintf(b, "// %s: %s\n", name, doc)
	}
	fmt.Fprintf(b, "type %s struct {\n", name)
	for _, p := range properties(schema) {
		goType := goFieldType(p.schema)
		if !p.required {
			goType = "*" + goType
		}
		tag := p.name
		if !p.required {
			tag += ",omitempty"
		}
		line := fmt.Sprintf("\t%s %s `json:%q`", typeName(p.name), goType, tag)
		if def, ok := schemaDefault(p.schema); ok {
			line += fmt.Sprintf(" // default: %s", defaultLiteral(def))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString("}\n\n")
}

func goFieldType(schema map[string]any) string {
	typ, format := schemaType(schema)
	switch typ {
	case "string":
		switch format {
		case "date-time", "date":
			return "time.Time"
		case "uuid":
			return "uuid.UUID"
		}
		return "string"
	case "integer":
		return "int64"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "array":
		items, _ := schema["items"].(map[string]any)
		return "[]" + goFieldType(items)
	case "object":
		return "map[string]any"
	}
	return "any"
}
