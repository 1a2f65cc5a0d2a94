package codegen

import (
	"fmt"
	"strings"
)

type tsRenderer struct{}

func (tsRenderer) header() string {
	return "// Generated from tool schemas. Do not edit.\n\n"
}

func (tsRenderer) renderType(b *strings.Builder, name, doc string, schema map[string]any) {
	if doc != "" {
		fmt.Fprintf(b, "/** %s */\n", doc)
	}
	fmt.Fprintf(b, "export interface %s {\n", name)
	for _, p := range properties(schema) {
		if def, ok := schemaDefault(p.schema); ok {
			fmt.Fprintf(b, "  /** @default %s */\n", defaultLiteral(def))
		}
		optional := ""
		if !p.required {
			optional = "?"
		}
		fmt.Fprintf(b, "  %s%s: %s;\n", p.name, optional, tsFieldType(p.schema))
	}
	b.WriteString("}\n\n")
}

func tsFieldType(schema map[string]any) string {
	typ, format := schemaType(schema)
	switch typ {
	case "string":
		if format == "date-time" || format == "date" {
			return "Date | string"
		}
		return "string"
	case "integer", "number":
		return "number"
	case "boolean":
		return "boolean"
	case "array":
		items, _ := schema["items"].(map[string]any)
		return tsFieldType(items) + "[]"
	case "object":
		return "Record<string, unknown>"
	case "null":
		return "null"
	}
	return "unknown"
}
