package codegen

import (
	"fmt"
	"strings"
)

type pyRenderer struct{}

func (pyRenderer) header() string {
	return "# Generated from tool schemas. Do not edit.\n" +
		"from __future__ import annotations\n\n" +
		"from datetime import date, datetime\n" +
		"from uuid import UUID\n\n" +
		"from pydantic import BaseModel, Field\n\n\n"
}

func (pyRenderer) renderType(b *strings.Builder, name, doc string, schema map[string]any) {
	fmt.Fprintf(b, "class %s(BaseModel):\n", name)
	if doc != "" {
		fmt.Fprintf(b, "    \"\"\"%s\"\"\"\n", doc)
	}
	props := properties(schema)
	if len(props) == 0 {
		b.WriteString("    pass\n")
	}
	// Required fields first, Python rejects defaults before non-defaults.
	for _, p := range props {
		if p.required {
			fmt.Fprintf(b, "    %s: %s\n", p.name, pyFieldType(p.schema))
		}
	}
	for _, p := range props {
		if p.required {
			continue
		}
		def := "None"
		if v, ok := schemaDefault(p.schema); ok {
			def = pyLiteral(v)
		}
		fmt.Fprintf(b, "    %s: %s | None = Field(default=%s)\n", p.name, pyFieldType(p.schema), def)
	}
	b.WriteString("\n\n")
}

func pyFieldType(schema map[string]any) string {
	typ, format := schemaType(schema)
	switch typ {
	case "string":
		switch format {
		case "date-time":
			return "datetime"
		case "date":
			return "date"
		case "uuid":
			return "UUID"
		}
		return "str"
	case "integer":
		return "int"
	case "number":
		return "float"
	case "boolean":
		return "bool"
	case "array":
		items, _ := schema["items"].(map[string]any)
		return "list[" + pyFieldType(items) + "]"
	case "object":
		return "dict[str, object]"
	}
	return "object"
}

func pyLiteral(v any) string {
	switch tv := v.(type) {
	case bool:
		if tv {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	}
	return defaultLiteral(v)
}
