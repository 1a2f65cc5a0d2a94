package funcmcp

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// invoker routes a validated call to the remote peer. *Server is the
// production implementation; tests substitute their own.
type invoker interface {
	invoke(ctx context.Context, remoteName string, args map[string]any, opts callOptions) (*ToolResponse, error)
}

// bindTool turns one advertised capability descriptor into a local Tool.
// The bound name is the canonical form of the advertised name; the
// description is synthesized when the server supplied none.
func bindTool(desc ToolDescriptor, inv invoker) *Tool {
	name := canonicalName(desc.Name)
	description := strings.TrimSpace(desc.Description)
	if description == "" {
		description = fmt.Sprintf("MCP tool: %s", name)
	}
	schema := parseSchema(desc.InputSchema)
	t := &Tool{
		name:         name,
		remoteName:   desc.Name,
		description:  description,
		schema:       schema,
		outputSchema: desc.OutputSchema,
		tags:         descriptorTags(desc.Meta),
	}
	t.exec = func(ctx context.Context, args map[string]any, opts callOptions) (any, error) {
		if missing := schema.missingFrom(args); len(missing) > 0 {
			return nil, &ValidationError{Tool: t.name, Missing: missing}
		}
		encoded, err := encodeArgs(args)
		if err != nil {
			return nil, &ToolExecutionError{Tool: t.name, Err: err}
		}
		resp, err := inv.invoke(ctx, desc.Name, encoded, opts)
		if err != nil {
			return nil, &ToolExecutionError{Tool: t.name, Err: err}
		}
		return normalizeResponse(t.name, resp)
	}
	return t
}

// canonicalName normalizes an advertised tool name into snake_case:
// camelCase humps split on the case boundary, separators collapse to a
// single underscore, and the result is lowercased.
func canonicalName(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	runes := []rune(name)
	lastUnderscore := false
	for i, r := range runes {
		switch {
		case r == '-' || r == ' ' || r == '.' || r == '_':
			if b.Len() > 0 && !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		case unicode.IsUpper(r):
			// Split before an upper rune that starts a new hump:
			// after a lower/digit, or before a trailing lower in an
			// acronym run (HTTPServer -> http_server).
			if i > 0 && !lastUnderscore {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false
		default:
			b.WriteRune(r)
			lastUnderscore = false
		}
	}
	return strings.Trim(b.String(), "_")
}

// parseSchema builds the required/optional name sets from a raw JSON
// input schema. Descriptors without properties bind with empty sets.
func parseSchema(raw map[string]any) ToolSchema {
	s := ToolSchema{
		required: map[string]struct{}{},
		optional: map[string]struct{}{},
		raw:      raw,
	}
	if raw == nil {
		return s
	}
	required := map[string]struct{}{}
	if list, ok := raw["required"].([]any); ok {
		for _, item := range list {
			if name, ok := item.(string); ok {
				required[name] = struct{}{}
			}
		}
	}
	if props, ok := raw["properties"].(map[string]any); ok {
		for name := range props {
			if _, ok := required[name]; ok {
				s.required[name] = struct{}{}
			} else {
				s.optional[name] = struct{}{}
			}
		}
	}
	// Required names with no property entry still gate validation.
	for name := range required {
		if _, ok := s.required[name]; !ok {
			s.required[name] = struct{}{}
		}
	}
	return s
}

// descriptorTags extracts tags from tool metadata. Servers built on
// FastMCP publish them under _fastmcp.tags; plain tags is the fallback.
func descriptorTags(meta map[string]any) []string {
	if meta == nil {
		return nil
	}
	if fm, ok := meta["_fastmcp"].(map[string]any); ok {
		if tags := stringList(fm["tags"]); tags != nil {
			return tags
		}
	}
	return stringList(meta["tags"])
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeResponse unwraps a tool response into its most useful form:
// hydrated value first, then structured content, then the first text
// block, then the raw response itself.
func normalizeResponse(toolName string, resp *ToolResponse) (any, error) {
	if resp == nil {
		return nil, nil
	}
	if resp.IsError {
		msg := "tool reported an error"
		if text, ok := resp.FirstText(); ok && text != "" {
			msg = text
		}
		return nil, &ToolExecutionError{Tool: toolName, Err: fmt.Errorf("%s", msg)}
	}
	if resp.Hydrated != nil {
		return resp.Hydrated, nil
	}
	if resp.Structured != nil {
		return resp.Structured, nil
	}
	if text, ok := resp.FirstText(); ok {
		return text, nil
	}
	return resp, nil
}
