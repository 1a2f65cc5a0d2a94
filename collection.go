package funcmcp

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// ToolCollection is an ordered, name-indexed snapshot of bound tools.
// Order follows the server's advertisement order; when two descriptors
// normalize to the same name the later binding wins while keeping the
// first position. Collections are immutable after construction.
type ToolCollection struct {
	order []string
	tools map[string]*Tool
}

func newToolCollection(tools []*Tool) *ToolCollection {
	c := &ToolCollection{tools: make(map[string]*Tool, len(tools))}
	for _, t := range tools {
		if _, seen := c.tools[t.name]; !seen {
			c.order = append(c.order, t.name)
		}
		c.tools[t.name] = t
	}
	return c
}

// Lookup returns the tool bound under name. An unknown name fails with
// a *LookupError that enumerates the available names.
func (c *ToolCollection) Lookup(name string) (*Tool, error) {
	if t, ok := c.tools[name]; ok {
		return t, nil
	}
	return nil, &LookupError{Name: name, Available: c.Names()}
}

// Get returns the tool bound under name, or nil when absent.
func (c *ToolCollection) Get(name string) *Tool {
	return c.tools[name]
}

// Count returns the number of bound tools.
func (c *ToolCollection) Count() int { return len(c.order) }

// Names returns the tool names in advertisement order.
func (c *ToolCollection) Names() []string {
	return append([]string(nil), c.order...)
}

// Tools returns the bound tools in advertisement order.
func (c *ToolCollection) Tools() []*Tool {
	out := make([]*Tool, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.tools[name])
	}
	return out
}

// ExportedTool is a self-contained callable view of one bound tool,
// suitable for handing to dispatch layers that should not depend on
// this package's types.
type ExportedTool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Call        func(ctx context.Context, args map[string]any) (any, error)
}

// Export returns callable views of every tool in order.
func (c *ToolCollection) Export() []ExportedTool {
	out := make([]ExportedTool, 0, len(c.order))
	for _, name := range c.order {
		t := c.tools[name]
		out = append(out, ExportedTool{
			Name:        t.name,
			Description: t.description,
			InputSchema: t.schema.raw,
			Call: func(ctx context.Context, args map[string]any) (any, error) {
				return t.Call(ctx, args)
			},
		})
	}
	return out
}

// ExportAnthropic returns the collection in the format expected by the
// Anthropic Messages API tools parameter.
func (c *ToolCollection) ExportAnthropic() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(c.order))
	for _, name := range c.order {
		t := c.tools[name]
		out = append(out, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        t.name,
				Description: param.NewOpt(t.description),
				InputSchema: anthropicSchema(t.schema.raw),
			},
		})
	}
	return out
}

func anthropicSchema(raw map[string]any) anthropic.ToolInputSchemaParam {
	schema := anthropic.ToolInputSchemaParam{}
	if raw == nil {
		return schema
	}
	if props, ok := raw["properties"]; ok {
		schema.Properties = props
	}
	if req, ok := raw["required"].([]any); ok {
		required := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				required = append(required, s)
			}
		}
		schema.Required = required
	}
	return schema
}
