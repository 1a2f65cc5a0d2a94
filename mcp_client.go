package funcmcp

import (
	"context"
	"io"

	"github.com/viant/jsonrpc/transport"
	"github.com/viant/mcp-protocol/schema"
	"github.com/viant/mcp/client"
)

// viantClient adapts a viant/mcp client to the ProtocolClient surface.
// Wire-level results are bridged through JSON so the adapter tolerates
// field-shape drift between protocol schema revisions.
type viantClient struct {
	cli       *client.Client
	transport transport.Transport
	info      ServerInfo
}

var _ ProtocolClient = (*viantClient)(nil)

func (v *viantClient) ListTools(ctx context.Context) ([]ToolDescriptor, error) {
	var out []ToolDescriptor
	var cursor *string
	for {
		result, err := v.cli.ListTools(ctx, cursor)
		if err != nil {
			return nil, err
		}
		var page struct {
			Tools []struct {
				Name         string         `json:"name"`
				Description  string         `json:"description"`
				InputSchema  map[string]any `json:"inputSchema"`
				OutputSchema map[string]any `json:"outputSchema"`
				Meta         map[string]any `json:"_meta"`
			} `json:"tools"`
			NextCursor *string `json:"nextCursor"`
		}
		if err := remarshal(result, &page); err != nil {
			return nil, err
		}
		for _, t := range page.Tools {
			out = append(out, ToolDescriptor{
				Name:         t.Name,
				Description:  t.Description,
				InputSchema:  t.InputSchema,
				OutputSchema: t.OutputSchema,
				Meta:         t.Meta,
			})
		}
		if page.NextCursor == nil || *page.NextCursor == "" {
			return out, nil
		}
		cursor = page.NextCursor
	}
}

func (v *viantClient) ListResources(ctx context.Context) ([]ResourceDescriptor, error) {
	var out []ResourceDescriptor
	var cursor *string
	for {
		result, err := v.cli.ListResources(ctx, cursor)
		if err != nil {
			return nil, err
		}
		var page struct {
			Resources []struct {
				URI         string `json:"uri"`
				Name        string `json:"name"`
				Description string `json:"description"`
				MIMEType    string `json:"mimeType"`
			} `json:"resources"`
			NextCursor *string `json:"nextCursor"`
		}
		if err := remarshal(result, &page); err != nil {
			return nil, err
		}
		for _, r := range page.Resources {
			out = append(out, ResourceDescriptor{
				URI:         r.URI,
				Name:        r.Name,
				Description: r.Description,
				MIMEType:    r.MIMEType,
			})
		}
		if page.NextCursor == nil || *page.NextCursor == "" {
			return out, nil
		}
		cursor = page.NextCursor
	}
}

func (v *viantClient) ListPrompts(ctx context.Context) ([]PromptDescriptor, error) {
	var out []PromptDescriptor
	var cursor *string
	for {
		result, err := v.cli.ListPrompts(ctx, cursor)
		if err != nil {
			return nil, err
		}
		var page struct {
			Prompts []struct {
				Name        string `json:"name"`
				Description string `json:"description"`
				Arguments   []struct {
					Name        string `json:"name"`
					Description string `json:"description"`
					Required    bool   `json:"required"`
				} `json:"arguments"`
			} `json:"prompts"`
			NextCursor *string `json:"nextCursor"`
		}
		if err := remarshal(result, &page); err != nil {
			return nil, err
		}
		for _, p := range page.Prompts {
			desc := PromptDescriptor{Name: p.Name, Description: p.Description}
			for _, a := range p.Arguments {
				desc.Arguments = append(desc.Arguments, PromptArgument{
					Name:        a.Name,
					Description: a.Description,
					Required:    a.Required,
				})
			}
			out = append(out, desc)
		}
		if page.NextCursor == nil || *page.NextCursor == "" {
			return out, nil
		}
		cursor = page.NextCursor
	}
}

func (v *viantClient) CallTool(ctx context.Context, name string, args, meta map[string]any) (*ToolResponse, error) {
	raw := map[string]any{"name": name, "arguments": args}
	if len(meta) > 0 {
		raw["_meta"] = meta
	}
	var params schema.CallToolRequestParams
	if err := remarshal(raw, &params); err != nil {
		return nil, err
	}
	result, err := v.cli.CallTool(ctx, &params)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		StructuredContent map[string]any `json:"structuredContent"`
		IsError           *bool          `json:"isError"`
	}
	if err := remarshal(result, &decoded); err != nil {
		return nil, err
	}
	resp := &ToolResponse{
		Structured: decoded.StructuredContent,
		IsError:    decoded.IsError != nil && *decoded.IsError,
	}
	for _, c := range decoded.Content {
		resp.Content = append(resp.Content, ContentBlock{Type: c.Type, Text: c.Text})
	}
	return resp, nil
}

func (v *viantClient) ReadResource(ctx context.Context, uri string) ([]ResourceContent, error) {
	var params schema.ReadResourceRequestParams
	if err := remarshal(map[string]any{"uri": uri}, &params); err != nil {
		return nil, err
	}
	result, err := v.cli.ReadResource(ctx, &params)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
			Blob     string `json:"blob"`
		} `json:"contents"`
	}
	if err := remarshal(result, &decoded); err != nil {
		return nil, err
	}
	out := make([]ResourceContent, 0, len(decoded.Contents))
	for _, c := range decoded.Contents {
		out = append(out, ResourceContent{URI: c.URI, MIMEType: c.MIMEType, Text: c.Text, Blob: c.Blob})
	}
	return out, nil
}

func (v *viantClient) GetPrompt(ctx context.Context, name string, args map[string]string) ([]PromptMessage, error) {
	raw := map[string]any{"name": name}
	if len(args) > 0 {
		raw["arguments"] = args
	}
	var params schema.GetPromptRequestParams
	if err := remarshal(raw, &params); err != nil {
		return nil, err
	}
	result, err := v.cli.GetPrompt(ctx, &params)
	if err != nil {
		return nil, err
	}
	var decoded struct {
		Messages []struct {
			Role    string `json:"role"`
			Content struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
	}
	if err := remarshal(result, &decoded); err != nil {
		return nil, err
	}
	out := make([]PromptMessage, 0, len(decoded.Messages))
	for _, m := range decoded.Messages {
		out = append(out, PromptMessage{Role: m.Role, Text: m.Content.Text})
	}
	return out, nil
}

func (v *viantClient) Close() error {
	if closer, ok := v.transport.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
