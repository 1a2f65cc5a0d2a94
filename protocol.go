package funcmcp

import "context"

// ToolDescriptor is a capability descriptor as advertised by the server:
// the remote-assigned name, an optional description, the raw JSON input
// schema, and optional metadata. Descriptors are owned by the server; the
// binder copies what it needs into bound form.
type ToolDescriptor struct {
	Name         string
	Description  string
	InputSchema  map[string]any
	OutputSchema map[string]any
	Meta         map[string]any
}

// ResourceDescriptor describes a resource exposed by the server.
type ResourceDescriptor struct {
	URI         string
	Name        string
	Description string
	MIMEType    string
}

// ResourceContent is one content block of a read resource. Text carries
// textual content; Blob carries base64-encoded binary content.
type ResourceContent struct {
	URI      string
	MIMEType string
	Text     string
	Blob     string
}

// PromptArgument describes one argument of a prompt template.
type PromptArgument struct {
	Name        string
	Description string
	Required    bool
}

// PromptDescriptor describes a prompt template exposed by the server.
type PromptDescriptor struct {
	Name        string
	Description string
	Arguments   []PromptArgument
}

// PromptMessage is one rendered message of a prompt.
type PromptMessage struct {
	Role string
	Text string
}

// ContentBlock is one content element of a tool result.
type ContentBlock struct {
	Type string
	Text string
}

// ToolResponse is the raw result of a tool invocation as delivered by the
// protocol client. Hydrated, when non-nil, is a payload already
// deserialized against the tool's output schema; Structured is the plain
// structured payload; Content holds the content blocks.
type ToolResponse struct {
	Hydrated   any
	Structured map[string]any
	Content    []ContentBlock
	IsError    bool
}

// FirstText returns the first text-like content block, if any.
func (r *ToolResponse) FirstText() (string, bool) {
	for _, c := range r.Content {
		if c.Type == "" || c.Type == "text" {
			return c.Text, true
		}
	}
	return "", false
}

// ServerInfo identifies the peer implementation.
type ServerInfo struct {
	Name    string
	Version string
}

// ProtocolClient is the wire-protocol collaborator this package drives.
// It is an opaque capability source and invocation sink: transport
// framing, handshake, and retries are its concern, never this package's.
// The production implementation wraps a viant/mcp client; tests supply
// recording fakes.
//
// All methods are invoked from the connection's bridge loop only.
type ProtocolClient interface {
	// ListTools lists every advertised tool, following pagination.
	ListTools(ctx context.Context) ([]ToolDescriptor, error)

	// ListResources lists advertised resources.
	ListResources(ctx context.Context) ([]ResourceDescriptor, error)

	// ListPrompts lists advertised prompt templates.
	ListPrompts(ctx context.Context) ([]PromptDescriptor, error)

	// CallTool invokes a tool by its remote name. meta is best-effort
	// call metadata; collaborators that cannot carry it may drop it.
	CallTool(ctx context.Context, name string, args map[string]any, meta map[string]any) (*ToolResponse, error)

	// ReadResource reads a resource by URI.
	ReadResource(ctx context.Context, uri string) ([]ResourceContent, error)

	// GetPrompt renders a prompt template with the given arguments.
	GetPrompt(ctx context.Context, name string, args map[string]string) ([]PromptMessage, error)

	// Close tears down the connection.
	Close() error
}
