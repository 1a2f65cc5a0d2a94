package funcmcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/viant/afs"
	"github.com/viant/afs/file"

	"github.com/funcmcp/funcmcp-go/codegen"
)

// Server is a live connection to one MCP server: the bound tool
// collection plus resource and prompt access. All remote traffic is
// serialized through the connection's bridge.
type Server struct {
	pc        ProtocolClient
	bridge    *Bridge
	tools     *ToolCollection
	resources []ResourceDescriptor
	prompts   []PromptDescriptor
	info      ServerInfo
	target    string
	opts      options
	logger    *slog.Logger

	closeOnce sync.Once
	closeErr  error
}

func newServer(ctx context.Context, pc ProtocolClient, bridge *Bridge, o options, target string) (*Server, error) {
	srv := &Server{
		pc:     pc,
		bridge: bridge,
		target: target,
		opts:   o,
		logger: o.logger,
	}
	tools, err := bindTools(ctx, pc, bridge, o, srv)
	if err != nil {
		return nil, err
	}
	srv.tools = tools

	// Resources and prompts are optional server capabilities; a failed
	// listing degrades to empty instead of failing the connection.
	if result, err := bridge.Run(ctx, func(ctx context.Context) (any, error) {
		return pc.ListResources(ctx)
	}); err != nil {
		srv.logger.Debug("resource listing unavailable", "target", target, "error", err)
	} else {
		srv.resources, _ = result.([]ResourceDescriptor)
	}
	if result, err := bridge.Run(ctx, func(ctx context.Context) (any, error) {
		return pc.ListPrompts(ctx)
	}); err != nil {
		srv.logger.Debug("prompt listing unavailable", "target", target, "error", err)
	} else {
		srv.prompts, _ = result.([]PromptDescriptor)
	}

	srv.logger.Debug("server connected", "target", target, "tools", tools.Count())
	return srv, nil
}

// invoke routes one validated tool call through the bridge, applying
// the per-call or default timeout and tagging the call with an id.
func (s *Server) invoke(ctx context.Context, remoteName string, args map[string]any, opts callOptions) (*ToolResponse, error) {
	timeout := opts.timeout
	if timeout == 0 {
		timeout = s.opts.timeout
	}
	meta := cloneMap(opts.meta)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["funcmcp/callId"] = uuid.NewString()

	result, err := s.bridge.Run(ctx, func(ctx context.Context) (any, error) {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return s.pc.CallTool(ctx, remoteName, args, meta)
	})
	if err != nil {
		return nil, err
	}
	resp, _ := result.(*ToolResponse)
	return resp, nil
}

// Tools returns the bound tool collection.
func (s *Server) Tools() *ToolCollection { return s.tools }

// Call looks up a bound tool by name and invokes it.
func (s *Server) Call(ctx context.Context, name string, args map[string]any, opts ...CallOption) (any, error) {
	tool, err := s.tools.Lookup(name)
	if err != nil {
		return nil, err
	}
	return tool.Call(ctx, args, opts...)
}

// Info returns the name and version the server announced during the
// handshake.
func (s *Server) Info() ServerInfo { return s.info }

// Resources returns the resources advertised at connection time.
// Servers without resource support yield an empty list; observing new
// resources requires a new connection.
func (s *Server) Resources() []ResourceDescriptor {
	return append([]ResourceDescriptor(nil), s.resources...)
}

// ReadResource reads a resource and returns its first text content.
func (s *Server) ReadResource(ctx context.Context, uri string) (string, error) {
	result, err := s.bridge.Run(ctx, func(ctx context.Context) (any, error) {
		return s.pc.ReadResource(ctx, uri)
	})
	if err != nil {
		return "", err
	}
	contents, _ := result.([]ResourceContent)
	for _, c := range contents {
		if c.Text != "" {
			return c.Text, nil
		}
	}
	return "", fmt.Errorf("resource %s has no text content", uri)
}

// Prompts returns the prompts advertised at connection time. Servers
// without prompt support yield an empty list.
func (s *Server) Prompts() []PromptDescriptor {
	return append([]PromptDescriptor(nil), s.prompts...)
}

// GetPrompt renders a prompt to text, one role-prefixed line per
// message.
func (s *Server) GetPrompt(ctx context.Context, name string, args map[string]string) (string, error) {
	result, err := s.bridge.Run(ctx, func(ctx context.Context) (any, error) {
		return s.pc.GetPrompt(ctx, name, args)
	})
	if err != nil {
		return "", err
	}
	messages, _ := result.([]PromptMessage)
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		lines = append(lines, fmt.Sprintf("[%s] %s", m.Role, m.Text))
	}
	return strings.Join(lines, "\n"), nil
}

// GenerateTypes renders type declarations for the bound tools in the
// given output format. Unsupported formats fail with a *ConfigError.
func (s *Server) GenerateTypes(format codegen.Format, filter codegen.Filter) (string, error) {
	defs := make([]codegen.ToolSchemaDef, 0, s.tools.Count())
	for _, t := range s.tools.Tools() {
		defs = append(defs, codegen.ToolSchemaDef{
			Name:         t.Name(),
			Description:  t.Description(),
			InputSchema:  t.Schema().Raw(),
			OutputSchema: t.OutputSchema(),
		})
	}
	out, err := codegen.Generate(defs, format, filter)
	if err != nil {
		return "", &ConfigError{Reason: "type generation failed", Err: err}
	}
	return out, nil
}

// WriteTypes generates type declarations and writes them to the given
// destination URL or path.
func (s *Server) WriteTypes(ctx context.Context, dest string, format codegen.Format, filter codegen.Filter) error {
	out, err := s.GenerateTypes(format, filter)
	if err != nil {
		return err
	}
	fs := afs.New()
	if err := fs.Upload(ctx, dest, file.DefaultFileOsMode, strings.NewReader(out)); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("cannot write generated types to %s", dest), Err: err}
	}
	return nil
}

// Close shuts down the connection and its bridge. Close is idempotent;
// tool calls after Close fail with ErrBridgeClosed.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.pc.Close()
		s.bridge.Close()
		s.logger.Debug("server closed", "target", s.target)
	})
	return s.closeErr
}
