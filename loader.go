package funcmcp

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/viant/jsonrpc/transport"
	"github.com/viant/jsonrpc/transport/client/http/sse"
	"github.com/viant/jsonrpc/transport/client/http/streamable"
	"github.com/viant/jsonrpc/transport/client/stdio"
	pclient "github.com/viant/mcp-protocol/client"
	"github.com/viant/mcp/client"
)

// Load connects to an MCP server and binds its tools. The target is a
// registry name, an http(s) URL, or a command line for a stdio server.
// The returned Server owns the connection; Close releases it.
func Load(ctx context.Context, target string, opts ...Option) (*Server, error) {
	o := resolveOptions(opts)
	if resolved, ok := o.registry.Get(target); ok {
		o.logger.Debug("resolved registry target", "name", target, "command", resolved)
		target = resolved
	}

	handler := newClientHandler(o)
	bridge := NewBridge()
	bridge.Start()

	var pc *viantClient
	_, err := bridge.Run(ctx, func(ctx context.Context) (any, error) {
		tr, err := dialTransport(ctx, target, o, handler)
		if err != nil {
			return nil, err
		}
		cli := client.New(o.clientName, o.clientVersion, tr,
			client.WithCapabilities(handler.capabilities()),
			client.WithClientHandler(handler))
		initResult, err := cli.Initialize(ctx)
		if err != nil {
			if closer, ok := tr.(interface{ Close() error }); ok {
				_ = closer.Close()
			}
			return nil, err
		}
		var info struct {
			ServerInfo struct {
				Name    string `json:"name"`
				Version string `json:"version"`
			} `json:"serverInfo"`
		}
		if err := remarshal(initResult, &info); err != nil {
			return nil, err
		}
		pc = &viantClient{
			cli:       cli,
			transport: tr,
			info:      ServerInfo{Name: info.ServerInfo.Name, Version: info.ServerInfo.Version},
		}
		return nil, nil
	})
	if err != nil {
		bridge.Close()
		return nil, &ConnectionError{Target: target, Err: err}
	}

	srv, err := newServer(ctx, pc, bridge, o, target)
	if err != nil {
		_ = pc.Close()
		bridge.Close()
		return nil, err
	}
	srv.info = pc.info
	return srv, nil
}

// Connect binds tools over an already established protocol client. It
// is the seam Load goes through after dialing, exposed so alternative
// transports and in-process servers can reuse the binding layer.
func Connect(ctx context.Context, pc ProtocolClient, opts ...Option) (*Server, error) {
	o := resolveOptions(opts)
	bridge := NewBridge()
	bridge.Start()
	srv, err := newServer(ctx, pc, bridge, o, "in-process")
	if err != nil {
		bridge.Close()
		return nil, err
	}
	return srv, nil
}

// dialTransport builds the JSON-RPC transport implied by the target:
// http(s) URLs use streamable HTTP (or SSE when forced or when the URL
// path ends in /sse), anything else launches a stdio server process.
func dialTransport(ctx context.Context, target string, o options, h *clientHandler) (transport.Transport, error) {
	wireHandler := client.NewHandler(pclient.Handler(h))
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		httpClient := newHTTPClient(o.headers)
		if o.forceSSE || strings.HasSuffix(strings.TrimRight(target, "/"), "/sse") {
			return sse.New(ctx, target,
				sse.WithHandler(wireHandler),
				sse.WithHttpClient(httpClient),
				sse.WithMessageHttpClient(httpClient))
		}
		return streamable.New(ctx, target,
			streamable.WithHandler(wireHandler),
			streamable.WithHTTPClient(httpClient))
	}

	fields := strings.Fields(target)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty server command")
	}
	command, args := fields[0], fields[1:]
	command, args = o.stdio.apply(command, args)
	return stdio.New(command,
		stdio.WithHandler(wireHandler),
		stdio.WithArguments(args...))
}

// newHTTPClient returns an http.Client that injects the configured
// headers into every request.
func newHTTPClient(headers map[string]string) *http.Client {
	if len(headers) == 0 {
		return http.DefaultClient
	}
	return &http.Client{Transport: &headerRoundTripper{headers: headers, next: http.DefaultTransport}}
}

type headerRoundTripper struct {
	headers map[string]string
	next    http.RoundTripper
}

func (h *headerRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	for k, v := range h.headers {
		clone.Header.Set(k, v)
	}
	return h.next.RoundTrip(clone)
}

// bindTools lists the server's tools through the bridge and binds the
// ones passing the filter.
func bindTools(ctx context.Context, pc ProtocolClient, bridge *Bridge, o options, inv invoker) (*ToolCollection, error) {
	result, err := bridge.Run(ctx, func(ctx context.Context) (any, error) {
		descriptors, err := pc.ListTools(ctx)
		if err != nil {
			return nil, err
		}
		return descriptors, nil
	})
	if err != nil {
		return nil, &ConnectionError{Target: "tools/list", Err: err}
	}
	descriptors := result.([]ToolDescriptor)

	var tools []*Tool
	for _, desc := range descriptors {
		t := bindTool(desc, inv)
		if !matchesFilter(t.name, o.toolFilter) {
			o.logger.Debug("tool filtered out", "tool", t.name)
			continue
		}
		tools = append(tools, t)
	}
	return newToolCollection(tools), nil
}

// matchesFilter reports whether name matches at least one glob pattern.
// An empty filter admits everything.
func matchesFilter(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
