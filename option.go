package funcmcp

import (
	"context"
	"log/slog"
	"time"

	"github.com/funcmcp/funcmcp-go/registry"
)

// Option configures a connection via the functional options pattern.
type Option func(*options)

// SamplingRequest is a server-initiated request for model output.
type SamplingRequest struct {
	Messages      []PromptMessage
	SystemPrompt  string
	MaxTokens     int
	Temperature   float64
	StopSequences []string
}

// SamplingResult carries the model output back to the server.
type SamplingResult struct {
	Model      string
	Role       string
	Text       string
	StopReason string
}

// SamplingHandler answers server-initiated sampling requests.
type SamplingHandler func(ctx context.Context, req *SamplingRequest) (*SamplingResult, error)

// ElicitationRequest is a server-initiated request for user input.
type ElicitationRequest struct {
	Message string
	Schema  map[string]any
}

// ElicitationAction is the user's disposition of an elicitation request.
type ElicitationAction string

const (
	ElicitAccept  ElicitationAction = "accept"
	ElicitDecline ElicitationAction = "decline"
	ElicitCancel  ElicitationAction = "cancel"
)

// ElicitationResult carries the user's answer back to the server.
type ElicitationResult struct {
	Action  ElicitationAction
	Content map[string]any
}

// ElicitationHandler answers server-initiated elicitation requests.
type ElicitationHandler func(ctx context.Context, req *ElicitationRequest) (*ElicitationResult, error)

// options holds all configurable fields set via Option functions.
type options struct {
	timeout       time.Duration
	headers       map[string]string
	registry      registry.Registry
	roots         []string
	sampling      SamplingHandler
	elicitation   ElicitationHandler
	toolFilter    []string
	logger        *slog.Logger
	clientName    string
	clientVersion string
	stdio         *StdioConfig
	forceSSE      bool
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (o *options) applyDefaults() {
	if o.timeout == 0 {
		o.timeout = DefaultCallTimeout
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.clientName == "" {
		o.clientName = DefaultClientName
	}
	if o.clientVersion == "" {
		o.clientVersion = Version
	}
	if o.registry == nil {
		o.registry = registry.Default()
	}
}

// resolveOptions applies all option functions and fills defaults.
func resolveOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	o.applyDefaults()
	return o
}

// --- Transport & connection ---

// WithTimeout sets the default per-call timeout. Individual calls can
// override it via WithCallTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithHeaders adds HTTP headers to every request on HTTP transports.
// Stdio connections ignore headers.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) {
		if o.headers == nil {
			o.headers = map[string]string{}
		}
		for k, v := range headers {
			o.headers[k] = v
		}
	}
}

// WithSSE forces the legacy SSE transport for HTTP targets instead of
// streamable HTTP.
func WithSSE() Option {
	return func(o *options) { o.forceSSE = true }
}

// WithStdioConfig supplies environment, working directory, and extra
// arguments for stdio server processes.
func WithStdioConfig(cfg *StdioConfig) Option {
	return func(o *options) { o.stdio = cfg }
}

// WithRegistry overrides the named-server registry consulted by Load.
func WithRegistry(r registry.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithClientInfo sets the client name and version announced during the
// protocol handshake.
func WithClientInfo(name, version string) Option {
	return func(o *options) {
		o.clientName = name
		o.clientVersion = version
	}
}

// --- Capabilities ---

// WithRoots advertises filesystem roots to the server.
func WithRoots(roots ...string) Option {
	return func(o *options) { o.roots = append(o.roots, roots...) }
}

// WithSampling handles server-initiated sampling requests.
func WithSampling(h SamplingHandler) Option {
	return func(o *options) { o.sampling = h }
}

// WithElicitation handles server-initiated elicitation requests.
func WithElicitation(h ElicitationHandler) Option {
	return func(o *options) { o.elicitation = h }
}

// --- Binding ---

// WithToolFilter restricts binding to tools whose canonical names match
// at least one of the given glob patterns.
func WithToolFilter(patterns ...string) Option {
	return func(o *options) { o.toolFilter = append(o.toolFilter, patterns...) }
}

// --- Observability ---

// WithLogger sets the structured logger for connection lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}
