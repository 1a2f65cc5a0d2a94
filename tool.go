package funcmcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ToolSchema is the bound view of a tool's input schema: the required and
// optional argument name sets plus the raw schema they were parsed from.
type ToolSchema struct {
	required map[string]struct{}
	optional map[string]struct{}
	raw      map[string]any
}

// Required returns the required argument names in sorted order.
func (s ToolSchema) Required() []string { return sortedKeys(s.required) }

// Optional returns the optional argument names in sorted order.
func (s ToolSchema) Optional() []string { return sortedKeys(s.optional) }

// Raw returns the raw JSON input schema the view was built from.
func (s ToolSchema) Raw() map[string]any { return s.raw }

// IsRequired reports whether name is a required argument.
func (s ToolSchema) IsRequired(name string) bool {
	_, ok := s.required[name]
	return ok
}

// IsOptional reports whether name is an optional argument.
func (s ToolSchema) IsOptional(name string) bool {
	_, ok := s.optional[name]
	return ok
}

// missingFrom returns the required arguments absent from args, sorted.
func (s ToolSchema) missingFrom(args map[string]any) []string {
	var missing []string
	for name := range s.required {
		if _, ok := args[name]; !ok {
			missing = append(missing, name)
		}
	}
	return sortStrings(missing)
}

// executor dispatches one tool call. Implementations validate, route
// through the connection bridge, and normalize the response.
type executor func(ctx context.Context, args map[string]any, opts callOptions) (any, error)

// Tool is the local, callable binding for one remote capability. Tools
// are created once per capability at connection time and are immutable:
// Transform derives new tools, it never mutates existing ones.
type Tool struct {
	name         string
	remoteName   string
	description  string
	schema       ToolSchema
	outputSchema map[string]any
	tags         []string
	exec         executor
}

// Name returns the canonical (normalized) tool name.
func (t *Tool) Name() string { return t.name }

// RemoteName returns the name the server advertised, before normalization.
func (t *Tool) RemoteName() string { return t.remoteName }

// Description returns the tool description, synthesized when the server
// supplied none.
func (t *Tool) Description() string { return t.description }

// Schema returns the bound schema view.
func (t *Tool) Schema() ToolSchema { return t.schema }

// OutputSchema returns the raw output schema, or nil when the server
// did not advertise one.
func (t *Tool) OutputSchema() map[string]any { return t.outputSchema }

// Tags returns the tags extracted from the descriptor metadata.
func (t *Tool) Tags() []string { return append([]string(nil), t.tags...) }

// Call invokes the tool and blocks until the server responds. Missing
// required arguments fail with a *ValidationError before any I/O;
// transport or peer failures surface as *ToolExecutionError.
func (t *Tool) Call(ctx context.Context, args map[string]any, opts ...CallOption) (any, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.exec(ctx, args, o)
}

// --- Call options ---

type callOptions struct {
	timeout time.Duration
	meta    map[string]any
}

// CallOption configures a single tool invocation.
type CallOption func(*callOptions)

// WithCallTimeout bounds one invocation. Zero means the connection
// default applies.
func WithCallTimeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// WithCallMeta attaches metadata to one invocation. Delivery is
// best-effort; collaborators that cannot carry metadata drop it.
func WithCallMeta(meta map[string]any) CallOption {
	return func(o *callOptions) { o.meta = meta }
}

// --- Argument encoding ---

// encodeArgs normalizes caller-supplied argument values into plain JSON
// form before dispatch. Structs and nested maps round-trip through
// encoding/json; decimal.Decimal and json.Number survive as exact
// numbers instead of being mangled into float64.
func encodeArgs(args map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(args))
	for name, value := range args {
		encoded, err := encodeValue(value)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", name, err)
		}
		out[name] = encoded
	}
	return out, nil
}

func encodeValue(v any) (any, error) {
	switch tv := v.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return v, nil
	case json.Number:
		return tv, nil
	case decimal.Decimal:
		return json.Number(tv.String()), nil
	case *decimal.Decimal:
		if tv == nil {
			return nil, nil
		}
		return json.Number(tv.String()), nil
	case time.Time:
		return tv.Format(time.RFC3339Nano), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		var out any
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		return out, nil
	}
}
