package funcmcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

func TestHandlerImplements(t *testing.T) {
	h := newClientHandler(resolveOptions(nil))
	assert.False(t, h.Implements(schema.MethodRootsList))
	assert.False(t, h.Implements(schema.MethodSamplingCreateMessage))
	assert.False(t, h.Implements(schema.MethodElicitationCreate))

	h = newClientHandler(resolveOptions([]Option{
		WithRoots("file:///workspace"),
		WithSampling(func(ctx context.Context, req *SamplingRequest) (*SamplingResult, error) {
			return &SamplingResult{}, nil
		}),
		WithElicitation(func(ctx context.Context, req *ElicitationRequest) (*ElicitationResult, error) {
			return &ElicitationResult{Action: ElicitAccept}, nil
		}),
	}))
	assert.True(t, h.Implements(schema.MethodRootsList))
	assert.True(t, h.Implements(schema.MethodSamplingCreateMessage))
	assert.True(t, h.Implements(schema.MethodElicitationCreate))

	caps := h.capabilities()
	assert.NotNil(t, caps.Roots)
	assert.NotNil(t, caps.Sampling)
	assert.NotNil(t, caps.Elicitation)
}

func TestHandlerRequestIDs(t *testing.T) {
	h := newClientHandler(resolveOptions(nil))
	first := h.NextRequestID()
	second := h.NextRequestID()
	assert.NotEqual(t, first, second)
	assert.Equal(t, second, h.LastRequestID())
}

func TestHandlerListRoots(t *testing.T) {
	h := newClientHandler(resolveOptions([]Option{WithRoots("file:///a", "file:///b")}))

	result, rpcErr := h.ListRoots(context.Background(), &jsonrpc.TypedRequest[*schema.ListRootsRequest]{})

	require.Nil(t, rpcErr)
	require.NotNil(t, result)
	var decoded struct {
		Roots []struct {
			URI string `json:"uri"`
		} `json:"roots"`
	}
	require.NoError(t, remarshal(result, &decoded))
	require.Len(t, decoded.Roots, 2)
	assert.Equal(t, "file:///a", decoded.Roots[0].URI)
}

func TestHandlerElicit(t *testing.T) {
	var seen *ElicitationRequest
	h := newClientHandler(resolveOptions([]Option{
		WithElicitation(func(ctx context.Context, req *ElicitationRequest) (*ElicitationResult, error) {
			seen = req
			return &ElicitationResult{Action: ElicitAccept, Content: map[string]any{"email": "a@b.c"}}, nil
		}),
	}))

	req := &jsonrpc.TypedRequest[*schema.ElicitRequest]{Request: &schema.ElicitRequest{
		Params: schema.ElicitRequestParams{
			Message: "need your email",
			RequestedSchema: schema.ElicitRequestParamsRequestedSchema{
				Type:       "object",
				Properties: map[string]any{"email": map[string]any{"type": "string"}},
				Required:   []string{"email"},
			},
		},
	}}
	result, rpcErr := h.Elicit(context.Background(), req)

	require.Nil(t, rpcErr)
	assert.Equal(t, schema.ElicitResultActionAccept, result.Action)
	assert.Equal(t, "a@b.c", result.Content["email"])
	require.NotNil(t, seen)
	assert.Equal(t, "need your email", seen.Message)
	assert.Contains(t, seen.Schema["properties"].(map[string]any), "email")
}

func TestHandlerElicitError(t *testing.T) {
	h := newClientHandler(resolveOptions([]Option{
		WithElicitation(func(ctx context.Context, req *ElicitationRequest) (*ElicitationResult, error) {
			return nil, errors.New("user walked away")
		}),
	}))

	_, rpcErr := h.Elicit(context.Background(), &jsonrpc.TypedRequest[*schema.ElicitRequest]{
		Request: &schema.ElicitRequest{},
	})

	require.NotNil(t, rpcErr)
	assert.Contains(t, rpcErr.Message, "user walked away")
}

func TestHandlerCreateMessage(t *testing.T) {
	h := newClientHandler(resolveOptions([]Option{
		WithSampling(func(ctx context.Context, req *SamplingRequest) (*SamplingResult, error) {
			require.Len(t, req.Messages, 1)
			assert.Equal(t, "summarize this", req.Messages[0].Text)
			assert.Equal(t, 128, req.MaxTokens)
			return &SamplingResult{Model: "test-model", Text: "summary"}, nil
		}),
	}))

	req := &jsonrpc.TypedRequest[*schema.CreateMessageRequest]{Request: &schema.CreateMessageRequest{}}
	var params schema.CreateMessageRequestParams
	require.NoError(t, remarshal(map[string]any{
		"messages": []map[string]any{
			{"role": "user", "content": map[string]any{"type": "text", "text": "summarize this"}},
		},
		"maxTokens": 128,
	}, &params))
	req.Request.Params = params

	result, rpcErr := h.CreateMessage(context.Background(), req)

	require.Nil(t, rpcErr)
	var decoded struct {
		Model string `json:"model"`
		Role  string `json:"role"`
	}
	require.NoError(t, remarshal(result, &decoded))
	assert.Equal(t, "test-model", decoded.Model)
	assert.Equal(t, "assistant", decoded.Role)
}
