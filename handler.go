package funcmcp

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/viant/jsonrpc"
	"github.com/viant/mcp-protocol/schema"
)

// clientHandler answers server-initiated requests: roots listing,
// sampling, and elicitation. It advertises only the capabilities the
// connection was configured with.
type clientHandler struct {
	roots       []string
	sampling    SamplingHandler
	elicitation ElicitationHandler
	lastID      atomic.Int64
}

func newClientHandler(o options) *clientHandler {
	return &clientHandler{
		roots:       o.roots,
		sampling:    o.sampling,
		elicitation: o.elicitation,
	}
}

func (h *clientHandler) Notify(ctx context.Context, n *jsonrpc.Notification) error { return nil }

func (h *clientHandler) NextRequestID() jsonrpc.RequestId {
	return h.lastID.Add(1)
}

func (h *clientHandler) LastRequestID() jsonrpc.RequestId {
	return h.lastID.Load()
}

func (h *clientHandler) Implements(method string) bool {
	switch method {
	case schema.MethodRootsList:
		return len(h.roots) > 0
	case schema.MethodSamplingCreateMessage:
		return h.sampling != nil
	case schema.MethodElicitationCreate:
		return h.elicitation != nil
	}
	return false
}

func (h *clientHandler) Init(ctx context.Context, _ *schema.ClientCapabilities) {}

func (h *clientHandler) OnNotification(ctx context.Context, _ *jsonrpc.Notification) {}

// capabilities announces the client capabilities implied by the
// configured handlers.
func (h *clientHandler) capabilities() schema.ClientCapabilities {
	caps := schema.ClientCapabilities{}
	if len(h.roots) > 0 {
		caps.Roots = &schema.ClientCapabilitiesRoots{}
	}
	if h.sampling != nil {
		caps.Sampling = &schema.ClientCapabilitiesSampling{}
	}
	if h.elicitation != nil {
		caps.Elicitation = &schema.ClientCapabilitiesElicitation{}
	}
	return caps
}

func (h *clientHandler) ListRoots(ctx context.Context, _ *jsonrpc.TypedRequest[*schema.ListRootsRequest]) (*schema.ListRootsResult, *jsonrpc.Error) {
	roots := make([]map[string]any, 0, len(h.roots))
	for _, uri := range h.roots {
		roots = append(roots, map[string]any{"uri": uri})
	}
	var result schema.ListRootsResult
	if err := remarshal(map[string]any{"roots": roots}, &result); err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return &result, nil
}

func (h *clientHandler) CreateMessage(ctx context.Context, request *jsonrpc.TypedRequest[*schema.CreateMessageRequest]) (*schema.CreateMessageResult, *jsonrpc.Error) {
	if h.sampling == nil {
		return nil, jsonrpc.NewMethodNotFound("sampling is not supported", nil)
	}
	var params struct {
		Messages []struct {
			Role    string `json:"role"`
			Content struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"messages"`
		SystemPrompt  string   `json:"systemPrompt"`
		MaxTokens     int      `json:"maxTokens"`
		Temperature   float64  `json:"temperature"`
		StopSequences []string `json:"stopSequences"`
	}
	if err := remarshal(request.Request.Params, &params); err != nil {
		return nil, jsonrpc.NewInvalidParamsError(err.Error(), nil)
	}
	req := &SamplingRequest{
		SystemPrompt:  params.SystemPrompt,
		MaxTokens:     params.MaxTokens,
		Temperature:   params.Temperature,
		StopSequences: params.StopSequences,
	}
	for _, m := range params.Messages {
		req.Messages = append(req.Messages, PromptMessage{Role: m.Role, Text: m.Content.Text})
	}
	res, err := h.sampling(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	role := res.Role
	if role == "" {
		role = "assistant"
	}
	var result schema.CreateMessageResult
	payload := map[string]any{
		"model":   res.Model,
		"role":    role,
		"content": map[string]any{"type": "text", "text": res.Text},
	}
	if res.StopReason != "" {
		payload["stopReason"] = res.StopReason
	}
	if err := remarshal(payload, &result); err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	return &result, nil
}

func (h *clientHandler) Elicit(ctx context.Context, request *jsonrpc.TypedRequest[*schema.ElicitRequest]) (*schema.ElicitResult, *jsonrpc.Error) {
	if h.elicitation == nil {
		return nil, jsonrpc.NewMethodNotFound("elicitation is not supported", nil)
	}
	params := request.Request.Params
	req := &ElicitationRequest{
		Message: params.Message,
		Schema: map[string]any{
			"type":       params.RequestedSchema.Type,
			"properties": params.RequestedSchema.Properties,
			"required":   params.RequestedSchema.Required,
		},
	}
	res, err := h.elicitation(ctx, req)
	if err != nil {
		return nil, jsonrpc.NewInternalError(err.Error(), nil)
	}
	action := schema.ElicitResultAction(res.Action)
	if action == "" {
		action = schema.ElicitResultActionDecline
	}
	return &schema.ElicitResult{Action: action, Content: res.Content}, nil
}

// remarshal copies src into dst through JSON, bridging wire-level maps
// and generated schema structs without tracking their exact shapes.
func remarshal(src, dst any) error {
	data, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
