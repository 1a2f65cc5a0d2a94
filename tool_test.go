package funcmcp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeArgsScalars(t *testing.T) {
	out, err := encodeArgs(map[string]any{
		"s": "text",
		"i": 42,
		"f": 1.5,
		"b": true,
		"n": nil,
	})

	require.NoError(t, err)
	assert.Equal(t, "text", out["s"])
	assert.Equal(t, 42, out["i"])
	assert.Equal(t, 1.5, out["f"])
	assert.Equal(t, true, out["b"])
	assert.Nil(t, out["n"])
}

func TestEncodeArgsExactNumbers(t *testing.T) {
	price := decimal.RequireFromString("19.990000000000001")

	out, err := encodeArgs(map[string]any{
		"price":  price,
		"pprice": &price,
		"raw":    json.Number("123456789012345678901234567890"),
	})

	require.NoError(t, err)
	assert.Equal(t, json.Number("19.990000000000001"), out["price"])
	assert.Equal(t, json.Number("19.990000000000001"), out["pprice"])
	assert.Equal(t, json.Number("123456789012345678901234567890"), out["raw"])
}

func TestEncodeArgsTime(t *testing.T) {
	at := time.Date(2026, 8, 28, 12, 30, 0, 0, time.UTC)

	out, err := encodeArgs(map[string]any{"at": at})

	require.NoError(t, err)
	assert.Equal(t, "2026-08-28T12:30:00Z", out["at"])
}

func TestEncodeArgsStructRoundTrip(t *testing.T) {
	type filter struct {
		Field string `json:"field"`
		Max   int64  `json:"max"`
	}

	out, err := encodeArgs(map[string]any{"filter": filter{Field: "size", Max: 9007199254740993}})

	require.NoError(t, err)
	m, ok := out["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "size", m["field"])
	// Round-tripping preserves integer precision via json.Number.
	assert.Equal(t, json.Number("9007199254740993"), m["max"])
}

func TestEncodeArgsUnencodable(t *testing.T) {
	_, err := encodeArgs(map[string]any{"ch": make(chan int)})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ch")
}

func TestFirstText(t *testing.T) {
	resp := &ToolResponse{Content: []ContentBlock{
		{Type: "image"},
		{Type: "text", Text: "hello"},
	}}
	text, ok := resp.FirstText()
	assert.True(t, ok)
	assert.Equal(t, "hello", text)

	_, ok = (&ToolResponse{}).FirstText()
	assert.False(t, ok)
}
