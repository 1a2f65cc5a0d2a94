package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOfScalars(t *testing.T) {
	assert.Equal(t, "string", TypeOf[string]()["type"])
	assert.Equal(t, "integer", TypeOf[int]()["type"])
	assert.Equal(t, "number", TypeOf[float64]()["type"])
	assert.Equal(t, "boolean", TypeOf[bool]()["type"])
}

func TestTypeOfTime(t *testing.T) {
	fragment := TypeOf[time.Time]()
	assert.Equal(t, "string", fragment["type"])
	assert.Equal(t, "date-time", fragment["format"])
}

func TestTypeOfSlice(t *testing.T) {
	fragment := TypeOf[[]string]()
	assert.Equal(t, "array", fragment["type"])
	items, ok := fragment["items"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "string", items["type"])
}

func TestTypeOfStruct(t *testing.T) {
	type window struct {
		Start time.Time `json:"start" jsonschema:"required,description=Window start"`
		Days  *int      `json:"days,omitempty"`
	}

	fragment := TypeOf[window]()

	assert.Equal(t, "object", fragment["type"])
	props, ok := fragment["properties"].(map[string]any)
	require.True(t, ok)
	start, ok := props["start"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Window start", start["description"])
	assert.Contains(t, fragment["required"], "start")
}

func TestTypeOfJSON(t *testing.T) {
	data, err := TypeOfJSON[bool]()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"boolean"}`, string(data))
}
