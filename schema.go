package funcmcp

import "github.com/funcmcp/funcmcp-go/internal/schema"

// TypeOf derives a JSON Schema fragment from a Go type, for use as an
// ArgTransform.Type override.
func TypeOf[T any]() map[string]any {
	return schema.TypeOf[T]()
}
