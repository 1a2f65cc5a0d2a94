package funcmcp

import "time"

// Version is the library version announced during the handshake.
const Version = "0.1.0"

const (
	// DefaultClientName is announced when WithClientInfo is not used.
	DefaultClientName = "funcmcp-go"

	// DefaultCallTimeout bounds a single tool call unless overridden.
	DefaultCallTimeout = 30 * time.Second
)
