package funcmcp

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrBridgeClosed is returned by Bridge.Run once the bridge has been
// closed (or is closing). It is never wrapped by another funcmcp error.
var ErrBridgeClosed = errors.New("funcmcp: bridge closed")

// errBridgeNotStarted is returned by Bridge.Run before Start.
var errBridgeNotStarted = errors.New("funcmcp: bridge not started")

// ConnectionError reports a failure to connect to a server or to list its
// capabilities. It is fatal to binding; no retry is attempted.
type ConnectionError struct {
	// Target is the connection string or server name that failed.
	Target string
	// Err is the underlying transport or protocol error.
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("funcmcp: failed to connect to %q: %v", e.Target, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ValidationError reports required arguments missing from a tool call.
// The server is never contacted for a call that fails validation.
type ValidationError struct {
	// Tool is the canonical name of the tool being called.
	Tool string
	// Missing are the names of the required arguments that were absent.
	Missing []string
}

func (e *ValidationError) Error() string {
	missing := append([]string(nil), e.Missing...)
	sort.Strings(missing)
	return fmt.Sprintf("funcmcp: tool %q: missing required arguments: %s",
		e.Tool, strings.Join(missing, ", "))
}

// ToolExecutionError reports a tool invocation that reached the server and
// failed, either in transport or as a peer-reported error payload. The
// original cause is preserved for errors.Is/As.
type ToolExecutionError struct {
	// Tool is the canonical name of the tool that failed.
	Tool string
	// Err is the original cause.
	Err error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("funcmcp: tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

// LookupError reports an unknown tool name. The message enumerates every
// canonical name in the collection so typos are diagnosable from logs.
type LookupError struct {
	// Name is the tool name that was requested.
	Name string
	// Available are the canonical names present in the collection.
	Available []string
}

func (e *LookupError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("funcmcp: unknown tool %q (collection is empty)", e.Name)
	}
	return fmt.Sprintf("funcmcp: unknown tool %q, available: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// ConfigError reports an invalid configuration: a contradictory
// ArgTransform, a transform referencing an unknown argument, or an
// unsupported codegen format.
type ConfigError struct {
	Reason string
	// Err is the underlying cause, when one exists.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("funcmcp: %s: %v", e.Reason, e.Err)
	}
	return "funcmcp: " + e.Reason
}

func (e *ConfigError) Unwrap() error { return e.Err }
