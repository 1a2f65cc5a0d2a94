// Package funcmcp binds tools advertised by MCP (Model Context Protocol)
// servers into ordinary Go callables, discovered dynamically at connection
// time. There is no code generation step and no hand-written binding per
// server: connect, and every remote tool becomes a schema-validated
// [Tool] you can call directly.
//
// # Quick Start
//
//	srv, err := funcmcp.Load(ctx, "npx -y @modelcontextprotocol/server-filesystem /tmp")
//	if err != nil { ... }
//	defer srv.Close()
//
//	tool, err := srv.Tools().Lookup("list_directory")
//	if err != nil { ... }
//	out, err := tool.Call(ctx, map[string]any{"path": "/tmp"})
//
// All I/O for one connection is serialized through a single background
// goroutine (the [Bridge]); callers on any goroutine block until their
// result is ready. Tools are immutable snapshots: deriving specialized
// variants via [Transform] never touches the base tool, and observing new
// server capabilities requires a new connection.
//
// # Sub-packages
//
//   - [codegen] renders tool schemas as Go, TypeScript, or Python type
//     declarations.
//   - [registry] resolves short server names to connection strings.
package funcmcp
