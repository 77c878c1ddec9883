// Package web holds the static pages served by the HTTP and MCP adapters.
package web

import _ "embed"

// IndexHTML is the weight chart page served at "/".
//
//go:embed index.html
var IndexHTML []byte

// MCPAppHTML is the tool UI returned as an MCP resource.
//
//go:embed mcp-app.html
var MCPAppHTML []byte
