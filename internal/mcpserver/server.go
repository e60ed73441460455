// Package mcpserver implements an MCP (Model Context Protocol) server that
// exposes schema generation as an MCP tool over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/garethr/openapi2jsonschema"
)

const serverInstructions = `openapi2jsonschema MCP server — converts OpenAPI and Swagger documents into standalone JSON Schema files, one per named type.

Configuration: defaults are configurable via OPENAPI2JSONSCHEMA_* environment variables set in your MCP client config. The Go MCP SDK does not support initializationOptions; use env vars instead.

Key settings:
- OPENAPI2JSONSCHEMA_OUTPUT (default: schemas) — default output directory
- OPENAPI2JSONSCHEMA_KUBERNETES (default: false) — enable Kubernetes enrichment by default
- OPENAPI2JSONSCHEMA_STRICT (default: false) — forbid additional properties by default
- OPENAPI2JSONSCHEMA_STAND_ALONE (default: false) — dereference schemas by default`

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "openapi2jsonschema", Version: openapi2jsonschema.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate JSON Schema files from an OpenAPI or Swagger document. Writes one schema file per named type to the output directory, plus an all.json aggregate and, for pre-3.0 documents, a shared _definitions.json. Set kubernetes=true for Kubernetes API documents to get apiVersion/kind enums and int-or-string handling. Defaults are configurable via OPENAPI2JSONSCHEMA_* env vars.",
	}, handleGenerate)
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
