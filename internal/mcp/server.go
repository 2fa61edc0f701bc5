// Package mcp provides a Model Context Protocol server for hatch.
// It exposes the template catalog and project creation as MCP tools that
// any MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/hatch/internal/project"
)

// Deps is what the tools need: the startup context and a way to build an
// Initializer whose subprocess output stays off the protocol stream.
type Deps struct {
	Env            project.Env
	NewInitializer func() *project.Initializer
}

// NewServer creates an MCP server with all hatch tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hatch",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for write tools (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}
}

// registerTools adds all hatch tools to the server.
func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List the project templates hatch can generate, with their source (built-in or local), description and default placeholder values.",
		Annotations: readOnlyAnnotations(),
	}, handleListTemplates(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_project",
		Description: "Create a new project directory from a template: render placeholders, install dependencies when package.json is present, then git init with an initial commit. Fails if the directory already exists.",
		Annotations: writeAnnotations(),
	}, handleCreateProject(deps))
}
