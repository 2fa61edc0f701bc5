package main

import (
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	hatchmcp "github.com/gorewood/hatch/internal/mcp"
	"github.com/gorewood/hatch/internal/project"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run hatch as a Model Context Protocol (MCP) server over stdio.

This exposes template listing and project creation as MCP tools that any
MCP-capable agent environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "hatch": {
        "command": "hatch",
        "args": ["serve"]
      }
    }
  }

Available tools: list_templates, create_project`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := hatchmcp.NewServer(buildVersion(), serveDeps(a))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// serveDeps wires the MCP tools. stdout carries the protocol, so child
// processes write to stderr and read nothing.
func serveDeps(a *app) hatchmcp.Deps {
	return hatchmcp.Deps{
		Env: a.env,
		NewInitializer: func() *project.Initializer {
			return a.initializer(nil, os.Stderr, os.Stderr, nil)
		},
	}
}
