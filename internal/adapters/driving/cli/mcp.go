package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studybuddy/internal/adapters/driving/mcp"
	"github.com/custodia-labs/studybuddy/internal/core/ports/driving"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can extract text
from local files and generate study guides.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead, e.g. for the MCP Inspector.

Examples:
  # Stdio mode (default)
  studybuddy mcp serve

  # HTTP mode
  studybuddy mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "studybuddy": {
        "command": "/path/to/studybuddy",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	ports := &mcp.Ports{Extraction: extractionService}
	if newSession != nil {
		ports.NewSession = func(ctx context.Context) (driving.Session, error) {
			return newSession(ctx)
		}
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
