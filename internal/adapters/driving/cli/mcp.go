package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/siria/internal/adapters/driving/mcp"
	"github.com/custodia-labs/siria/internal/core/services"
)

// portSearchRange is how many ports above --port are tried with --find-port.
const portSearchRange = 20

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can browse
stored events and configured organisations.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  siria mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  siria mcp serve --port 8080

  # HTTP mode on the first free port from 8080
  siria mcp serve --port 8080 --find-port

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "siria": {
        "command": "/path/to/siria",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().Bool("find-port", false, "use the first free port at or above --port")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	findPort, err := cmd.Flags().GetBool("find-port")
	if err != nil {
		return fmt.Errorf("getting find-port flag: %w", err)
	}
	if findPort && port > 0 {
		port, err = services.FindAvailablePort(port, port+portSearchRange)
		if err != nil {
			return err
		}
	}

	ports := &mcp.Ports{
		Events:  eventService,
		Sources: sourceService,
		Updates: updateService,
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
