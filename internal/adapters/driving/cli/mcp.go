package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can load files
and run study tools. The server keeps one session for its lifetime.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default, for desktop assistants)
  studydeck mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  studydeck mcp serve --port 8080

Assistant configuration:
  {
    "mcpServers": {
      "studydeck": {
        "command": "/path/to/studydeck",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	Annotations: llmAnnotation(),
	RunE:        runMCPServe,
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

	ports := &mcp.Ports{
		Ingest: ingestService,
		Study:  studyService,
		Chat:   chatService,
		Deck:   deckService,
		Export: exportService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
