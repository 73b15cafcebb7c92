package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdkhare/CourtFinder/internal/adapters/driving/mcp"
	"github.com/rdkhare/CourtFinder/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

While serving, session and location changes are followed in the background.

Examples:
  # Stdio mode (default, for Claude Desktop)
  courtfinder mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  courtfinder mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "courtfinder": {
        "command": "/path/to/courtfinder",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

var mcpLog = logger.Component("mcp")

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
		Courts:  courtsService,
		Profile: profileService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(commandContext(cmd))
	defer cancel()
	startWatcher(ctx, mcpLog)

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}

// startWatcher runs the background watcher until ctx is cancelled.
// Watcher errors are logged; they never stop the foreground command.
func startWatcher(ctx context.Context, log logger.Component) {
	if watcher == nil {
		return
	}
	go func() {
		if err := watcher.Run(ctx); err != nil {
			log.Warn("watcher stopped: %v", err)
		}
	}()
}
