// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"daytrack/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant
integration. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "daytrack": {
        "command": "daytrack",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_event              Create a tracked event
  list_events            List events in display order
  update_event           Update an event's fields
  delete_event           Delete an event and its values
  log_value              Record a value for a date
  values_for_date        All values on one date
  event_history          One event's history
  first_meaningful_date  First date with real signal

AVAILABLE RESOURCES:

  daytrack://today       Today's recorded values
  daytrack://summary     Events with latest values`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(repo)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigChan
			cancel()
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
