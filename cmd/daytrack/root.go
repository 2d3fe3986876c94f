// ABOUTME: Root Cobra command for daytrack CLI.
// ABOUTME: Handles config and store lifecycle via PersistentPre/PostRunE.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"daytrack/internal/config"
	"daytrack/internal/storage"
)

var (
	cfg  *config.Config
	repo storage.Repository
)

var rootCmd = &cobra.Command{
	Use:   "daytrack",
	Short: "Personal daily event tracker",
	Long: `Daytrack tracks arbitrary personal events against calendar dates.

An event is anything you want to record per day: a boolean (did I
meditate?), a number (hours slept), or free text (one-line journal).
Each event holds at most one value per date; logging again for the same
date overwrites.

QUICK START:

  $ daytrack event add "Meditated" boolean        # Define an event
  $ daytrack event add "Sleep" number --unit h    # Numeric event with unit
  $ daytrack log 1 true                           # Log today's value
  $ daytrack log 2 7.5 --date 2026-08-01          # Backfill an old date
  $ daytrack values --date 2026-08-01             # See one day
  $ daytrack values --event 2                     # See one event's history

BACKUP & RESTORE:

  $ daytrack export -o backup.json       # Full snapshot (JSON)
  $ daytrack export --format yaml        # Human-readable flavor
  $ daytrack import backup.json          # Restore (merges, remaps IDs)
  $ daytrack import backup.json --replace # Wipe first, then restore

ANALYTICS:

  $ daytrack stats                       # First meaningful date, signal counts

MCP INTEGRATION:

  Run 'daytrack mcp' to start the Model Context Protocol server for use
  with Claude Desktop or other MCP-compatible AI assistants.

DATA STORAGE:

  Values live in a SQLite database at ~/.local/share/daytrack/daytrack.db
  (override the directory with 'data_dir' in the config file).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			return repo.Close()
		}
		return nil
	},
}
