// ABOUTME: CLI command for recording event values.
// ABOUTME: Upserts one value per (event, date); supports backfilling old dates.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/models"
)

var logDate string

var logCmd = &cobra.Command{
	Use:   "log <event-id> <value>",
	Short: "Record a value for an event",
	Long: `Record a value for an event on a calendar date.

Each event holds at most one value per date. Logging again for the same
date overwrites the earlier value; nothing is duplicated.

The value text is interpreted per the event's type: booleans are
"true"/"false", numbers are decimal text, strings are free text.

EXAMPLES:

  daytrack log 1 true                      # Log for today
  daytrack log 2 7.5 --date 2026-08-01     # Backfill an old date
  daytrack log 3 "slept badly, long day"   # Free-text event`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		date := logDate
		if date == "" {
			date = models.Today()
		}

		v, err := repo.SetValue(id, date, args[1])
		if err != nil {
			return fmt.Errorf("failed to log value: %w", err)
		}

		color.Green("✓ Logged value for %s", v.Date)
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprintf("event=%d", v.EventID),
			v.Value)
		return nil
	},
}

var unlogCmd = &cobra.Command{
	Use:   "unlog <event-id> <date>",
	Short: "Remove the value recorded for an event on one date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		if err := repo.DeleteValue(id, args[1]); err != nil {
			return fmt.Errorf("failed to remove value: %w", err)
		}

		color.Yellow("✗ Removed value for event %d on %s", id, args[1])
		return nil
	},
}

func init() {
	logCmd.Flags().StringVar(&logDate, "date", "", "calendar date YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(unlogCmd)
}
