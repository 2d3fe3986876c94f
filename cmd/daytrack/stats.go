// ABOUTME: CLI command for analytics over recorded history.
// ABOUTME: Shows first meaningful date and non-default signal counts.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/analytics"
)

var (
	statsFrom  string
	statsTo    string
	statsEvent int64
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Analyze recorded history",
	Long: `Analyze recorded history.

A value is "default" when it carries no real signal for its type: false
for booleans, zero for numbers, blank for strings. Early history is often
placeholder data entered while getting started; stats reports the first
date carrying real signal and how many non-default values each event has.

EXAMPLES:

  daytrack stats
  daytrack stats --from 2026-01-01 --to 2026-06-30
  daytrack stats --event 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := repo.ListEvents()
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}
		values, err := repo.AllValues()
		if err != nil {
			return fmt.Errorf("failed to list values: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events defined.")
			return nil
		}

		faint := color.New(color.Faint)

		if date, ok := analytics.FirstMeaningfulDate(events, values); ok {
			fmt.Printf("First meaningful date: %s\n", date)
		} else {
			fmt.Println("No meaningful values recorded yet.")
		}

		q := analytics.Query{Start: statsFrom, End: statsTo, EventID: statsEvent}
		meaningful := analytics.FilterNonDefault(events, values, q)

		perEvent := make(map[int64]int)
		for _, v := range meaningful {
			perEvent[v.EventID]++
		}

		fmt.Printf("Non-default values: %d of %d recorded\n", len(meaningful), len(values))
		for _, e := range events {
			if statsEvent != 0 && e.ID != statsEvent {
				continue
			}
			fmt.Printf("  %s %s %d\n",
				faint.Sprintf("%3d", e.ID),
				padRight(e.Name, 20),
				perEvent[e.ID])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsFrom, "from", "", "inclusive range start (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsTo, "to", "", "inclusive range end (YYYY-MM-DD)")
	statsCmd.Flags().Int64Var(&statsEvent, "event", 0, "restrict to one event")
	rootCmd.AddCommand(statsCmd)
}
