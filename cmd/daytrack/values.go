// ABOUTME: CLI command for viewing recorded values.
// ABOUTME: Shows one date across events or one event's history.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/models"
)

var (
	valuesDate  string
	valuesEvent int64
	valuesFrom  string
	valuesTo    string
)

var valuesCmd = &cobra.Command{
	Use:   "values",
	Short: "Show recorded values",
	Long: `Show recorded values, either for one date across all events or for
one event across dates.

EXAMPLES:

  daytrack values                         # Today's values
  daytrack values --date 2026-08-01       # One day
  daytrack values --event 2               # One event's full history
  daytrack values --event 2 --from 2026-01-01 --to 2026-06-30`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if valuesEvent != 0 {
			return showEventHistory(valuesEvent, valuesFrom, valuesTo)
		}

		date := valuesDate
		if date == "" {
			date = models.Today()
		}
		return showDate(date)
	},
}

func showDate(date string) error {
	values, err := repo.ValuesForDate(date)
	if err != nil {
		return fmt.Errorf("failed to list values: %w", err)
	}

	if len(values) == 0 {
		fmt.Printf("No values recorded on %s.\n", date)
		return nil
	}

	events, err := repo.ListEvents()
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}
	names := make(map[int64]string, len(events))
	for _, e := range events {
		names[e.ID] = e.Name
	}

	faint := color.New(color.Faint)
	fmt.Printf("%s\n", date)
	for _, v := range values {
		fmt.Printf("  %s %s %s\n",
			faint.Sprintf("%3d", v.EventID),
			padRight(names[v.EventID], 20),
			v.Value)
	}
	return nil
}

func showEventHistory(eventID int64, from, to string) error {
	e, err := repo.GetEvent(eventID)
	if err != nil {
		return fmt.Errorf("event not found: %d", eventID)
	}

	var dateRange *models.DateRange
	if from != "" || to != "" {
		dateRange = &models.DateRange{Start: from, End: to}
		if dateRange.End == "" {
			dateRange.End = models.Today()
		}
	}

	values, err := repo.ValuesForEvent(eventID, dateRange)
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}

	if len(values) == 0 {
		fmt.Printf("No values recorded for %q.\n", e.Name)
		return nil
	}

	unit := ""
	if e.Unit != nil && *e.Unit != "" {
		unit = " " + *e.Unit
	}

	faint := color.New(color.Faint)
	fmt.Printf("%s (%s)\n", e.Name, e.Type)
	for _, v := range values {
		fmt.Printf("  %s %s%s\n", faint.Sprint(v.Date), v.Value, unit)
	}
	return nil
}

func init() {
	valuesCmd.Flags().StringVar(&valuesDate, "date", "", "show one date (default: today)")
	valuesCmd.Flags().Int64Var(&valuesEvent, "event", 0, "show one event's history")
	valuesCmd.Flags().StringVar(&valuesFrom, "from", "", "inclusive range start (with --event)")
	valuesCmd.Flags().StringVar(&valuesTo, "to", "", "inclusive range end (with --event)")
	rootCmd.AddCommand(valuesCmd)
}
