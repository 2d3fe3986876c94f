// ABOUTME: CLI commands for managing event definitions.
// ABOUTME: Handles add, list, edit, and delete with cascade warning.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/models"
	"daytrack/internal/storage"
)

var (
	eventAddUnit     string
	eventAddColor    string
	eventAddIcon     string
	eventAddPosition int

	eventEditName     string
	eventEditUnit     string
	eventEditColor    string
	eventEditIcon     string
	eventEditPosition int
)

var eventCmd = &cobra.Command{
	Use:     "event",
	Aliases: []string{"events"},
	Short:   "Manage tracked events",
}

var eventAddCmd = &cobra.Command{
	Use:   "add <name> <type>",
	Short: "Define a new tracked event",
	Long: `Define a new tracked event.

TYPES:

  boolean   yes/no per day ("true"/"false")
  number    numeric value per day (optionally with a --unit)
  string    free text per day

EXAMPLES:

  daytrack event add "Meditated" boolean
  daytrack event add "Sleep" number --unit hours
  daytrack event add "Mood note" string --color "#f59e0b"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, eventType := args[0], args[1]

		if !models.IsValidEventType(eventType) {
			return fmt.Errorf("unknown event type: %s (use boolean, number, or string)", eventType)
		}

		e := models.NewEvent(name, models.EventType(eventType))
		if eventAddUnit != "" {
			e.WithUnit(eventAddUnit)
		}
		if eventAddColor != "" {
			e.WithColor(eventAddColor)
		}
		if eventAddIcon != "" {
			e.WithIcon(eventAddIcon)
		}
		if cmd.Flags().Changed("position") {
			e.WithPosition(eventAddPosition)
		}

		if err := repo.CreateEvent(e); err != nil {
			return fmt.Errorf("failed to create event: %w", err)
		}

		color.Green("✓ Added %s event %q", e.Type, e.Name)
		fmt.Printf("  %s\n", color.New(color.Faint).Sprintf("id=%d position=%d", e.ID, e.Position))
		return nil
	},
}

var eventListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tracked events in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := repo.ListEvents()
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No events defined. Try 'daytrack event add'.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range events {
			unit := ""
			if e.Unit != nil && *e.Unit != "" {
				unit = faint.Sprintf(" (%s)", *e.Unit)
			}
			fmt.Printf("%s %s %s%s\n",
				faint.Sprintf("%3d", e.ID),
				padRight(string(e.Type), 8),
				e.Name,
				unit)
		}
		return nil
	},
}

var eventEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update an event's fields",
	Long: `Update an event. Only the flags you pass change; everything else
is left as-is.

EXAMPLES:

  daytrack event edit 2 --name "Sleep hours"
  daytrack event edit 2 --unit h --color "#10b981"
  daytrack event edit 5 --position 0`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		var u storage.EventUpdate
		if cmd.Flags().Changed("name") {
			u.Name = &eventEditName
		}
		if cmd.Flags().Changed("unit") {
			u.Unit = &eventEditUnit
		}
		if cmd.Flags().Changed("color") {
			u.Color = &eventEditColor
		}
		if cmd.Flags().Changed("icon") {
			u.Icon = &eventEditIcon
		}
		if cmd.Flags().Changed("position") {
			u.Position = &eventEditPosition
		}

		e, err := repo.UpdateEvent(id, u)
		if err != nil {
			return fmt.Errorf("failed to update event: %w", err)
		}

		color.Green("✓ Updated %q", e.Name)
		return nil
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete an event and all its values",
	Long: `Delete an event by ID.

CAUTION:

  This permanently deletes the event and every value ever recorded
  against it. There is no undo.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseEventID(args[0])
		if err != nil {
			return err
		}

		e, err := repo.GetEvent(id)
		if err != nil {
			return fmt.Errorf("event not found: %s", args[0])
		}

		values, err := repo.ValuesForEvent(id, nil)
		if err != nil {
			return fmt.Errorf("failed to count values: %w", err)
		}

		if err := repo.DeleteEvent(id); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}

		color.Yellow("✗ Deleted %q and %d values", e.Name, len(values))
		return nil
	},
}

func parseEventID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id: %s", s)
	}
	return id, nil
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	eventAddCmd.Flags().StringVar(&eventAddUnit, "unit", "", "display unit (number events)")
	eventAddCmd.Flags().StringVar(&eventAddColor, "color", "", "hex color token")
	eventAddCmd.Flags().StringVar(&eventAddIcon, "icon", "", "icon name")
	eventAddCmd.Flags().IntVar(&eventAddPosition, "position", 0, "sort position (default: end of list)")

	eventEditCmd.Flags().StringVar(&eventEditName, "name", "", "new display name")
	eventEditCmd.Flags().StringVar(&eventEditUnit, "unit", "", "new unit")
	eventEditCmd.Flags().StringVar(&eventEditColor, "color", "", "new color token")
	eventEditCmd.Flags().StringVar(&eventEditIcon, "icon", "", "new icon name")
	eventEditCmd.Flags().IntVar(&eventEditPosition, "position", 0, "new sort position")

	eventCmd.AddCommand(eventAddCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventEditCmd)
	eventCmd.AddCommand(eventDeleteCmd)
	rootCmd.AddCommand(eventCmd)
}
