// ABOUTME: CLI commands for exporting and importing snapshots.
// ABOUTME: Export writes JSON or YAML; import restores JSON with ID remapping.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/backup"
)

var (
	exportOutput string
	exportFormat string

	importReplace bool
	importQuiet   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full store as a snapshot",
	Long: `Export every event and every recorded value as a snapshot document.

FORMATS:

  json   Full snapshot (suitable for backup/restore)
  yaml   Human-readable flavor (export only; import accepts JSON)

The snapshot also carries your color scheme preference, which a later
import restores.

EXAMPLES:

  daytrack export                        # JSON to stdout
  daytrack export -o backup.json         # Save to file
  daytrack export --format yaml          # YAML to stdout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := backup.ExportSnapshot(repo, backup.Settings{ColorScheme: cfg.ColorScheme})
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		var data []byte
		switch exportFormat {
		case "json":
			data, err = snap.EncodeJSON()
		case "yaml":
			data, err = snap.EncodeYAML()
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", exportFormat)
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported %d events and %d values to %s",
				len(snap.Events), len(snap.EventValues), exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore a snapshot",
	Long: `Restore events and values from a previously exported JSON snapshot.

Incoming events receive new IDs; values follow through an ID mapping, so
restoring into a non-empty store never collides with existing events.

With --replace, every current event (and all its values) is deleted
before anything is inserted. That makes the operation destructive and
not reversible once begun.

If an import fails partway, data written before the failure point is
kept; an import cannot be assumed atomic.

EXAMPLES:

  daytrack import backup.json              # Merge into the current store
  daytrack import backup.json --replace    # Wipe first, then restore`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := backup.ReadSnapshotFile(args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		var onProgress backup.ProgressFunc
		if !importQuiet {
			faint := color.New(color.Faint)
			onProgress = func(percent int, message string) {
				faint.Printf("  %3d%% %s\n", percent, message)
			}
		}

		result := backup.Import(repo, snap, backup.Options{
			ClearExisting: importReplace,
			OnProgress:    onProgress,
			ApplySetting: func(key, value string) error {
				if key != "colorScheme" {
					return nil
				}
				if err := cfg.SetColorScheme(value); err != nil {
					return err
				}
				return cfg.Save()
			},
		})

		if !result.OK {
			color.Red("✗ %s", result.Message)
			color.Yellow("  data written before the failure was kept; the store may be partially restored")
			return fmt.Errorf("import failed")
		}

		color.Green("✓ %s", result.Message)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "export format: json or yaml")

	importCmd.Flags().BoolVar(&importReplace, "replace", false, "delete all existing events before restoring")
	importCmd.Flags().BoolVarP(&importQuiet, "quiet", "q", false, "suppress progress output")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
