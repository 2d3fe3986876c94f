// ABOUTME: CLI command for viewing and changing configuration.
// ABOUTME: Covers the color scheme preference carried in snapshots.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"daytrack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		scheme := cfg.ColorScheme
		if scheme == "" {
			scheme = "(unset)"
		}
		fmt.Printf("config file:  %s\n", config.GetConfigPath())
		fmt.Printf("data dir:     %s\n", cfg.GetDataDir())
		fmt.Printf("color scheme: %s\n", scheme)
		return nil
	},
}

var configSchemeCmd = &cobra.Command{
	Use:       "scheme <light|dark>",
	Short:     "Set the color scheme preference",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{config.SchemeLight, config.SchemeDark},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.SetColorScheme(args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.Green("✓ Color scheme set to %s", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSchemeCmd)
	rootCmd.AddCommand(configCmd)
}
