package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Davincible/gf256/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates a command group for inspecting the config file
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialise the configuration file",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "path",
			Short: "Print the configuration file path",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := config.NewConfigManager()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), cm.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective configuration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cm, err := config.NewConfigManager()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cm.GetConfig())
			},
		},
		newConfigInitCommand(),
	)

	return cmd
}

func newConfigInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}

			// An unreadable or invalid file still counts as existing.
			if _, err := os.Stat(path); err == nil {
				if !force {
					return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
				}
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to check config: %w", err)
			}

			cm := config.NewDefaultManagerAt(path)
			if err := cm.SaveConfig(); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ Wrote default config to %s\n", cm.Path())
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
