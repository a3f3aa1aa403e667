package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

var (
	configForce bool
)

// configCmd groups the config.yaml subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings in config.yaml",
	Long: `Show or change the settings stored in config.yaml.

Keys:
  database        path to the stats database
  log_level       error, warn, info or debug
  export_format   json, jsonl, yaml or md`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		serialized, err := internal.MarshalConfig(settings)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "# %s\n", settingsFile)
		_, _ = out.Write(serialized)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to config.yaml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(settingsFile); err == nil && !configForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", settingsFile)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to check config file: %w", err)
		}

		if err := internal.SaveConfig(settingsFile, settings); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", settingsFile)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting in config.yaml",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]

		// Start from the file, not from flag overrides such as --db.
		cfg, err := internal.LoadConfig(settingsFile, dataPaths)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", settingsFile, err)
		}
		if key == "database" && value != ":memory:" && !filepath.IsAbs(value) {
			if abs, err := filepath.Abs(value); err == nil {
				value = abs
			}
		}
		if err := internal.SetConfigValue(&cfg, key, value); err != nil {
			return err
		}
		if err := internal.SaveConfig(settingsFile, cfg); err != nil {
			return err
		}
		internal.LogDebug("Updated %s in %s", key, settingsFile)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s in %s\n", key, settingsFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd, configSetCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}
