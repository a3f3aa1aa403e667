package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	dbPath     string
	configPath string
	version    string = "dev"
	commit     string = "unknown"
	date       string = "unknown"
)

var (
	// settings is resolved once per invocation in PersistentPreRunE
	settings internal.Config
	// settingsFile is the config.yaml path settings were read from
	settingsFile string
	dataPaths    internal.DataPaths
	// clock is replaced in tests
	clock internal.Clock = internal.SystemClock{}
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "deepwork",
	Short: "Track deep work sessions and visualize them as a heat-map",
	Long: `A terminal countdown timer for focused work sessions.

Every finished session is added to the day it ended on, and the last twelve
months of totals are shown as a contribution-style heat-map.

Quick Start:
  deepwork timer --duration 25m     # Run a 25 minute session
  deepwork log 1h30m                # Record time worked away from the timer
  deepwork stats                    # Show the 12 month heat-map
  deepwork export --format md       # Export totals as Markdown`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveSettings()
		if err != nil {
			return err
		}
		settings = cfg
		internal.SetLogLevel(cfg.LogLevel)
		if verbose {
			internal.SetVerbose(true)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		internal.PrintError(fmt.Sprintf("Error: %v", err))
		os.Exit(1)
	}
}

// resolveSettings layers flags over config.yaml over the per-OS defaults.
func resolveSettings() (internal.Config, error) {
	paths, err := internal.DetectDataPaths()
	if err != nil {
		return internal.Config{}, fmt.Errorf("failed to detect data paths: %w", err)
	}

	path := configPath
	if path == "" {
		path = paths.ConfigFile
	}
	dataPaths = paths
	settingsFile = path
	cfg, err := internal.LoadConfig(path, paths)
	if err != nil {
		internal.LogWarn("Ignoring config file %s: %v", path, err)
	}
	if dbPath != "" {
		cfg.Database = dbPath
	}
	return cfg, nil
}

// openApp opens the configured database. When it cannot be opened the
// command continues on an in-memory store and says so.
func openApp(ctx context.Context) *internal.App {
	app, err := internal.OpenApp(ctx, settings.Database)
	if err != nil {
		internal.LogWarn("%v", err)
		internal.PrintWarning("Stats database unavailable, nothing will be saved this run")
		app = internal.NewMemoryApp()
	}
	app.Clock = clock
	return app
}

func closeApp(app *internal.App) {
	if err := app.Close(); err != nil {
		internal.PrintWarning(err.Error())
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the stats database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.yaml")

	// Set version template to ensure --version flag works
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
