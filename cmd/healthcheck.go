package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckDetails bool
)

var (
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Underline(true)
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check that deepwork can read and write its stats",
	Long: `Check the health of deepwork by verifying:
  • Data path detection
  • Config file parsing
  • Database access and schema
  • Stats snapshot decoding`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, sectionStyle.Render("Deep Work Health Check"))
		_, _ = fmt.Fprintln(out)

		// Step 1: Detect data paths
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 1: Detecting data paths..."))
		paths, err := internal.DetectDataPaths()
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to detect data paths:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Data paths detected"))
		if healthcheckDetails {
			_, _ = fmt.Fprintf(out, "   Data dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(out, "   Config file: %s\n", paths.ConfigFile)
		}
		_, _ = fmt.Fprintln(out)

		// Step 2: Config file
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 2: Reading config..."))
		checkConfig(out, paths)
		_, _ = fmt.Fprintln(out)

		// Step 3: Database
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 3: Opening database..."))
		db, err := internal.OpenDatabase(settings.Database)
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Database unavailable:"), err)
			_, _ = fmt.Fprintln(out, "   Sessions still run but nothing is saved.")
			return fmt.Errorf("health check failed: %w", err)
		}
		defer func() { _ = db.Close() }()
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Database ready"))
		if healthcheckDetails {
			_, _ = fmt.Fprintf(out, "   Database: %s\n", settings.Database)
		}
		_, _ = fmt.Fprintln(out)

		// Step 4: Snapshot
		_, _ = fmt.Fprintln(out, infoStyle.Render("Step 4: Decoding stats snapshot..."))
		kv := internal.NewSQLiteKV(db, settings.Database)
		raw, found, err := kv.Get(cmd.Context(), internal.StatsKey)
		if err != nil {
			_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Failed to read stats:"), err)
			return fmt.Errorf("health check failed: %w", err)
		}

		recordCount := 0
		switch {
		case !found:
			_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  No stats recorded yet"))
		default:
			records, skipped, err := internal.DecodeSnapshot(raw)
			if err != nil {
				_, _ = fmt.Fprintln(out, errorStyle.Render("❌ Stats snapshot is unreadable and loads as empty:"), err)
				return fmt.Errorf("health check failed: %w", err)
			}
			recordCount = len(records)
			_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("✅ %d day(s) recorded", recordCount)))
			if len(skipped) > 0 {
				_, _ = fmt.Fprintln(out, warningStyle.Render(fmt.Sprintf("⚠️  %d malformed entr(ies) are skipped on load", len(skipped))))
				if healthcheckDetails {
					for _, s := range skipped {
						_, _ = fmt.Fprintf(out, "   %v\n", s)
					}
				}
			}
		}
		_, _ = fmt.Fprintln(out)

		// Summary
		_, _ = fmt.Fprintln(out, sectionStyle.Render("Summary"))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, successStyle.Render("✅ Health check passed!"))
		_, _ = fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("   • Days recorded: %d", recordCount)))
		return nil
	},
}

func checkConfig(out io.Writer, paths internal.DataPaths) {
	path := settingsFile
	if _, err := internal.LoadConfig(path, paths); err != nil {
		_, _ = fmt.Fprintln(out, warningStyle.Render("⚠️  Config file ignored:"), err)
		return
	}
	_, _ = fmt.Fprintln(out, successStyle.Render("✅ Config loaded"))
	if healthcheckDetails {
		_, _ = fmt.Fprintf(out, "   Config: %s\n", path)
		_, _ = fmt.Fprintf(out, "   Export format: %s\n", settings.ExportFormat)
	}
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVarP(&healthcheckDetails, "details", "d", false, "Show detailed diagnostic information")
}
