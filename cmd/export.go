package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/iksnae/deepwork/internal"
	"github.com/iksnae/deepwork/internal/export"
	"github.com/spf13/cobra"
)

var (
	format     string
	outputPath string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded days to a file",
	Long: `Export every recorded day plus a summary of the trailing twelve months
in one of: json, jsonl, yaml, md.

The format defaults to export_format from config.yaml. Output goes to stdout
unless --output is given; an existing directory receives
deepwork-stats.<ext>.`,
	Example: `  deepwork export
  deepwork export --format md --output deepwork.md`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := format
		if name == "" {
			name = settings.ExportFormat
		}
		exporter, err := export.NewExporter(name)
		if err != nil {
			return err
		}

		app := openApp(cmd.Context())
		defer closeApp(app)

		report := internal.BuildReport(app.Clock.Now(), app.Store.Records())

		path := outputPath
		if info, err := os.Stat(path); path != "" && err == nil && info.IsDir() {
			path = filepath.Join(path, "deepwork-stats."+exporter.Extension())
		}

		var w io.Writer = cmd.OutOrStdout()
		if path != "" {
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			defer func() {
				if err := file.Close(); err != nil {
					internal.LogWarn("Failed to close file %s: %v", path, err)
				}
			}()
			w = file
		}

		if err := exporter.Export(report, w); err != nil {
			return fmt.Errorf("failed to export %s: %w", name, err)
		}
		if path != "" {
			internal.PrintSuccess(fmt.Sprintf("Exported %d day(s) to %s", len(report.Records), path))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&format, "format", "f", "", "Export format ("+strings.Join(export.Formats(), ", ")+"); default from config")
	exportCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file; default stdout")
}
