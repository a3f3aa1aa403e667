package export

import (
	"fmt"
	"io"

	"github.com/iksnae/deepwork/internal"
)

// MarkdownExporter exports the report as a Markdown table
type MarkdownExporter struct{}

// Export exports a report to Markdown format
func (e *MarkdownExporter) Export(report *internal.StatsReport, w io.Writer) error {
	summary := report.Summary

	_, _ = fmt.Fprintf(w, "# Deep Work Stats\n\n")
	if report.WindowStart != "" {
		_, _ = fmt.Fprintf(w, "**Window:** %s to %s  \n", report.WindowStart, report.WindowEnd)
	}
	_, _ = fmt.Fprintf(w, "**Total:** %.1f hours  \n", summary.TotalHours())
	_, _ = fmt.Fprintf(w, "**Active days:** %d  \n", summary.ActiveDays)
	_, _ = fmt.Fprintf(w, "**Current streak:** %d  \n", summary.CurrentStreak)
	_, _ = fmt.Fprintf(w, "**Longest streak:** %d\n\n", summary.LongestStreak)

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Days\n\n")

	if len(report.Records) == 0 {
		_, _ = fmt.Fprintf(w, "_No sessions recorded._\n")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| Date | Duration | Hours |\n")
	_, _ = fmt.Fprintf(w, "|------|----------|-------|\n")
	for _, record := range report.Records {
		_, err := fmt.Fprintf(w, "| %s | %s | %.1f |\n", record.Date, internal.FormatClock(record.Duration), record.Hours())
		if err != nil {
			return err
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
