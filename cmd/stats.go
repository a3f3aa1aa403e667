package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

// Heat-map colors per level, lightest first.
var levelColors = [...]string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// Glyphs used when the output is not a terminal.
var plainGlyphs = [...]string{"·", "░", "▒", "▓", "█"}

const rowLabelWidth = 5

var (
	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the 12 month heat-map",
	Long: `Show daily deep work totals for the trailing twelve months.

Columns are weeks counted from the first day of the month eleven months
ago; each cell is one day shaded by hours worked:
  0 h, under 2 h, under 4 h, under 6 h, 6 h or more.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd.Context())
		defer closeApp(app)

		cells := internal.Calendar(app.Clock.Now(), app.Store.Records())
		color := internal.IsTerminal(cmd.OutOrStdout())

		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("Deep work %s to %s", cells[0].Date, cells[len(cells)-1].Date)))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, renderHeatmap(cells, color))
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprint(out, renderSummary(internal.Summarize(cells)))
		return nil
	},
}

func cellGlyph(level internal.Level, color bool) string {
	if level < internal.LevelNone || level > internal.LevelMax {
		level = internal.LevelNone
	}
	if !color {
		return plainGlyphs[level]
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(levelColors[level])).Render("■")
}

// renderHeatmap draws one column per week and one row per day offset,
// with month names above the column in which each month begins.
func renderHeatmap(cells []internal.CalendarCell, color bool) string {
	weeks := internal.Weeks(cells)
	if len(weeks) == 0 {
		return ""
	}

	var b strings.Builder

	header := []rune(strings.Repeat(" ", len(weeks)*2+3))
	nextFree := 0
	for i, label := range internal.MonthLabels(weeks) {
		pos := i * 2
		if label == "" || pos < nextFree {
			continue
		}
		copy(header[pos:], []rune(label))
		nextFree = pos + len(label) + 1
	}
	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	b.WriteString(strings.TrimRight(string(header), " "))
	b.WriteString("\n")

	for row := 0; row < 7 && row < len(weeks[0]); row++ {
		var line strings.Builder
		line.WriteString(fmt.Sprintf("%-*s", rowLabelWidth, weekdayLabel(weeks[0][row].Date)))
		for _, week := range weeks {
			if row < len(week) {
				line.WriteString(cellGlyph(week[row].Level, color))
			} else {
				line.WriteString(" ")
			}
			line.WriteString(" ")
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", rowLabelWidth))
	b.WriteString("Less ")
	for level := internal.LevelNone; level <= internal.LevelMax; level++ {
		b.WriteString(cellGlyph(level, color))
		b.WriteString(" ")
	}
	b.WriteString("More\n")
	return b.String()
}

func weekdayLabel(date string) string {
	t, err := time.Parse(internal.DateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}

func renderSummary(summary internal.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total:          %s (%.1f h) on %d day(s)\n",
		internal.FormatClock(summary.TotalSeconds), summary.TotalHours(), summary.ActiveDays)
	if summary.ActiveDays > 0 {
		fmt.Fprintf(&b, "Best day:       %s (%s)\n",
			summary.BestDay.Date, internal.FormatClock(summary.BestDay.Seconds))
	} else {
		b.WriteString(mutedStyle.Render("No sessions recorded yet."))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Current streak: %d day(s)\n", summary.CurrentStreak)
	fmt.Fprintf(&b, "Longest streak: %d day(s)\n", summary.LongestStreak)
	return b.String()
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
