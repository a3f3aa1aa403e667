package cmd

import (
	"errors"
	"fmt"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

var logDate string

// logCmd represents the log command
var logCmd = &cobra.Command{
	Use:   "log <duration>",
	Short: "Record focus time worked away from the timer",
	Long: `Add a duration to a day's total without running the timer.

The duration accepts HH:MM:SS, MM:SS, a number of seconds or a Go duration
such as 45m or 1h30m. The day defaults to today.`,
	Example: `  deepwork log 45m
  deepwork log 01:30:00 --date 2024-03-01`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds, err := internal.ParseClock(args[0])
		if err != nil {
			return err
		}

		app := openApp(cmd.Context())
		defer closeApp(app)

		day := logDate
		if day == "" {
			day = internal.DateKey(app.Clock.Now())
		}

		err = app.Store.RecordDuration(cmd.Context(), day, seconds)
		if err != nil && !errors.Is(err, internal.ErrPersistenceUnavailable) {
			return err
		}
		if err != nil {
			internal.PrintWarning("Stats may not be saved: " + err.Error())
		}

		total, _ := app.Store.Lookup(day)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on %s (day total %s)\n",
			internal.FormatClock(seconds), day, internal.FormatClock(total))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().StringVar(&logDate, "date", "", "Day to credit (YYYY-MM-DD); default today")
}
