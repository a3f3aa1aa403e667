package cmd

import (
	"fmt"
	"time"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

// dayCmd represents the day command
var dayCmd = &cobra.Command{
	Use:   "day [YYYY-MM-DD]",
	Short: "Show one day's total",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd.Context())
		defer closeApp(app)

		day := internal.DateKey(app.Clock.Now())
		if len(args) == 1 {
			if _, err := time.Parse(internal.DateLayout, args[0]); err != nil {
				return fmt.Errorf("%w %q: expected YYYY-MM-DD", internal.ErrInvalidDate, args[0])
			}
			day = args[0]
		}

		seconds, _ := app.Store.Lookup(day)
		hours := float64(seconds) / 3600
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %.1f h  level %d\n",
			day, internal.FormatClock(seconds), hours, internal.Classify(hours))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}
