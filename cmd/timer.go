package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iksnae/deepwork/internal"
	"github.com/iksnae/deepwork/internal/tui"
	"github.com/spf13/cobra"
)

var (
	timerDuration string
	timerPlain    bool
)

// plainReportEvery is how often line mode prints the remaining time
var plainReportEvery = time.Minute

// timerCmd represents the timer command
var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Run a deep work countdown",
	Long: `Run a countdown for one deep work session.

On a terminal an interactive screen is shown:
  space  start or pause
  r      reset without recording
  f      finish now and record the elapsed time
  e      edit the duration while paused
  q      quit (elapsed time is recorded)

With --plain, or when output is not a terminal, the countdown starts at once
and prints the remaining time every minute. Ctrl-C finishes early and records
the elapsed time.`,
	Example: `  deepwork timer
  deepwork timer --duration 25m
  deepwork timer --duration 01:30:00 --plain`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seconds := 0
		if timerDuration != "" {
			parsed, err := internal.ParseClock(timerDuration)
			if err != nil {
				return err
			}
			seconds = parsed
		}

		app := openApp(cmd.Context())
		defer closeApp(app)

		if !timerPlain && internal.IsTerminal(os.Stdout) && internal.IsTerminal(os.Stdin) {
			return tui.Run(app, seconds)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runPlainTimer(ctx, app, seconds, cmd.OutOrStdout(), nil)
	},
}

// runPlainTimer counts one session down on tickers (one per second when nil)
// and returns once it is recorded. Cancelling ctx finishes the session early.
func runPlainTimer(ctx context.Context, app *internal.App, seconds int, w io.Writer, tickers internal.TickerFactory) error {
	engine := app.NewEngine(tickers)
	if seconds > 0 {
		if err := engine.Configure(seconds); err != nil {
			return err
		}
	}

	done := make(chan internal.Completion, 1)
	engine.OnComplete(func(c internal.Completion) {
		select {
		case done <- c:
		default:
		}
	})

	_, _ = fmt.Fprintf(w, "Deep work session: %s (Ctrl-C to finish early)\n", internal.FormatClock(engine.State().Initial))
	engine.Start()

	report := time.NewTicker(plainReportEvery)
	defer report.Stop()

	for {
		select {
		case completion := <-done:
			printCompletion(w, app, completion)
			return nil
		case <-ctx.Done():
			select {
			case completion := <-done:
				printCompletion(w, app, completion)
				return nil
			default:
			}
			engine.Finish()
			printCompletion(w, app, <-done)
			return nil
		case <-report.C:
			_, _ = fmt.Fprintf(w, "%s remaining\n", internal.FormatClock(engine.State().Remaining))
		}
	}
}

func printCompletion(w io.Writer, app *internal.App, completion internal.Completion) {
	date := internal.DateKey(completion.EndedAt)
	total, _ := app.Store.Lookup(date)
	_, _ = fmt.Fprintf(w, "Recorded %s on %s (day total %s)\n",
		internal.FormatClock(completion.Seconds), date, internal.FormatClock(total))
	if !app.Store.Healthy() {
		internal.PrintWarning("Stats may not be saved")
	}
}

func init() {
	rootCmd.AddCommand(timerCmd)
	timerCmd.Flags().StringVarP(&timerDuration, "duration", "d", "", "Session length (HH:MM:SS, MM:SS, seconds or 25m); default 01:00:00")
	timerCmd.Flags().BoolVar(&timerPlain, "plain", false, "Line-mode countdown without the interactive screen")
}
