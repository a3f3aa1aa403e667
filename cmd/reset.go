package cmd

import (
	"fmt"

	"github.com/iksnae/deepwork/internal"
	"github.com/spf13/cobra"
)

const resetConfirmation = "delete"

var resetYes bool

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every recorded day",
	Long: `Delete all recorded deep work totals. This cannot be undone.

You are asked to type "delete" to confirm unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := openApp(cmd.Context())
		defer closeApp(app)

		if !app.Persistent() {
			return fmt.Errorf("cannot reset: %w", internal.ErrPersistenceUnavailable)
		}

		days := len(app.Store.Records())
		if !resetYes {
			prompt := fmt.Sprintf("This deletes %d recorded day(s) from %s. Type %q to confirm:", days, app.DBPath, resetConfirmation)
			if !internal.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt, resetConfirmation) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Aborted, nothing was deleted.")
				return nil
			}
		}

		if err := app.Store.ClearAll(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear stats: %w", err)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d recorded day(s).\n", days)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}
