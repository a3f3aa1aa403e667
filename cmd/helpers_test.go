package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/deepwork/internal"
	"github.com/iksnae/deepwork/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var testNow = time.Date(2024, time.March, 4, 18, 0, 0, 0, time.UTC)

const testSnapshot = `[{"date":"2024-03-01","duration":1500},{"date":"2024-03-02","duration":10800},{"date":"2024-03-04","duration":25200}]`

// resetFlags restores every flag to its default so one Execute does not leak
// into the next.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// executeCommand runs the root command with a fixed clock, no config file
// and stdin as input.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	clock = internal.FixedClock{At: testNow}
	t.Cleanup(func() { clock = internal.SystemClock{} })

	configFile := filepath.Join(testutil.CreateTempDir(t), "config.yaml")
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))

	err := rootCmd.Execute()
	return out.String(), err
}

// fixtureDB creates a database holding snapshot and returns its path
func fixtureDB(t *testing.T, snapshot string) string {
	t.Helper()
	path := filepath.Join(testutil.CreateTempDir(t), "deepwork.db")
	testutil.CreateSQLiteFixture(t, path, snapshot)
	return path
}
