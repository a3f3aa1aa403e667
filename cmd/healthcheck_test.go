package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/deepwork/testutil"
)

func TestHealthcheckCommand(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
		create   bool
		want     []string
		wantErr  bool
	}{
		{
			name:     "recorded days",
			snapshot: testSnapshot,
			create:   true,
			want:     []string{"✅ Database ready", "✅ 3 day(s) recorded", "Health check passed"},
		},
		{
			name:     "malformed entries",
			snapshot: `[{"date":"2024-03-01","duration":60},{"duration":1}]`,
			create:   true,
			want:     []string{"✅ 1 day(s) recorded", "1 malformed entr(ies)"},
		},
		{
			name:   "fresh install",
			create: false,
			want:   []string{"No stats recorded yet", "Health check passed"},
		},
		{
			name:     "unreadable snapshot",
			snapshot: "{broken",
			create:   true,
			want:     []string{"unreadable"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := filepath.Join(testutil.CreateTempDir(t), "deepwork.db")
			if tt.create {
				testutil.CreateSQLiteFixture(t, db, tt.snapshot)
			}

			out, err := executeCommand(t, "", "--db", db, "healthcheck", "--details")
			if (err != nil) != tt.wantErr {
				t.Fatalf("healthcheck error = %v, wantErr %v\n%s", err, tt.wantErr, out)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestHealthcheckDetailsFlag(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() != "healthcheck" {
			continue
		}
		if c.Flag("details") == nil || c.Flags().ShorthandLookup("d") == nil {
			t.Error("healthcheck command should have --details/-d")
		}
		return
	}
	t.Error("healthcheck command not found in root command")
}
