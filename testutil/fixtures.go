package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// CreateSQLiteFixture creates an on-disk database at dbPath holding snapshot
// under the stats key. An empty snapshot creates only the table.
func CreateSQLiteFixture(t *testing.T, dbPath string, snapshot string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(kvTableSQL); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	if snapshot == "" {
		return
	}
	if _, err := db.Exec("INSERT OR REPLACE INTO deepWorkKV (key, value) VALUES (?, ?)", "deepWorkStats", snapshot); err != nil {
		t.Fatalf("Failed to insert snapshot: %v", err)
	}
}

// CreateConfigFixture writes a config.yaml into dir and returns its path
func CreateConfigFixture(t *testing.T, dir string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}
