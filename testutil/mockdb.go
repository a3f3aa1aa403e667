package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

const kvTableSQL = `
	CREATE TABLE IF NOT EXISTS deepWorkKV (
		key TEXT PRIMARY KEY,
		value TEXT
	)`

// CreateInMemoryDB creates an in-memory SQLite database with the key/value table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(kvTableSQL); err != nil {
		db.Close()
		t.Fatalf("Failed to create deepWorkKV table: %v", err)
	}

	return db
}

// CreateTestDB creates a test database holding a persisted stats snapshot
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	InsertKV(t, db, "deepWorkStats", `[{"date":"2024-03-01","duration":1500},{"date":"2024-03-02","duration":10800}]`)
	return db
}

// InsertKV inserts or replaces a key/value row
func InsertKV(t *testing.T, db *sql.DB, key, value string) {
	t.Helper()
	insertSQL := "INSERT OR REPLACE INTO deepWorkKV (key, value) VALUES (?, ?)"
	if _, err := db.Exec(insertSQL, key, value); err != nil {
		t.Fatalf("Failed to insert %s: %v", key, err)
	}
}

// ReadKV returns the stored value for key and whether the row exists
func ReadKV(t *testing.T, db *sql.DB, key string) (string, bool) {
	t.Helper()
	var value sql.NullString
	err := db.QueryRow("SELECT value FROM deepWorkKV WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false
	}
	if err != nil {
		t.Fatalf("Failed to read %s: %v", key, err)
	}
	return value.String, value.Valid
}
