package internal

import (
	"context"
	"database/sql"
	"errors"
	"sync"
)

// KVStore is the persistence capability the Stats Store writes through.
// Get reports found=false for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SQLiteKV stores values in the deepWorkKV table
type SQLiteKV struct {
	db   *sql.DB
	path string
}

// NewSQLiteKV wraps an open database. path is only used in error messages.
func NewSQLiteKV(db *sql.DB, path string) *SQLiteKV {
	return &SQLiteKV{db: db, path: path}
}

func (s *SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT value FROM "+KVTable+" WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, &StorageError{Path: s.path, Op: "read", Err: err}
	}
	if !value.Valid {
		return "", false, nil
	}
	return value.String, true, nil
}

func (s *SQLiteKV) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO "+KVTable+" (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return &StorageError{Path: s.path, Op: "write", Err: err}
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM "+KVTable+" WHERE key = ?", key); err != nil {
		return &StorageError{Path: s.path, Op: "delete", Err: err}
	}
	return nil
}

// MemoryKV is an in-process KVStore. Err, when set, fails every call.
type MemoryKV struct {
	mu     sync.Mutex
	values map[string]string
	Err    error
}

// NewMemoryKV returns an empty MemoryKV
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", false, &StorageError{Path: "memory", Op: "read", Err: m.Err}
	}
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryKV) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &StorageError{Path: "memory", Op: "write", Err: m.Err}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return &StorageError{Path: "memory", Op: "delete", Err: m.Err}
	}
	delete(m.values, key)
	return nil
}

// Fail sets or clears the injected failure.
func (m *MemoryKV) Fail(err error) {
	m.mu.Lock()
	m.Err = err
	m.mu.Unlock()
}
