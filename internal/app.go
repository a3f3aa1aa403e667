package internal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// App bundles the opened database, the Stats Store and the clock shared by
// every command.
type App struct {
	DB     *sql.DB
	Store  *StatsStore
	Clock  Clock
	DBPath string
}

// OpenApp opens the database at dbPath and loads the stats snapshot.
func OpenApp(ctx context.Context, dbPath string) (*App, error) {
	db, err := OpenDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open stats database: %w", err)
	}

	store := NewStatsStore(NewSQLiteKV(db, dbPath))
	store.Load(ctx)

	return &App{
		DB:     db,
		Store:  store,
		Clock:  SystemClock{},
		DBPath: dbPath,
	}, nil
}

// NewMemoryApp returns an App backed by memory only. Commands fall back to
// it when the database cannot be opened so a session can still run.
func NewMemoryApp() *App {
	store := NewStatsStore(NewMemoryKV())
	return &App{
		Store:  store,
		Clock:  SystemClock{},
		DBPath: ":memory:",
	}
}

// Persistent reports whether the app writes to a database.
func (a *App) Persistent() bool {
	return a.DB != nil
}

// NewEngine creates a Session Engine whose completions are recorded in the
// store before the handler returns.
func (a *App) NewEngine(tickers TickerFactory) *Engine {
	engine := NewEngine(EngineOptions{Clock: a.Clock, Tickers: tickers})
	engine.OnComplete(func(completion Completion) {
		if err := a.Store.Apply(context.Background(), completion); err != nil {
			LogWarn("Session recorded in memory only: %v", err)
		}
	})
	return engine
}

// Close flushes pending writes and closes the database. It reports an
// error when stats are still unsaved afterwards.
func (a *App) Close() error {
	var errs []error
	if err := a.Store.Flush(context.Background()); err != nil {
		LogError("Unsaved stats were lost: %v", err)
	}
	if a.Store.Pending() {
		errs = append(errs, fmt.Errorf("stats were not saved to %s: %w", a.DBPath, ErrPersistenceUnavailable))
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
