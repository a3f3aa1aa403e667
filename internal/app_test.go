package internal

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iksnae/deepwork/testutil"
)

func TestOpenApp_LoadsSnapshot(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "deepwork.db")
	testutil.CreateSQLiteFixture(t, dbPath, `[{"date":"2024-03-01","duration":1500}]`)

	app, err := OpenApp(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenApp() error = %v", err)
	}
	defer app.Close()

	if !app.Persistent() {
		t.Error("Persistent() should be true for a database-backed app")
	}
	if got, ok := app.Store.Lookup("2024-03-01"); !ok || got != 1500 {
		t.Errorf("Lookup() = %d, %v; want 1500", got, ok)
	}
}

func TestApp_EngineRecordsCompletion(t *testing.T) {
	dbPath := filepath.Join(testutil.CreateTempDir(t), "deepwork.db")
	app, err := OpenApp(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenApp() error = %v", err)
	}
	app.Clock = FixedClock{At: testNow}

	tickers := &ManualTickers{}
	engine := app.NewEngine(tickers.New)
	if err := engine.Configure(90); err != nil {
		t.Fatal(err)
	}
	engine.Start()
	fireTicks(t, tickers, 30)
	engine.Finish()

	if err := app.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenApp(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("OpenApp() error = %v", err)
	}
	defer reopened.Close()
	if got, _ := reopened.Store.Lookup(DateKey(testNow)); got != 30 {
		t.Errorf("persisted seconds = %d, want 30", got)
	}
}

func TestNewMemoryApp(t *testing.T) {
	app := NewMemoryApp()
	if app.Persistent() {
		t.Error("memory app should not be persistent")
	}
	if err := app.Store.RecordDuration(context.Background(), "2024-03-01", 60); err != nil {
		t.Errorf("RecordDuration() error = %v", err)
	}
	if err := app.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestApp_CloseReportsUnsavedStats(t *testing.T) {
	kv := NewMemoryKV()
	app := &App{Store: NewStatsStore(kv), Clock: FixedClock{At: testNow}, DBPath: "stats.db"}

	kv.Fail(errors.New("disk full"))
	if err := app.Store.RecordDuration(context.Background(), "2024-03-04", 60); err == nil {
		t.Fatal("RecordDuration() should report the failed write")
	}

	err := app.Close()
	if !errors.Is(err, ErrPersistenceUnavailable) {
		t.Fatalf("Close() error = %v, want ErrPersistenceUnavailable", err)
	}
	if !app.Store.Pending() {
		t.Error("the snapshot should still be pending")
	}

	kv.Fail(nil)
	if err := app.Close(); err != nil {
		t.Errorf("Close() after recovery error = %v", err)
	}
	if app.Store.Pending() {
		t.Error("Close() should have flushed the snapshot")
	}
}
