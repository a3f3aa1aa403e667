package internal

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDetectDataPaths(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Setenv("XDG_DATA_HOME", "")
	}

	paths, err := DetectDataPaths()
	if err != nil {
		t.Fatalf("DetectDataPaths() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := ""
	switch runtime.GOOS {
	case "darwin":
		expected = filepath.Join(home, "Library/Application Support/deepwork")
	case "linux":
		expected = filepath.Join(home, ".local/share/deepwork")
	}
	if expected != "" && paths.DataDir != expected {
		t.Errorf("DataDir = %v, want %v", paths.DataDir, expected)
	}

	if filepath.Base(paths.ConfigFile) != "config.yaml" {
		t.Errorf("ConfigFile = %v, want a config.yaml path", paths.ConfigFile)
	}
}

func TestDetectDataPaths_XDG(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_DATA_HOME only applies on linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_DATA_HOME", xdg)

	paths, err := DetectDataPaths()
	if err != nil {
		t.Fatalf("DetectDataPaths() error = %v", err)
	}
	if want := filepath.Join(xdg, "deepwork"); paths.DataDir != want {
		t.Errorf("DataDir = %v, want %v", paths.DataDir, want)
	}
}

func TestDataPaths_Database(t *testing.T) {
	dir := t.TempDir()
	paths := DataPaths{DataDir: dir}

	if want := filepath.Join(dir, "deepwork.db"); paths.DatabasePath() != want {
		t.Errorf("DatabasePath() = %v, want %v", paths.DatabasePath(), want)
	}
	if paths.DatabaseExists() {
		t.Error("DatabaseExists() should be false before the file is created")
	}

	if err := os.WriteFile(paths.DatabasePath(), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !paths.DatabaseExists() {
		t.Error("DatabaseExists() should be true once the file exists")
	}
}
