package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "deepwork"

// DataPaths holds the resolved locations for deepwork files
type DataPaths struct {
	DataDir    string // directory holding the database
	ConfigFile string // config.yaml location
}

// DetectDataPaths resolves default locations based on the operating system
func DetectDataPaths() (DataPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return DataPaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(home, ".config")
	}

	var dataDir string
	switch runtime.GOOS {
	case "darwin":
		dataDir = filepath.Join(home, "Library/Application Support", appName)
	case "linux":
		if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
			dataDir = filepath.Join(xdg, appName)
		} else {
			dataDir = filepath.Join(home, ".local/share", appName)
		}
	default:
		dataDir = filepath.Join(configDir, appName)
	}

	return DataPaths{
		DataDir:    dataDir,
		ConfigFile: filepath.Join(configDir, appName, "config.yaml"),
	}, nil
}

// DatabasePath returns the default SQLite file path
func (dp DataPaths) DatabasePath() string {
	return filepath.Join(dp.DataDir, appName+".db")
}

// DatabaseExists checks if the database file exists
func (dp DataPaths) DatabaseExists() bool {
	_, err := os.Stat(dp.DatabasePath())
	return err == nil
}
