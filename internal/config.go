package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds user preferences loaded from config.yaml
type Config struct {
	Database     string
	LogLevel     LogLevel
	ExportFormat string
}

type yamlConfig struct {
	Database     string `yaml:"database"`
	LogLevel     string `yaml:"log_level"`
	ExportFormat string `yaml:"export_format"`
}

var exportFormats = map[string]bool{"json": true, "jsonl": true, "yaml": true, "md": true, "markdown": true}

// DefaultConfig returns the configuration used when no file exists
func DefaultConfig(paths DataPaths) Config {
	return Config{
		Database:     paths.DatabasePath(),
		LogLevel:     LogLevelInfo,
		ExportFormat: "json",
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error;
// individually invalid fields keep their default.
func LoadConfig(path string, paths DataPaths) (Config, error) {
	cfg := DefaultConfig(paths)

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&cfg, fileData, filepath.Dir(path))
	return cfg, nil
}

// MarshalConfig renders cfg in the config.yaml layout.
func MarshalConfig(cfg Config) ([]byte, error) {
	fileData := yamlConfig{
		Database:     cfg.Database,
		LogLevel:     logLevelName(cfg.LogLevel),
		ExportFormat: cfg.ExportFormat,
	}
	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return nil, fmt.Errorf("marshal config yaml: %w", err)
	}
	return serialized, nil
}

// SaveConfig writes cfg as YAML
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// SetConfigValue updates the field of cfg stored under the YAML key. Unlike
// LoadConfig it rejects invalid values instead of keeping the old one.
func SetConfigValue(cfg *Config, key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "database":
		if value == "" {
			return fmt.Errorf("database must not be empty")
		}
		cfg.Database = value
	case "log_level":
		level, ok := ParseLogLevel(value)
		if !ok {
			return fmt.Errorf("invalid log_level %q (error, warn, info, debug)", value)
		}
		cfg.LogLevel = level
	case "export_format":
		format := strings.ToLower(value)
		if !exportFormats[format] {
			return fmt.Errorf("invalid export_format %q (json, jsonl, yaml, md)", value)
		}
		cfg.ExportFormat = format
	default:
		return fmt.Errorf("unknown config key %q (database, log_level, export_format)", key)
	}
	return nil
}

func applyYamlConfig(cfg *Config, fileData yamlConfig, baseDir string) {
	if db := strings.TrimSpace(fileData.Database); db != "" {
		if !filepath.IsAbs(db) && db != ":memory:" {
			db = filepath.Join(baseDir, db)
		}
		cfg.Database = db
	}
	if level, ok := ParseLogLevel(fileData.LogLevel); ok {
		cfg.LogLevel = level
	}
	if format := strings.ToLower(strings.TrimSpace(fileData.ExportFormat)); exportFormats[format] {
		cfg.ExportFormat = format
	}
}

func logLevelName(level LogLevel) string {
	switch level {
	case LogLevelError:
		return "error"
	case LogLevelWarn:
		return "warn"
	case LogLevelDebug:
		return "debug"
	default:
		return "info"
	}
}
