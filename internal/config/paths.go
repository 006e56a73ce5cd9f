package config

import (
	"os"
	"path/filepath"
)

// StoreFilename is the SQLite file name kept under the data directory.
const StoreFilename = "aurum.sqlite3"

// GetDataDir returns the data directory from env var, config, or the
// XDG default, in that order.
func GetDataDir(cfg Config) string {
	if v := os.Getenv("AURUM_DATA_DIR"); v != "" {
		return v
	}
	if cfg.General.DataDir != "" {
		return cfg.General.DataDir
	}
	return defaultDataDir()
}

// StorePath returns the store file location under the effective data
// directory.
func StorePath(cfg Config) string {
	return filepath.Join(GetDataDir(cfg), StoreFilename)
}

func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "aurum")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "aurum")
}
