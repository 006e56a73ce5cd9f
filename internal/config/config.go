package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all aurum configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Logging LoggingConfig `toml:"logging"`
	Serve   ServeConfig   `toml:"serve"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
}

// LoggingConfig controls daemon log output.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServeConfig holds forecast daemon settings.
type ServeConfig struct {
	Addr             string `toml:"addr"`
	PollIntervalSecs int    `toml:"poll_interval_secs"`
	EventsBuffer     int    `toml:"events_buffer"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Serve: ServeConfig{
			Addr:             "127.0.0.1:8517",
			PollIntervalSecs: 15,
			EventsBuffer:     200,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "aurum")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "aurum")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// GetLogLevel returns the log level from env var or config, in that order.
func GetLogLevel(cfg Config) string {
	if v := os.Getenv("AURUM_LOG_LEVEL"); v != "" {
		return v
	}
	return cfg.Logging.Level
}

// GetLogFormat returns the log format from env var or config, in that order.
func GetLogFormat(cfg Config) string {
	if v := os.Getenv("AURUM_LOG_FORMAT"); v != "" {
		return v
	}
	return cfg.Logging.Format
}

// GetServeAddr returns the daemon listen address from env var or config,
// in that order.
func GetServeAddr(cfg Config) string {
	if v := os.Getenv("AURUM_SERVE_ADDR"); v != "" {
		return v
	}
	return cfg.Serve.Addr
}
