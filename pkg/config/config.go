// Package config loads daemon/client tuning knobs from defaults, an
// optional .arvorc.toml file, and ARVO_* environment variables, in that
// order of increasing precedence. None of these settings affect
// object-graph or reference semantics — only logging, transport timeouts,
// and wire compression.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable ambient setting.
type Config struct {
	LogLevel           string        `toml:"log_level"`
	DaemonReadTimeout  time.Duration `toml:"-"`
	DaemonWriteTimeout time.Duration `toml:"-"`
	WireCompression    bool          `toml:"wire_compression"`

	// ReadTimeoutSeconds/WriteTimeoutSeconds are the TOML-facing fields;
	// DaemonReadTimeout/DaemonWriteTimeout are derived from them.
	ReadTimeoutSeconds  int `toml:"daemon_read_timeout_seconds"`
	WriteTimeoutSeconds int `toml:"daemon_write_timeout_seconds"`
}

// Default returns the built-in configuration used when no file or
// environment override is present.
func Default() Config {
	return Config{
		LogLevel:            "info",
		DaemonReadTimeout:   10 * time.Second,
		DaemonWriteTimeout:  10 * time.Second,
		ReadTimeoutSeconds:  10,
		WriteTimeoutSeconds: 10,
		WireCompression:     true,
	}
}

// Load resolves the effective configuration: defaults, overridden by
// ".arvorc.toml" in root if present, overridden by ARVO_* environment
// variables if set.
func Load(root string) (Config, error) {
	cfg := Default()

	path := filepath.Join(root, ".arvorc.toml")
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	if v := os.Getenv("ARVO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ARVO_DAEMON_READ_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ReadTimeoutSeconds = n
		}
	}
	if v := os.Getenv("ARVO_DAEMON_WRITE_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.WriteTimeoutSeconds = n
		}
	}
	if v := os.Getenv("ARVO_WIRE_COMPRESSION"); v != "" {
		cfg.WireCompression = v != "0" && v != "false"
	}

	cfg.DaemonReadTimeout = time.Duration(cfg.ReadTimeoutSeconds) * time.Second
	cfg.DaemonWriteTimeout = time.Duration(cfg.WriteTimeoutSeconds) * time.Second
	return cfg, nil
}
