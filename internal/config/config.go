package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration for a board workspace.
type Config struct {
	Version int     `yaml:"version"`
	Storage Storage `yaml:"storage"`
	Log     Log     `yaml:"log"`
	Server  Server  `yaml:"server"`
}

// Storage describes where the key-value area lives.
type Storage struct {
	Path      string `yaml:"path"`                 // SQLite file; ":memory:" keeps nothing
	KeyPrefix string `yaml:"key_prefix,omitempty"` // e.g. "board-app-" for the legacy key names
}

// Log configures the logrus logger.
type Log struct {
	Level  string `yaml:"level"`            // debug, info, warn, error
	Format string `yaml:"format,omitempty"` // "text" or "json"
	File   string `yaml:"file,omitempty"`   // empty = stderr
}

// Server configures the local JSON API.
type Server struct {
	Addr       string `yaml:"addr"`
	AllowReset bool   `yaml:"allow_reset,omitempty"` // expose POST /reset
}

// Environment overrides applied after the YAML file.
const (
	EnvDB         = "BOARD_DB"
	EnvKeyPrefix  = "BOARD_KEY_PREFIX"
	EnvLogLevel   = "BOARD_LOG_LEVEL"
	EnvLogFile    = "BOARD_LOG_FILE"
	EnvAddr       = "BOARD_ADDR"
	EnvAllowReset = "BOARD_ALLOW_RESET"
)

// DefaultConfig returns the config written by `board init`.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Storage: Storage{Path: ".board/board.db"},
		Log:     Log{Level: "info", Format: "text", File: ".board/board.log"},
		Server:  Server{Addr: "127.0.0.1:8080"},
	}
}

// Load reads and parses the config file at the given path. A missing file
// is not an error: defaults are used. Values from a .env file in the
// working directory and the process environment override the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	// .env is optional; it never overrides variables already exported.
	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the given path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(EnvDB); ok {
		c.Storage.Path = v
	}
	if v, ok := os.LookupEnv(EnvKeyPrefix); ok {
		c.Storage.KeyPrefix = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		c.Log.Level = v
	}
	if v, ok := os.LookupEnv(EnvLogFile); ok {
		c.Log.File = v
	}
	if v, ok := os.LookupEnv(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvAllowReset); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Server.AllowReset = b
		}
	}
}

func (c *Config) validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be 'text' or 'json', got %q", c.Log.Format)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
