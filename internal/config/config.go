// Package config loads service settings from defaults, an optional YAML or
// TOML file, and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr         = ":8080"
	DefaultLogLevel     = "info"
	DefaultMaxBodyBytes = 1 << 20
	DefaultListCacheTTL = 30 * time.Second

	EnvAddr     = "TASKAPI_ADDR"
	EnvLogLevel = "TASKAPI_LOG_LEVEL"
)

// Config holds everything the serve command needs.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr" toml:"addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" toml:"log_level"`

	// MaxBodyBytes caps POST bodies. Zero disables the cap.
	MaxBodyBytes int64 `yaml:"max_body_bytes" toml:"max_body_bytes"`

	// ListCacheTTL bounds how long an encoded task list is kept. Zero
	// disables the cache.
	ListCacheTTL time.Duration `yaml:"list_cache_ttl" toml:"list_cache_ttl"`
}

func Default() Config {
	return Config{
		Addr:         DefaultAddr,
		LogLevel:     DefaultLogLevel,
		MaxBodyBytes: DefaultMaxBodyBytes,
		ListCacheTTL: DefaultListCacheTTL,
	}
}

// Load builds a Config from defaults, then path (if non-empty), then the
// environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), c); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("addr must not be empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must be >= 0, got %d", c.MaxBodyBytes)
	}
	if c.ListCacheTTL < 0 {
		return fmt.Errorf("list_cache_ttl must be >= 0, got %s", c.ListCacheTTL)
	}
	return nil
}

// Level maps LogLevel to a slog level.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	return l, nil
}
