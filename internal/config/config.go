package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/boozedog/contextcrafter/internal/persist"
)

// Config holds the global contextcrafter configuration.
type Config struct {
	Settings SettingsConfig `toml:"settings"`
	Store    StoreConfig    `toml:"store"`
	Web      WebConfig      `toml:"web"`
}

// SettingsConfig holds global settings.
type SettingsConfig struct {
	LogMode     string `toml:"log_mode"`
	CatalogPath string `toml:"catalog_path"`
}

// StoreConfig selects where sessions and prompt history are kept.
type StoreConfig struct {
	Backend     string `toml:"backend"`
	DataDir     string `toml:"data_dir"`
	RedisAddr   string `toml:"redis_addr"`
	RedisPrefix string `toml:"redis_prefix"`
}

// WebConfig holds settings for the local web UI.
type WebConfig struct {
	Port int `toml:"port"`
}

// DefaultDir returns the default config directory (~/.contextcrafter).
// If CONTEXTCRAFTER_DIR is set, uses that path instead.
func DefaultDir() (string, error) {
	if d := os.Getenv("CONTEXTCRAFTER_DIR"); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".contextcrafter"), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads config from the default path, applying defaults and
// environment overrides. If the file doesn't exist, returns a config with
// defaults.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads config from the given path, applying defaults and
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the default path.
func (c *Config) Save() error {
	path, err := DefaultPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes config to the given path, creating directories as needed.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// DataDir returns the expanded data directory path.
func (c *Config) DataDir() (string, error) {
	return ExpandPath(c.Store.DataDir)
}

// CatalogPath returns the expanded custom catalog path, or "" for the
// built-in catalog.
func (c *Config) CatalogPath() (string, error) {
	if c.Settings.CatalogPath == "" {
		return "", nil
	}
	return ExpandPath(c.Settings.CatalogPath)
}

// StoreOptions returns the persistence options for the configured backend.
func (c *Config) StoreOptions() (persist.Options, error) {
	backend := persist.Backend(c.Store.Backend)
	if !persist.ValidBackends[backend] {
		return persist.Options{}, fmt.Errorf("unknown store backend %q: use file, sqlite, redis or memory", c.Store.Backend)
	}
	dir, err := c.DataDir()
	if err != nil {
		return persist.Options{}, err
	}
	return persist.Options{
		Backend:     backend,
		Dir:         dir,
		RedisAddr:   c.Store.RedisAddr,
		RedisPrefix: c.Store.RedisPrefix,
	}, nil
}

// EnsureDirs creates the data dir if the backend keeps files there.
func (c *Config) EnsureDirs() error {
	switch persist.Backend(c.Store.Backend) {
	case persist.BackendFile, persist.BackendSQLite:
	default:
		return nil
	}
	dir, err := c.DataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CONTEXTCRAFTER_STORE")); v != "" {
		c.Store.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("CONTEXTCRAFTER_LOG")); v != "" {
		c.Settings.LogMode = v
	}
	if c.Store.RedisAddr == "" {
		c.Store.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	}
}

func (c *Config) applyDefaults() error {
	if c.Settings.LogMode == "" {
		c.Settings.LogMode = "dev"
	}
	if c.Store.Backend == "" {
		c.Store.Backend = string(persist.BackendFile)
	}
	if c.Store.DataDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		c.Store.DataDir = filepath.Join(dir, "data")
	}
	if c.Store.RedisPrefix == "" {
		c.Store.RedisPrefix = "ccraft:"
	}
	if c.Web.Port == 0 {
		c.Web.Port = 8080
	}
	return nil
}
