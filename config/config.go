package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultStateFileName  = "daytrack.json"
	DefaultDBFileName     = "daytrack.db"
	DefaultLogFileName    = "daytrack.log"
)

// Storage backends selectable in the config file.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Backend selects where the state blob lives: "json" (a plain file)
	// or "sqlite" (a single-row table).
	Backend   string `toml:"backend"`
	StatePath string `toml:"state_path"`
	DBPath    string `toml:"db_path"`
	LogPath   string `toml:"log_path"`

	// ResourcesURL is the catalog endpoint the resources page fetches.
	ResourcesURL string `toml:"resources_url"`
}

// DefaultDir returns the per-user config directory, created on demand.
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	dir := filepath.Join(base, "daytrack")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return dir, nil
}

// LoadOrCreate reads the TOML config at path, writing the defaults first
// when the file does not exist yet. Empty fields fall back to defaults next
// to the config file.
func LoadOrCreate(path string) (Config, error) {
	dir := filepath.Dir(path)
	cfg := defaultConfig(dir)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	defaults := defaultConfig(dir)
	if cfg.Backend == "" {
		cfg.Backend = defaults.Backend
	}
	if cfg.Backend != BackendJSON && cfg.Backend != BackendSQLite {
		return cfg, fmt.Errorf("unknown backend %q (want %q or %q)", cfg.Backend, BackendJSON, BackendSQLite)
	}
	if cfg.StatePath == "" {
		cfg.StatePath = defaults.StatePath
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaults.DBPath
	}
	if cfg.LogPath == "" {
		cfg.LogPath = defaults.LogPath
	}
	if cfg.ResourcesURL == "" {
		cfg.ResourcesURL = defaults.ResourcesURL
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig(dir string) Config {
	return Config{
		Backend:      BackendJSON,
		StatePath:    filepath.Join(dir, DefaultStateFileName),
		DBPath:       filepath.Join(dir, DefaultDBFileName),
		LogPath:      filepath.Join(dir, DefaultLogFileName),
		ResourcesURL: "https://jsonplaceholder.typicode.com/posts?_limit=9",
	}
}
