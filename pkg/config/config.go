package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public catalog read endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2/pokemon/"

// Config holds all Pokedex configuration.
type Config struct {
	Catalog     CatalogConfig `yaml:"catalog"`
	Storage     StorageConfig `yaml:"storage"`
	Cache       CacheConfig   `yaml:"cache"`
	Log         LogConfig     `yaml:"log"`
	Language    string        `yaml:"language"`
	MetricsAddr string        `yaml:"metrics_addr"`
}

// CatalogConfig controls the remote catalog client.
// A zero Timeout means requests are never timed out by the client.
// A zero MaxConcurrency resolves every item of a batch at once.
type CatalogConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	InitialLimit   int           `yaml:"initial_limit"`
	MaxConcurrency int           `yaml:"max_concurrency"`
}

// StorageConfig locates the local key/value storage holding favorites.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// CacheConfig controls the record cache. The in-memory cache is always on;
// Persist adds a SQLite layer that survives between sessions.
type CacheConfig struct {
	Persist bool          `yaml:"persist"`
	DBPath  string        `yaml:"db_path"`
	TTL     time.Duration `yaml:"ttl"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:      DefaultBaseURL,
			InitialLimit: 20,
		},
		Storage: StorageConfig{
			DBPath: "pokedex.db",
		},
		Cache: CacheConfig{
			Persist: false,
			DBPath:  "pokedex.db",
			TTL:     24 * time.Hour,
		},
		Log: LogConfig{
			Level: "warn",
		},
		Language: "es",
	}
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it is set and falls back to Default otherwise.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate rejects values the rest of the program cannot work with.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url is required")
	}
	if c.Catalog.InitialLimit <= 0 {
		return fmt.Errorf("catalog.initial_limit must be positive, got %d", c.Catalog.InitialLimit)
	}
	if c.Catalog.MaxConcurrency < 0 {
		return fmt.Errorf("catalog.max_concurrency must not be negative, got %d", c.Catalog.MaxConcurrency)
	}
	if c.Storage.DBPath == "" {
		return fmt.Errorf("storage.db_path is required")
	}
	if c.Cache.Persist && c.Cache.DBPath == "" {
		return fmt.Errorf("cache.db_path is required when cache.persist is enabled")
	}
	switch c.Language {
	case "es", "en":
	default:
		return fmt.Errorf("unsupported language %q (use es or en)", c.Language)
	}
	return nil
}
