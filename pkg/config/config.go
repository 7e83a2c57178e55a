// Package config loads the conceptgraph configuration file.
//
// Configuration lives at ~/.config/conceptgraph/config.toml (or
// $XDG_CONFIG_HOME/conceptgraph/config.toml) and is optional: a missing file
// yields the defaults. Environment variables override the backend URL and
// Redis address so containerized setups don't need a file at all.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/autonotex/conceptgraph/pkg/diagram"
	"github.com/autonotex/conceptgraph/pkg/errors"
	"github.com/autonotex/conceptgraph/pkg/layout"
)

// appName is used for the config and cache directory names.
const appName = "conceptgraph"

// Cache backend names accepted in the config file.
const (
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
	CacheBackendNone  = "none"
)

// Environment variables honored as overrides.
const (
	EnvBackendURL = "CONCEPTGRAPH_BACKEND_URL"
	EnvRedisAddr  = "CONCEPTGRAPH_REDIS_ADDR"
)

// Config is the top-level application configuration.
type Config struct {
	// BackendURL is the base URL of the analysis backend.
	BackendURL string `toml:"backend_url"`

	Cache   CacheConfig   `toml:"cache"`
	Layout  LayoutConfig  `toml:"layout"`
	Render  RenderConfig  `toml:"render"`
	Diagram DiagramConfig `toml:"diagram"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string `toml:"backend"` // "file", "redis", "none"
	Dir     string `toml:"dir"`     // file backend directory, empty = XDG default

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
}

// LayoutConfig carries the layout spacing constants.
type LayoutConfig struct {
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	NodeGap    float64 `toml:"node_gap"`
	RankGap    float64 `toml:"rank_gap"`
}

// ToLayout converts to the layout engine's configuration type.
func (c LayoutConfig) ToLayout() layout.Config {
	return layout.Config{
		NodeWidth:  c.NodeWidth,
		NodeHeight: c.NodeHeight,
		NodeGap:    c.NodeGap,
		RankGap:    c.RankGap,
	}
}

// RenderConfig carries rendering preferences.
type RenderConfig struct {
	Style string `toml:"style"` // "light" or "dark"
}

// DiagramConfig carries the diagram engine configuration (see pkg/diagram).
type DiagramConfig struct {
	Theme string `toml:"theme"`
}

// ToDiagram converts to the diagram engine's configuration type.
func (c DiagramConfig) ToDiagram() diagram.Config {
	return diagram.Config{Theme: c.Theme}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL: "http://localhost:5000",
		Cache:      CacheConfig{Backend: CacheBackendFile, RedisAddr: "localhost:6379"},
		Layout: LayoutConfig{
			NodeWidth:  layout.DefaultNodeWidth,
			NodeHeight: layout.DefaultNodeHeight,
			NodeGap:    layout.DefaultNodeGap,
			RankGap:    layout.DefaultRankGap,
		},
		Render:  RenderConfig{Style: "light"},
		Diagram: DiagramConfig{Theme: diagram.ThemeDefault},
	}
}

// Load reads the configuration from path. A missing file returns the
// defaults; a malformed file is an error. Environment overrides are applied
// after the file is read.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if os.IsNotExist(err) {
				applyEnv(&cfg)
				return cfg, nil
			}
			return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
		}
	}

	applyEnv(&cfg)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads from the standard config path.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		// No home directory: run on defaults
		cfg := Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	return Load(path)
}

// DefaultPath returns the standard config file location following XDG.
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory, honoring the config override and
// falling back to the XDG cache home.
func (c *Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv(EnvBackendURL); url != "" {
		cfg.BackendURL = url
	}
	if addr := os.Getenv(EnvRedisAddr); addr != "" {
		cfg.Cache.RedisAddr = addr
	}
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendFile, CacheBackendRedis, CacheBackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown cache backend %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.BackendURL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "backend_url cannot be empty")
	}
	return nil
}
