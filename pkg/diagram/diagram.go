// Package diagram owns the process-wide configuration of the external
// diagram-rendering engine used for Mermaid-style flowchart output.
//
// The engine requires one-time global initialization before any definition
// is rendered. That state is modeled as an explicit Setup call with an
// idempotent re-initialization guard instead of ambient mutable globals:
// calling Setup repeatedly with the same configuration is a no-op, and
// attempting to reconfigure a live engine is reported as an error rather
// than silently changing output mid-process.
package diagram

import (
	"errors"
	"sync"
)

// ErrReconfigured is returned by Setup when the engine is already
// initialized with a different configuration.
var ErrReconfigured = errors.New("diagram engine already initialized with a different configuration")

// Themes understood by the rendering engine.
const (
	ThemeDefault = "default"
	ThemeDark    = "dark"
	ThemeNeutral = "neutral"
)

// Config is the process-wide engine configuration.
type Config struct {
	Theme         string // color theme, defaults to ThemeDefault
	SecurityLevel string // script handling, defaults to "strict"
	FontFamily    string // defaults to "sans-serif"
}

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.Theme == "" {
		c.Theme = ThemeDefault
	}
	if c.SecurityLevel == "" {
		c.SecurityLevel = "strict"
	}
	if c.FontFamily == "" {
		c.FontFamily = "sans-serif"
	}
	return c
}

var (
	mu          sync.Mutex
	current     Config
	initialized bool
)

// Setup initializes the engine configuration.
//
// The first call wins; subsequent calls with an equal configuration return
// nil without re-initializing, and calls with a different configuration
// return ErrReconfigured.
func Setup(cfg Config) error {
	mu.Lock()
	defer mu.Unlock()

	cfg = cfg.withDefaults()
	if initialized {
		if cfg == current {
			return nil
		}
		return ErrReconfigured
	}

	current = cfg
	initialized = true
	return nil
}

// Current returns the active configuration. When Setup has not been called
// the defaults are returned, so read paths never observe a half-configured
// engine.
func Current() Config {
	mu.Lock()
	defer mu.Unlock()
	if !initialized {
		return Config{}.withDefaults()
	}
	return current
}

// Initialized reports whether Setup has been called.
func Initialized() bool {
	mu.Lock()
	defer mu.Unlock()
	return initialized
}

// Reset clears the initialization state.
// This is primarily useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = Config{}
	initialized = false
}
