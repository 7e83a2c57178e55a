package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/errors"
	"github.com/autonotex/conceptgraph/pkg/layout"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://localhost:5000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Layout.NodeGap != layout.DefaultNodeGap {
		t.Errorf("NodeGap = %v", cfg.Layout.NodeGap)
	}
	if cfg.Cache.Backend != CacheBackendFile {
		t.Errorf("cache backend = %q", cfg.Cache.Backend)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend_url = "http://notes.example.com"

[cache]
backend = "redis"
redis_addr = "redis.internal:6379"

[layout]
node_gap = 40.0
rank_gap = 120.0

[render]
style = "dark"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://notes.example.com" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Cache.Backend != CacheBackendRedis || cfg.Cache.RedisAddr != "redis.internal:6379" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
	if cfg.Layout.NodeGap != 40 || cfg.Layout.RankGap != 120 {
		t.Errorf("layout = %+v", cfg.Layout)
	}
	// Unset fields keep defaults
	if cfg.Layout.NodeWidth != layout.DefaultNodeWidth {
		t.Errorf("NodeWidth = %v", cfg.Layout.NodeWidth)
	}
	if cfg.Render.Style != "dark" {
		t.Errorf("style = %q", cfg.Render.Style)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := writeConfig(t, `backend_url = [broken`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for malformed TOML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestLoadRejectsUnknownCacheBackend(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "memcached"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown cache backend")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvBackendURL, "http://override:9000")
	t.Setenv(EnvRedisAddr, "override:6379")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BackendURL != "http://override:9000" {
		t.Errorf("BackendURL = %q", cfg.BackendURL)
	}
	if cfg.Cache.RedisAddr != "override:6379" {
		t.Errorf("RedisAddr = %q", cfg.Cache.RedisAddr)
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/custom-cache"
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if dir != "/tmp/custom-cache" {
		t.Errorf("CacheDir = %q", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	cfg := Default()
	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-cache", "conceptgraph") {
		t.Errorf("CacheDir = %q", dir)
	}
}

func TestToLayoutConversion(t *testing.T) {
	lc := LayoutConfig{NodeWidth: 100, NodeHeight: 30, NodeGap: 20, RankGap: 50}
	got := lc.ToLayout()
	if got.NodeWidth != 100 || got.RankGap != 50 {
		t.Errorf("ToLayout = %+v", got)
	}
}
