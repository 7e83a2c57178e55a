package cli

import (
	"context"
	"io"
	"reflect"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/config"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"", []string{"svg"}},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{"svg, png , dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		got := parseFormats(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestNewCacheDisabled(t *testing.T) {
	ctx := context.Background()

	var cfg config.Config
	cfg.Cache.Backend = config.CacheBackendNone

	store, err := newCache(ctx, cfg, false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("backend none: got %T, want *cache.NullCache", store)
	}

	cfg.Cache.Backend = config.CacheBackendFile
	store, err = newCache(ctx, cfg, true)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("noCache flag: got %T, want *cache.NullCache", store)
	}
}

func TestNewCacheFile(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	var cfg config.Config
	cfg.Cache.Backend = config.CacheBackendFile

	store, err := newCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatalf("newCache: %v", err)
	}
	if _, ok := store.(*cache.FileCache); !ok {
		t.Errorf("got %T, want *cache.FileCache", store)
	}
}

func TestSanitizeBase(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Database Systems", "database-systems"},
		{"  OS  ", "os"},
		{"c++ basics", "c---basics"},
	}

	for _, tt := range tests {
		if got := sanitizeBase(tt.input); got != tt.want {
			t.Errorf("sanitizeBase(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate short: got %q", got)
	}
	got := truncate("a much longer sentence about normalization", 12)
	if len([]rune(got)) != 12 {
		t.Errorf("truncate long: got %q (%d runes)", got, len([]rune(got)))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.n); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"fetch", "layout", "render", "view", "serve", "upload", "ask", "subjects", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
