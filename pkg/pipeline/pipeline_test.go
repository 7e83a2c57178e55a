package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/client"
	"github.com/autonotex/conceptgraph/pkg/graph"
)

const testGraphJSON = `{
	"nodes": [
		{"id": 1, "label": "ACID", "type": "topic"},
		{"id": 2, "label": "Atomicity"},
		{"id": 3, "label": "Durability"}
	],
	"edges": [
		{"source": 1, "target": 2},
		{"source": 1, "target": 3}
	]
}`

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"doc_id": "abc123", "graph": ` + testGraphJSON + `}`))
	}))
	t.Cleanup(server.Close)

	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return NewRunner(c, nil, client.New(server.URL, cache.NewNullCache()), nil)
}

func TestExecute(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		DocID:   "abc123",
		Formats: []string{FormatDOT, FormatJSON},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if result.GraphHash == "" {
		t.Error("Execute() should compute a graph hash")
	}
	if len(result.Artifacts) != 2 {
		t.Fatalf("Artifacts = %d formats, want 2", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "digraph G") {
		t.Error("DOT artifact missing digraph header")
	}
	if result.CacheInfo.FetchHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("first run should miss all caches: %+v", result.CacheInfo)
	}
}

func TestExecuteCacheHits(t *testing.T) {
	r := newTestRunner(t)
	opts := Options{
		DocID:   "abc123",
		Formats: []string{FormatDOT},
	}
	ctx := context.Background()

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	result, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() second run error: %v", err)
	}
	if !result.CacheInfo.FetchHit || !result.CacheInfo.LayoutHit || !result.CacheInfo.RenderHit {
		t.Errorf("second run should hit all caches: %+v", result.CacheInfo)
	}
}

func TestExecuteRefreshBypassesCache(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()

	if _, err := r.Execute(ctx, Options{DocID: "abc123", Formats: []string{FormatDOT}}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	result, err := r.Execute(ctx, Options{DocID: "abc123", Formats: []string{FormatDOT}, Refresh: true})
	if err != nil {
		t.Fatalf("Execute() refresh error: %v", err)
	}
	if result.CacheInfo.FetchHit {
		t.Error("refresh should bypass the fetch cache")
	}
}

func TestFetchFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(testGraphJSON), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	r := NewRunner(nil, nil, nil, nil)
	g, hit, err := r.FetchWithCacheInfo(context.Background(), Options{InputPath: path})
	if err != nil {
		t.Fatalf("FetchWithCacheInfo() error: %v", err)
	}
	if hit {
		t.Error("local file input should not report a cache hit")
	}
	if len(g.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(g.Nodes))
	}
	if g.Nodes[0].ID != "1" {
		t.Errorf("numeric IDs should be coerced, got %q", g.Nodes[0].ID)
	}
}

func TestComputeLayoutDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil, nil)
	g, err := graph.Adapt([]byte(testGraphJSON))
	if err != nil {
		t.Fatalf("Adapt() error: %v", err)
	}

	a, err := r.ComputeLayout(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	b, err := r.ComputeLayout(context.Background(), g, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}
	for i := range a.Nodes {
		if *a.Nodes[i].Position != *b.Nodes[i].Position {
			t.Errorf("layout not deterministic for node %s", a.Nodes[i].ID)
		}
	}
}

func TestRenderSelectedArtifactKeyedSeparately(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	g, err := graph.Adapt([]byte(testGraphJSON))
	if err != nil {
		t.Fatalf("Adapt() error: %v", err)
	}
	l, err := r.ComputeLayout(ctx, g, Options{})
	if err != nil {
		t.Fatalf("ComputeLayout() error: %v", err)
	}

	plain, _, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() error: %v", err)
	}
	selected, hit, err := r.RenderWithCacheInfo(ctx, l, Options{Formats: []string{FormatDOT}, Selected: "1"})
	if err != nil {
		t.Fatalf("RenderWithCacheInfo() selected error: %v", err)
	}
	if hit {
		t.Error("selected render should not reuse the unselected artifact")
	}
	if string(plain[FormatDOT]) == string(selected[FormatDOT]) {
		t.Error("selected artifact should differ from unselected")
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{DocID: "abc123"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.NodeGap != 80 || opts.RankGap != 100 {
		t.Errorf("layout defaults = %+v", opts)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"no source", Options{}},
		{"bad format", Options{DocID: "a", Formats: []string{"gif"}}},
		{"bad style", Options{DocID: "a", Style: "sepia"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); err == nil {
				t.Error("ValidateAndSetDefaults() should fail")
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png", "dot", "json"}); err != nil {
		t.Errorf("ValidateFormats() error: %v", err)
	}
	if err := ValidateFormats([]string{"pdf"}); err == nil {
		t.Error("pdf is not a supported format")
	}
}
