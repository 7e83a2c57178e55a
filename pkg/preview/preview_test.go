package preview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/pipeline"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	data := `{
		"nodes": [
			{"id": "a", "label": "ACID", "type": "topic"},
			{"id": "b", "label": "Atomicity"}
		],
		"edges": [{"source": "a", "target": "b"}]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	runner := pipeline.NewRunner(nil, nil, nil, nil)
	return New(runner, pipeline.Options{InputPath: path}, nil)
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t).Handler(), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestGraphJSON(t *testing.T) {
	rec := get(t, newTestServer(t).Handler(), "/graph.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var g graph.Graph
	if err := json.Unmarshal(rec.Body.Bytes(), &g); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("graph = %d nodes, %d edges", len(g.Nodes), len(g.Edges))
	}
}

func TestLayoutJSON(t *testing.T) {
	rec := get(t, newTestServer(t).Handler(), "/layout.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var l graph.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &l); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(l.Nodes) != 2 {
		t.Fatalf("layout nodes = %d", len(l.Nodes))
	}
	for _, n := range l.Nodes {
		if n.Position == nil {
			t.Errorf("node %s has no position", n.ID)
		}
	}
	// b depends on a, so it sits one node height plus one rank gap below.
	if b := l.Node("b"); b == nil || b.Position.Y != 136 {
		t.Errorf("node b position = %+v", l.Node("b"))
	}
}

func TestIndexEmbedsSVG(t *testing.T) {
	rec := get(t, newTestServer(t).Handler(), "/?selected=a")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `/view.svg?selected=a`) {
		t.Errorf("index should pass the query through to the SVG: %s", rec.Body.String())
	}
}

func TestGraphNotFound(t *testing.T) {
	runner := pipeline.NewRunner(nil, nil, nil, nil)
	s := New(runner, pipeline.Options{InputPath: filepath.Join(t.TempDir(), "missing.json")}, nil)

	rec := get(t, s.Handler(), "/graph.json")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
