// Package preview serves a computed graph view over HTTP for browser preview.
//
// The server is read-only client-side tooling: every handler runs the shared
// pipeline (which caches aggressively) and writes the result. It carries no
// state of its own beyond the pipeline options it was started with, so
// handlers are safe for concurrent use.
//
// # Endpoints
//
//	GET /            HTML page embedding the rendered SVG
//	GET /graph.json  adapted graph
//	GET /layout.json computed layout
//	GET /view.svg    rendered SVG
//	GET /view.png    rendered PNG
//	GET /healthz     liveness probe
//
// The graph and image endpoints accept ?selected=<node-id> to highlight a
// node and ?refresh=1 to bypass the fetch cache.
package preview

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/autonotex/conceptgraph/pkg/graph"
	"github.com/autonotex/conceptgraph/pkg/pipeline"
)

// Server serves a single graph view for browser preview.
type Server struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
}

// New creates a preview server over the given runner and pipeline options.
// The options name the graph to serve (document, subject, or local file).
func New(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, opts: opts, logger: logger}
}

// Handler returns the HTTP handler for the preview server.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", s.handleIndex)
	r.Get("/graph.json", s.handleGraph)
	r.Get("/layout.json", s.handleLayout)
	r.Get("/view.svg", s.handleSVG)
	r.Get("/view.png", s.handlePNG)
	r.Get("/healthz", s.handleHealth)
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("preview server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// requestOptions applies per-request query parameters on top of the server's
// base pipeline options.
func (s *Server) requestOptions(r *http.Request) pipeline.Options {
	opts := s.opts
	if sel := r.URL.Query().Get("selected"); sel != "" {
		opts.Selected = sel
	}
	if r.URL.Query().Get("refresh") == "1" {
		opts.Refresh = true
	}
	return opts
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	g, err := s.runner.Fetch(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalGraph(g)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r)
	g, err := s.runner.Fetch(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, err := s.runner.ComputeLayout(r.Context(), g, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	data, err := graph.MarshalLayout(l)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handlePNG(w http.ResponseWriter, r *http.Request) {
	s.serveArtifact(w, r, pipeline.FormatPNG, "image/png")
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	opts := s.requestOptions(r)
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(result.Artifacts[format])
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>conceptgraph preview</title>
<style>body { margin: 0; font-family: sans-serif; } main { padding: 1rem; }</style>
</head>
<body>
<main>
<img src="/view.svg%s" alt="knowledge graph">
</main>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	query := ""
	if r.URL.RawQuery != "" {
		query = "?" + r.URL.RawQuery
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexPage, query)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("preview request failed", "path", r.URL.Path, "err", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
