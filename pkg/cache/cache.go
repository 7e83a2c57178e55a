// Package cache provides content-addressed caching for the conceptgraph pipeline.
//
// Every pipeline stage (fetch, layout, render) and the concept-details client
// caches its result under a key derived from the stage inputs. Keys are
// produced by a Keyer so that CLI and preview server share one naming scheme,
// and backends are pluggable behind the Cache interface:
//   - FileCache: directory-based cache for CLI usage
//   - RedisCache: shared cache for long-running preview deployments
//   - NullCache: disables caching
package cache

import (
	"context"
	"time"
)

// TTLs for the different cached artifact classes.
//
// Graph snapshots expire fastest: re-analyzing a document can legitimately
// produce a different graph. Layouts and rendered artifacts are pure functions
// of their inputs and are keyed by content hash, so they can live longer.
const (
	// TTLGraph is how long a fetched graph snapshot stays valid.
	TTLGraph = 24 * time.Hour

	// TTLLayout is how long a computed layout stays valid.
	TTLLayout = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact (SVG, PNG, DOT) stays valid.
	TTLArtifact = 7 * 24 * time.Hour

	// TTLConcept is how long concept-details lookups stay valid. Concept
	// summaries come from the backend's knowledge base, which changes as
	// documents are uploaded, so this is deliberately short.
	TTLConcept = time.Hour
)

// Cache is the interface for cache storage backends.
// Implementations must treat a missing key as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// GraphKeyOpts are the inputs that distinguish graph snapshot cache entries.
type GraphKeyOpts struct {
	Subject string // Subject name for subject-notes graphs (empty for uploads)
}

// LayoutKeyOpts are the layout parameters that affect computed positions.
// Two layouts of the same graph with different parameters must not collide.
type LayoutKeyOpts struct {
	NodeWidth  float64
	NodeHeight float64
	NodeGap    float64
	RankGap    float64
}

// ArtifactKeyOpts are the render parameters that affect produced artifacts.
type ArtifactKeyOpts struct {
	Format   string // "svg", "png", "dot"
	Style    string // visual style name
	Selected string // highlighted node ID, empty for none
}

// Keyer generates cache keys for the different cached artifact classes.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// GraphKey generates a key for a graph snapshot of a document.
	GraphKey(docID string, opts GraphKeyOpts) string

	// LayoutKey generates a key for a layout computed from the graph with
	// the given content hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for a rendered artifact of the layout
	// with the given content hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string

	// ConceptKey generates a key for a concept-details lookup.
	ConceptKey(label, docID string) string
}

// DefaultKeyer is the standard key scheme: a type prefix plus a SHA-256 hash
// of the identifying inputs.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return hashKey("http", namespace, key)
}

// GraphKey generates a key for a graph snapshot.
func (k *DefaultKeyer) GraphKey(docID string, opts GraphKeyOpts) string {
	return hashKey("graph", docID, opts)
}

// LayoutKey generates a key for a computed layout.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for a rendered artifact.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// ConceptKey generates a key for a concept-details lookup.
func (k *DefaultKeyer) ConceptKey(label, docID string) string {
	return hashKey("concept", label, docID)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
