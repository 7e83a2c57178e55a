package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The preview server uses this to keep per-document caches separate from
// the global cache shared by CLI invocations.
//
// Example usage:
//
//	// Document-scoped keys
//	docKeyer := NewScopedKeyer(NewDefaultKeyer(), "doc:abc123:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GraphKey generates a prefixed key for graph snapshot caching.
func (k *ScopedKeyer) GraphKey(docID string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(docID, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}

// ConceptKey generates a prefixed key for concept-details caching.
func (k *ScopedKeyer) ConceptKey(label, docID string) string {
	return k.prefix + k.inner.ConceptKey(label, docID)
}
