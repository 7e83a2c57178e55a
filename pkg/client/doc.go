// Package client talks to the Autonotex analysis backend over JSON/HTTP.
//
// The backend ingests study documents and answers questions about them; this
// package covers the read side the viewer needs: fetching the knowledge graph
// for a document or subject, listing available subjects and notes, looking up
// concept details, and asking free-form questions. Responses are cached
// through a [cache.Cache] so repeated lookups (concept details in particular)
// don't hit the backend on every click.
//
// All methods are safe for concurrent use by multiple goroutines.
package client
