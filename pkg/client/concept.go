package client

import (
	"context"
	"net/url"

	"github.com/autonotex/conceptgraph/pkg/cache"
	"github.com/autonotex/conceptgraph/pkg/errors"
)

// ConceptDetails holds the backend's explanation of a single concept.
type ConceptDetails struct {
	Concept     string        `json:"concept"`
	Explanation string        `json:"explanation"`
	Related     []RelatedItem `json:"related_content,omitempty"`
}

// RelatedItem is a piece of note content related to a concept.
type RelatedItem struct {
	Content string  `json:"content"`
	Score   float64 `json:"distance,omitempty"`
}

// ConceptDetails looks up the explanation for a concept label, optionally
// scoped to a document. The label is what the viewer selected, typically a
// node's display label.
//
// Lookups are cached for [cache.TTLConcept]; pass refresh=true to bypass the
// cache. Returns an error with code [errors.ErrCodeInvalidConcept] for
// malformed labels and [errors.ErrCodeConceptNotFound] if the backend has
// nothing for the concept.
func (c *Client) ConceptDetails(ctx context.Context, label, docID string, refresh bool) (*ConceptDetails, error) {
	if err := errors.ValidateConceptName(label); err != nil {
		return nil, err
	}
	if docID != "" {
		if err := errors.ValidateDocID(docID); err != nil {
			return nil, err
		}
	}

	var details ConceptDetails
	key := c.keyer.ConceptKey(label, docID)
	err := c.cached(ctx, key, cache.TTLConcept, refresh, &details, func() error {
		q := url.Values{}
		if docID != "" {
			q.Set("doc_id", docID)
		}
		err := c.getJSON(ctx, "/concept/"+url.PathEscape(label), q, &details)
		if isNotFound(err) {
			return errors.New(errors.ErrCodeConceptNotFound, "concept %q not found", label)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	if details.Explanation == "" {
		return nil, errors.New(errors.ErrCodeConceptNotFound, "no explanation for concept %q", label)
	}
	return &details, nil
}
