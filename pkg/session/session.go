// Package session persists viewing sessions for the interactive viewer.
//
// A viewing session records which document or subject is open and which
// concept is selected, so closing and reopening the viewer restores the
// same view. Sessions are small, local, and expendable: losing one means
// the viewer opens fresh, nothing more.
//
// # Usage
//
// Create a store and resume the last session:
//
//	store, err := session.NewFileStore("")  // Uses the XDG state dir
//	sess, err := store.Latest(ctx)
//	if sess == nil {
//	    sess = session.New("abc123", "DBMS")
//	}
//
// Record a selection change:
//
//	sess.Select("node-4", "Normalization")
//	store.Set(ctx, sess)
package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a viewing session stays resumable.
const DefaultTTL = 7 * 24 * time.Hour

// Session records the state of one viewer run.
type Session struct {
	ID            string    `bson:"_id" json:"id"`
	DocID         string    `bson:"doc_id" json:"doc_id"`
	Subject       string    `bson:"subject,omitempty" json:"subject,omitempty"`
	SelectedNode  string    `bson:"selected_node,omitempty" json:"selected_node,omitempty"`
	SelectedLabel string    `bson:"selected_label,omitempty" json:"selected_label,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at" json:"updated_at"`
	ExpiresAt     time.Time `bson:"expires_at" json:"expires_at"`
}

// New creates a session for the given document and subject.
func New(docID, subject string) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		DocID:     docID,
		Subject:   subject,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultTTL),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Select records the currently selected node. An empty id clears the
// selection, matching the viewer's unselected state.
func (s *Session) Select(nodeID, label string) {
	s.SelectedNode = nodeID
	s.SelectedLabel = label
	s.touch()
}

// SetDocument switches the session to a new document and clears the
// selection; a selection never survives a document change.
func (s *Session) SetDocument(docID, subject string) {
	s.DocID = docID
	s.Subject = subject
	s.SelectedNode = ""
	s.SelectedLabel = ""
	s.touch()
}

func (s *Session) touch() {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(DefaultTTL)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Latest returns the most recently updated live session,
	// or nil, nil if there is none.
	Latest(ctx context.Context) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
