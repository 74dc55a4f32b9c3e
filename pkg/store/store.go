// Package store persists saved layouts.
//
// A [Document] pairs a scene with the layout computed for it. Documents
// are identified by random UUIDs, which also makes ids safe to use as
// file names. Two back ends exist:
//   - [FileStore]: JSON files in a directory (CLI and single-node servers)
//   - [MongoStore]: a MongoDB collection (shared deployments)
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/scene"
)

// DefaultListLimit caps List when the caller passes zero.
const DefaultListLimit = 50

// Document is one saved layout.
type Document struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	Scene     *scene.Scene    `json:"scene" bson:"scene"`
	Layout    pipeline.Layout `json:"layout" bson:"layout"`
}

// NewDocument creates a document with a fresh id.
func NewDocument(name string, sc *scene.Scene, l pipeline.Layout) *Document {
	return &Document{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		Scene:     sc,
		Layout:    l,
	}
}

// Store is the interface for document storage back ends.
type Store interface {
	// Get returns the document or an ErrCodeNotFound error.
	Get(ctx context.Context, id string) (*Document, error)
	// Put inserts or replaces a document.
	Put(ctx context.Context, doc *Document) error
	// Delete removes a document or returns an ErrCodeNotFound error.
	Delete(ctx context.Context, id string) error
	// List returns up to limit documents, newest first.
	List(ctx context.Context, limit int) ([]*Document, error)
	Close() error
}

// ValidateID checks that id is a UUID.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %s not found", id)
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
