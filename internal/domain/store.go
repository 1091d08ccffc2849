package domain

import "context"

// CollectionStore persists named collections of records. It carries no query
// logic of its own. Implementations are selected at composition time and
// callers must not depend on which one is active.
//
// Load-mutate-save is not atomic: concurrent writers to the same collection
// may lose updates (last save wins).
type CollectionStore interface {
	// Load returns all records of the collection, or an empty slice when the
	// collection does not exist.
	Load(ctx context.Context, collection string) ([]Record, error)
	// Save replaces the stored collection wholesale.
	Save(ctx context.Context, collection string, records []Record) error
	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, collection string, id int64) (Record, error)
	// Create appends a record with a fresh id and creation timestamp.
	Create(ctx context.Context, collection string, fields Record) (Record, error)
	// Update merges fields over the stored record and stamps updatedAt.
	// It returns ErrNotFound when no record has the id.
	Update(ctx context.Context, collection string, id int64, fields Record) (Record, error)
	// Delete removes the record. Deleting a missing id is not an error.
	Delete(ctx context.Context, collection string, id int64) error
}

// ListSpec describes how a collection is filtered, searched, and sorted.
type ListSpec struct {
	FilterFields []string
	SearchFields []string
	// SortField is the timestamp field ordered newest-first. Empty means createdAt.
	SortField string
}

// Lister is implemented by stores that evaluate list queries themselves,
// such as a remote API backend.
type Lister interface {
	List(ctx context.Context, collection string, q Query, spec ListSpec) (*PageResult, error)
}

// DocumentStore persists single named documents such as the settings object.
type DocumentStore interface {
	LoadDocument(ctx context.Context, name string) (Record, error)
	SaveDocument(ctx context.Context, name string, doc Record) (Record, error)
}
