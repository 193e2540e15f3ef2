package core

import "context"

// Store defines the contract for persisting and retrieving documents.
// Adhering to this interface keeps the manager independent of the
// underlying storage mechanism (memory, filesystem, SQL, S3, etc).
type Store interface {
	// Save upserts a document by ID, overwriting any existing record with
	// the same ID. The write must be committed before Save returns.
	Save(ctx context.Context, doc Document) error

	// Load retrieves a document by its ID. It returns ErrNotFound when
	// no record exists for the id; absence is not a failure.
	Load(ctx context.Context, id string) (Document, error)

	// Delete removes the record for id. Deleting an absent id is a no-op.
	Delete(ctx context.Context, id string) error

	// List returns metadata projections of all documents, sorted by
	// UpdatedAt descending.
	List(ctx context.Context) ([]Summary, error)

	// GenerateID returns an id unique with overwhelming probability
	// across calls. The format is opaque to callers.
	GenerateID() string

	// Close releases any resources held by the store.
	Close() error
}

// Watchable defines an interface for stores that can observe external
// changes to their records (e.g. another process editing the vault).
type Watchable interface {
	// Watch streams change events for documents matching pattern until
	// ctx is cancelled. The returned channel is closed on shutdown.
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}

// Initializer defines an interface for stores that need explicit setup
// (create directories, build indexes) before first use.
type Initializer interface {
	Initialize(ctx context.Context) error
}
