// Package memory implements core.Store on an in-memory go-memdb database.
// It is the reference backend: no durability, full transactional isolation.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-memdb"
	"github.com/rs/xid"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

// docRecord is the stored shape. Fields are exported for memdb's reflection
// based indexers.
type docRecord struct {
	ID        string
	Name      string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *docRecord) document() core.Document {
	return core.Document{
		ID:        r.ID,
		Name:      r.Name,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Store is an in-memory document store backed by go-memdb.
//
// The database is constructed lazily on first use and cached, so concurrent
// callers share a single open sequence. Every operation runs in its own
// transaction with commit-or-abort on each exit path.
type Store struct {
	once sync.Once
	db   *memdb.MemDB
	err  error
}

// New returns a new in-memory store. The underlying database is not opened
// until the first operation touches it.
func New() *Store {
	return &Store{}
}

func (s *Store) open() (*memdb.MemDB, error) {
	s.once.Do(func() {
		s.db, s.err = memdb.NewMemDB(schema)
		if s.err != nil {
			s.err = fmt.Errorf("new memdb: %w", s.err)
		}
	})
	return s.db, s.err
}

// Save upserts the document by ID. Inserting under an existing id replaces
// the whole record; last write wins.
func (s *Store) Save(_ context.Context, doc core.Document) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	txn := db.Txn(true)
	defer txn.Abort()

	rec := &docRecord{
		ID:        doc.ID,
		Name:      doc.Name,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
	if err := txn.Insert(tblDocuments, rec); err != nil {
		return fmt.Errorf("insert document %q: %w", doc.ID, err)
	}

	txn.Commit()
	return nil
}

// Load returns the document for id, or core.ErrNotFound when absent.
func (s *Store) Load(_ context.Context, id string) (core.Document, error) {
	db, err := s.open()
	if err != nil {
		return core.Document{}, err
	}

	txn := db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return core.Document{}, fmt.Errorf("find document %q: %w", id, err)
	}
	if raw == nil {
		return core.Document{}, core.ErrNotFound
	}

	return raw.(*docRecord).document(), nil
}

// Delete removes the record for id. Deleting an absent id is a no-op.
func (s *Store) Delete(_ context.Context, id string) error {
	db, err := s.open()
	if err != nil {
		return err
	}

	txn := db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", id)
	if err != nil {
		return fmt.Errorf("find document %q: %w", id, err)
	}
	if raw == nil {
		return nil
	}

	if err := txn.Delete(tblDocuments, raw); err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}

	txn.Commit()
	return nil
}

// List returns summaries of all documents, newest UpdatedAt first, by
// walking the updated_at index in reverse.
func (s *Store) List(_ context.Context) ([]core.Summary, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}

	txn := db.Txn(false)
	defer txn.Abort()

	it, err := txn.GetReverse(tblDocuments, "updated_at")
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var out []core.Summary
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(*docRecord).document().Summary())
	}
	return out, nil
}

// GenerateID returns a globally unique, time-sortable id.
func (s *Store) GenerateID() string {
	return xid.New().String()
}

// Close releases the database. In-memory state simply becomes unreachable.
func (s *Store) Close() error {
	return nil
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "memory"
}

var _ core.Store = (*Store)(nil)
