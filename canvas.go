package canvas

import (
	"log/slog"
	"time"

	"github.com/Kevdome3000/infinite-canvas/internal/platform"
	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

// --- Types ---

// Document is a public alias for the persisted canvas record.
type Document = core.Document

// Summary is a public alias for the listing projection of a Document.
type Summary = core.Summary

// Snapshot is a public alias for a transient editor state.
type Snapshot = core.Snapshot

// Event is a public alias for an external store change event.
type Event = core.Event

// Store is a public alias for the storage contract.
type Store = core.Store

// Manager is a public alias for the persistence manager.
type Manager = core.Manager

// ErrNotFound is returned by Store.Load for absent ids.
var ErrNotFound = core.ErrNotFound

// --- Configuration ---

// Option defines a functional option for configuring the persistence layer.
type Option = platform.Option

// WithLogger sets the logger for the manager and adapters.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStore allows injecting a custom storage adapter.
func WithStore(store core.Store) Option {
	return platform.WithStore(store)
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithMustExist requires the vault directory to already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithDebounceWindow overrides the autosave quiet period.
func WithDebounceWindow(window time.Duration) Option {
	return platform.WithDebounceWindow(window)
}

// WithSettleDelay overrides the post-load settle delay.
func WithSettleDelay(delay time.Duration) Option {
	return platform.WithSettleDelay(delay)
}

// WithSaveErrorHandler registers a callback for autosave write failures.
func WithSaveErrorHandler(fn func(error)) Option {
	return platform.WithSaveErrorHandler(fn)
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithSystemDir overrides the hidden directory name used by the fs adapter.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// --- Factory ---

// New creates a persistence Manager over the configured storage adapter.
func New(uri string, opts ...Option) (*core.Manager, error) {
	return platform.New(uri, opts...)
}

// Open builds and initializes a storage adapter without a Manager, for
// direct CRUD access (listings, deletes, tooling).
func Open(uri string, opts ...Option) (core.Store, error) {
	return platform.Open(uri, opts...)
}

// --- Utils ---

// FindVaultRoot recursively looks upwards for a vault root indicator.
func FindVaultRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
