package platform

import (
	"log/slog"
	"time"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

// options holds the internal configuration for the canvas persistence layer.
type options struct {
	store       core.Store
	logger      *slog.Logger
	adapter     string
	mustExist   bool
	window      time.Duration
	settleDelay time.Duration
	onSaveError func(error)
	onWatchErr  func(error)
	systemDir   string
}

// Option defines a functional option for configuring the persistence layer.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: "fs",
	}
}

// WithLogger sets the logger for the manager and adapters.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStore injects a custom storage adapter (e.g. mock, SQL).
// If provided, adapter selection by name is skipped.
func WithStore(store core.Store) Option {
	return func(o *options) {
		o.store = store
	}
}

// WithAdapter selects the storage adapter by name ("fs" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithMustExist requires the vault directory to already exist.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithDebounceWindow overrides the autosave quiet period.
// Zero keeps the default.
func WithDebounceWindow(window time.Duration) Option {
	return func(o *options) {
		o.window = window
	}
}

// WithSettleDelay overrides the post-load settle delay.
// Zero keeps the default.
func WithSettleDelay(delay time.Duration) Option {
	return func(o *options) {
		o.settleDelay = delay
	}
}

// WithSaveErrorHandler registers a callback for autosave write failures,
// which are recovered by the manager and never propagate to the editor's
// change notifications.
func WithSaveErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onSaveError = fn
	}
}

// WithWatcherErrorHandler registers a callback for runtime watcher failures
// (e.g. permission denied), which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.onWatchErr = fn
	}
}

// WithSystemDir overrides the hidden directory name used by the fs adapter
// (defaults to ".canvas").
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.systemDir = name
	}
}
