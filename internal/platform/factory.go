package platform

import (
	"context"
	"fmt"

	"github.com/Kevdome3000/infinite-canvas/pkg/adapters/fs"
	"github.com/Kevdome3000/infinite-canvas/pkg/adapters/memory"
	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

// Open builds and initializes a storage adapter.
// The 'uri' argument is adapter-specific (a directory path for "fs",
// ignored by "memory").
func Open(uri string, opts ...Option) (core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Check for injected store
	if o.store != nil {
		return o.store, nil
	}

	// 2. Build by adapter name
	var store core.Store
	switch o.adapter {
	case "fs":
		store = fs.New(fs.Config{
			Path:         uri,
			MustExist:    o.mustExist,
			SystemDir:    o.systemDir,
			Logger:       o.logger,
			ErrorHandler: o.onWatchErr,
		})
	case "memory":
		store = memory.New()
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	// 3. Run initialization where the adapter needs it
	if init, ok := store.(core.Initializer); ok {
		if err := init.Initialize(context.Background()); err != nil {
			return nil, err
		}
	}

	return store, nil
}

// New builds a persistence Manager over the configured storage adapter.
func New(uri string, opts ...Option) (*core.Manager, error) {
	store, err := Open(uri, opts...)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return core.NewManager(store, core.ManagerConfig{
		Window:      o.window,
		SettleDelay: o.settleDelay,
		Logger:      o.logger,
		OnSaveError: o.onSaveError,
	}), nil
}
