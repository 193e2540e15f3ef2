// Package lifecycle bridges vault change events to aretw0/lifecycle sources,
// so applications can supervise a vault watcher next to their other workers.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

type vaultSource struct {
	store   core.Watchable
	pattern string
	events  <-chan core.Event
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that re-emits an existing vault
// event channel, for callers that already hold a Watch subscription.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &vaultSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

// NewVaultSource creates a lifecycle.Source that subscribes to the store
// on Start. The subscription shares the runner's context, so cancelling
// the lifecycle tears down the underlying watcher as well.
func NewVaultSource(store core.Watchable, pattern string) lifecycle.Source {
	return &vaultSource{
		store:   store,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *vaultSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *vaultSource) Start(ctx context.Context) error {
	events := s.events
	if s.store != nil {
		var err error
		events, err = s.store.Watch(ctx, s.pattern)
		if err != nil {
			close(s.out)
			return err
		}
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event via String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
