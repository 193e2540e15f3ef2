package fs

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
	"github.com/Kevdome3000/infinite-canvas/pkg/debounce"
)

// watchDebounce is the quiet period applied to filesystem event bursts
// (editors tend to fire several events per logical write).
const watchDebounce = 50 * time.Millisecond

// Watch streams change events for documents matching pattern (doublestar
// glob against the document id; empty matches everything) until ctx is
// cancelled. The returned channel is closed on shutdown.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.Path); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", s.Path, err)
	}

	w := &watchWorker{
		store:   s,
		pattern: pattern,
		watcher: watcher,
		out:     make(chan core.Event, 64),
		pending: make(map[string]core.Event),
	}
	w.deb = debounce.New(watchDebounce, w.emit)
	w.ctx = ctx

	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watcher failure: %w", err))
		} else if s.config.Logger != nil {
			s.config.Logger.Error("watcher failure", "error", err)
		}
	}))

	return w.out, nil
}

type watchWorker struct {
	store   *Store
	pattern string
	watcher *fsnotify.Watcher
	out     chan core.Event
	deb     *debounce.Debouncer
	ctx     context.Context

	mu      sync.Mutex
	pending map[string]core.Event
	closed  bool
}

// run is the main event loop for the watcher worker.
func (w *watchWorker) run(ctx context.Context) error {
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			if w.store.config.Logger != nil {
				w.store.config.Logger.Error("fsnotify error", "error", wErr)
			}
			if w.store.config.ErrorHandler != nil {
				w.store.config.ErrorHandler(wErr)
			}
		}
	}
}

// handleEvent filters, maps and stages a filesystem event; the debouncer
// coalesces the burst and emits the latest event per id.
func (w *watchWorker) handleEvent(event fsnotify.Event) {
	if w.shouldIgnore(event.Name) {
		return
	}

	eType := mapEventType(event)
	if eType == "" {
		return
	}

	id := strings.TrimSuffix(filepath.Base(event.Name), docExt)
	if w.pattern != "" {
		if ok, err := doublestar.Match(w.pattern, id); err != nil || !ok {
			return
		}
	}

	w.mu.Lock()
	w.pending[id] = core.Event{
		Type: eType,
		ID:   id,
		At:   time.Now(),
	}
	w.mu.Unlock()

	w.deb.Schedule()
}

// emit drains the staged events to the output channel. It is the effect
// behind the debouncer and may fire after shutdown began. Sends happen
// under the mutex so close cannot race them; the ctx branch keeps a
// cancelled worker from blocking on a full channel.
func (w *watchWorker) emit() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	for id, e := range w.pending {
		delete(w.pending, id)
		select {
		case w.out <- e:
		case <-w.ctx.Done():
			return nil
		}
	}
	return nil
}

func (w *watchWorker) close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.out)
	}
}

func (w *watchWorker) shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, TempFilePrefix) {
		return true
	}
	if filepath.Ext(base) != docExt {
		return true
	}
	// Events under the system directory are index bookkeeping, not edits.
	return strings.Contains(path, string(filepath.Separator)+w.store.config.SystemDir+string(filepath.Separator))
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	default:
		return ""
	}
}
