package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Kevdome3000/infinite-canvas/pkg/debounce"
)

// Default timing knobs. Overridable through ManagerConfig, mainly for tests.
const (
	// DefaultWindow is the autosave quiet period.
	DefaultWindow = time.Second

	// DefaultSettleDelay is how long loading stays armed after a load
	// resolves, so change notifications replayed by state restoration are
	// not persisted as user edits.
	DefaultSettleDelay = 100 * time.Millisecond
)

// ManagerConfig holds the configuration for a Manager.
type ManagerConfig struct {
	// Window is the autosave debounce quiet period. Zero means DefaultWindow.
	Window time.Duration

	// SettleDelay is the post-load settle delay. Zero means DefaultSettleDelay.
	SettleDelay time.Duration

	// Logger receives debug/error records. Nil disables logging.
	Logger *slog.Logger

	// OnSaveError receives write failures from debounced saves, which are
	// recovered locally and never surface to OnStateChange callers.
	OnSaveError func(error)

	// Now is the clock. Nil means time.Now. Injectable for tests.
	Now func() time.Time
}

// session is the in-memory record of the single active document.
type session struct {
	activeID  string
	name      string
	createdAt time.Time
	pending   *Snapshot
	loading   bool
}

// Manager owns the save/load lifecycle of one active document. It decides
// when a change notification is ignored (load in progress), scheduled
// (debounced autosave) or forced (ForceSave), and mediates between editor
// snapshots and the Store.
//
// One Manager instance manages exactly one live session at a time; session
// state is owned by the instance, never process-wide.
type Manager struct {
	store  Store
	deb    *debounce.Debouncer
	logger *slog.Logger
	settle time.Duration
	now    func() time.Time

	mu          sync.Mutex
	session     session
	onSaveError func(error)
}

// NewManager creates a Manager writing through store.
func NewManager(store Store, cfg ManagerConfig) *Manager {
	if cfg.Window <= 0 {
		cfg.Window = DefaultWindow
	}
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	m := &Manager{
		store:       store,
		logger:      cfg.Logger,
		settle:      cfg.SettleDelay,
		now:         cfg.Now,
		onSaveError: cfg.OnSaveError,
	}
	m.deb = debounce.New(cfg.Window, m.saveEffect)
	return m
}

// NewSession starts a fresh session: a new id from the store's generator,
// createdAt set to now, no pending snapshot. The previous session, if any,
// is abandoned. Returns the new id.
func (m *Manager) NewSession(ctx context.Context, name string) (string, error) {
	id := m.store.GenerateID()

	m.mu.Lock()
	m.session = session{
		activeID:  id,
		name:      name,
		createdAt: m.now(),
	}
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("session created", "id", id, "name", name)
	}
	return id, nil
}

// LoadSession reads the document for id and hydrates the session from it.
//
// loading is set before the read is issued and released only after the
// settle delay following resolution (success, failure or not-found): the
// editor replays the restored content, which re-fires change notifications,
// and those echoes must not re-arm autosave. On failure the error is
// returned and session state is left untouched.
func (m *Manager) LoadSession(ctx context.Context, id string) (Document, error) {
	m.mu.Lock()
	m.session.loading = true
	m.mu.Unlock()

	doc, err := m.store.Load(ctx, id)
	// Released after the settle delay in every outcome.
	defer m.releaseAfterSettle()

	if err != nil {
		if m.logger != nil {
			m.logger.Error("load failed", "id", id, "error", err)
		}
		return Document{}, fmt.Errorf("load document %q: %w", id, err)
	}

	m.mu.Lock()
	m.session = session{
		activeID:  doc.ID,
		name:      doc.Name,
		createdAt: doc.CreatedAt,
		pending:   &Snapshot{Content: doc.Content},
		loading:   true,
	}
	m.mu.Unlock()

	if m.logger != nil {
		m.logger.Debug("session loaded", "id", doc.ID, "name", doc.Name)
	}
	return doc, nil
}

// OnStateChange records a change notification from the editor.
//
// While a load is settling the snapshot is dropped entirely: restoration
// echoes are not user edits. Without an active session it is also a no-op
// (caller misuse is guarded, not reported). Otherwise the snapshot becomes
// the pending value and an autosave is (re)scheduled.
func (m *Manager) OnStateChange(snap Snapshot) {
	m.mu.Lock()
	if m.session.loading || m.session.activeID == "" {
		m.mu.Unlock()
		return
	}
	staged := snap
	m.session.pending = &staged
	m.mu.Unlock()

	m.deb.Schedule()
}

// ForceSave cancels any pending autosave timer and writes the pending
// snapshot immediately. The write runs synchronously in the caller's
// goroutine, so when ForceSave returns the write has settled; its error is
// returned directly (and still forwarded to the error handler). With
// nothing to save it returns nil.
func (m *Manager) ForceSave(ctx context.Context) error {
	return m.deb.Flush()
}

// SetErrorHandler registers fn to receive write failures from debounced
// saves. Passing nil clears the handler.
func (m *Manager) SetErrorHandler(fn func(error)) {
	m.mu.Lock()
	m.onSaveError = fn
	m.mu.Unlock()
}

// saveEffect is the effect wrapped by the debouncer. It is a no-op unless
// there is an active session with a pending snapshot and no load settling.
// Errors are forwarded to the registered handler; the debouncer discards
// them on the timer path and returns them from Flush.
func (m *Manager) saveEffect() error {
	m.mu.Lock()
	s := m.session
	handler := m.onSaveError
	m.mu.Unlock()

	if s.activeID == "" || s.pending == nil || s.loading {
		return nil
	}

	doc := Document{
		ID:        s.activeID,
		Name:      s.name,
		Content:   s.pending.Content,
		CreatedAt: s.createdAt,
		UpdatedAt: m.now(),
	}

	// The write runs outside the session lock. A timer-fired save and a
	// ForceSave can issue two back-to-back writes for the same id; both
	// are full-record overwrites, last write wins.
	if err := m.store.Save(context.Background(), doc); err != nil {
		err = fmt.Errorf("save document %q: %w", doc.ID, err)
		if m.logger != nil {
			m.logger.Error("autosave failed", "id", doc.ID, "error", err)
		}
		if handler != nil {
			handler(err)
		}
		return err
	}

	if m.logger != nil {
		m.logger.Debug("document saved", "id", doc.ID, "updatedAt", doc.UpdatedAt)
	}
	return nil
}

// releaseAfterSettle re-arms autosave once the settle delay has elapsed.
func (m *Manager) releaseAfterSettle() {
	time.AfterFunc(m.settle, func() {
		m.mu.Lock()
		m.session.loading = false
		m.mu.Unlock()

		if m.logger != nil {
			m.logger.Debug("load settled, autosave re-armed")
		}
	})
}
