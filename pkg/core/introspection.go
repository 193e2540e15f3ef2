package core

import (
	"github.com/aretw0/introspection"
)

// ManagerState exposes internal state for observability.
type ManagerState struct {
	ActiveID  string `json:"active_id"`
	Name      string `json:"name"`
	Loading   bool   `json:"loading"`
	Dirty     bool   `json:"dirty"`
	StoreType string `json:"store_type"`
}

// State implements introspection.Introspectable.
func (m *Manager) State() any {
	m.mu.Lock()
	defer m.mu.Unlock()

	storeType := "unknown"
	if m.store != nil {
		storeType = "store"
		if comp, ok := m.store.(introspection.Component); ok {
			storeType = comp.ComponentType()
		}
	}

	return ManagerState{
		ActiveID:  m.session.activeID,
		Name:      m.session.name,
		Loading:   m.session.loading,
		Dirty:     m.session.pending != nil,
		StoreType: storeType,
	}
}

// ComponentType implements introspection.Component.
func (m *Manager) ComponentType() string {
	return "manager"
}

var _ introspection.Introspectable = (*Manager)(nil)
var _ introspection.Component = (*Manager)(nil)
