// Document is the central entity of the domain.
package core

import "time"

// Document is a persisted canvas identified by an ID.
// ID is immutable once assigned. CreatedAt is fixed at creation (or copied
// from storage on load) and never changes. UpdatedAt is rewritten to "now"
// on every successful write.
type Document struct {
	ID        string
	Name      string
	Content   string // serialized editor state; opaque to this package
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary is the listing projection of a Document without its content.
type Summary struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Summary returns the metadata projection of the document.
func (d Document) Summary() Summary {
	return Summary{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Snapshot is a transient editor state captured by a change notification.
// It is not persisted itself; it stages the value consumed by the next write.
type Snapshot struct {
	Content string
}

// EventType represents the type of external change in a store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents an externally observed change to a stored document.
type Event struct {
	Type EventType
	ID   string
	At   time.Time
}

// String implements fmt.Stringer (and the lifecycle event contract).
func (e Event) String() string {
	return string(e.Type) + " " + e.ID
}
