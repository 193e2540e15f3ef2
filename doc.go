// Package canvas is the composition root for the infinite-canvas
// persistence layer.
//
// It connects the core save/load lifecycle (Domain Layer) with the storage
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// The editor fires a change notification on every mutation; writing each one
// would hammer the backend and, worse, a document load replays the restored
// state through the same notifications. This package coalesces bursts into
// debounced writes and brackets loads with a settle delay so restoration
// echoes are never persisted as edits.
//
// Features:
//
//   - **Debounced autosave**: trailing-edge coalescing with an immediate
//     ForceSave escape hatch.
//   - **Load/save race safety**: change notifications are dropped while a
//     load is settling.
//   - **Pluggable storage**: core is agnostic via core.Store; in-memory
//     (go-memdb) and file-vault adapters ship out of the box.
//   - **External change watching**: the fs adapter streams CREATE/MODIFY/
//     DELETE events for documents edited outside the process.
//
// Usage:
//
//	// Initialize a manager with functional options
//	mgr, err := canvas.New("./vault",
//		canvas.WithLogger(logger),
//	)
//
//	// Start a document and feed it editor snapshots
//	id, _ := mgr.NewSession(ctx, "untitled")
//	mgr.OnStateChange(canvas.Snapshot{Content: state})
package canvas
