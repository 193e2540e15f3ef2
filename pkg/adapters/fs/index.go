package fs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// indexVersion is the schema version of the on-disk metadata index.
// Opening a vault whose index carries a lower or different version rebuilds
// the index from the document files; the documents themselves are never
// touched by a version change.
const indexVersion = 1

// indexEntry caches the metadata of a single document file.
type indexEntry struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastModified time.Time `json:"lastModified"`
}

// indexFile is the persistent shape of the index.
type indexFile struct {
	Version int                    `json:"version"`
	Entries map[string]*indexEntry `json:"entries"` // keyed by filename (e.g. "c1.md")
	dirty   bool
	mu      sync.RWMutex
}

// index manages loading, updating, and saving the metadata index so List
// can skip parsing files whose mtime has not changed.
type index struct {
	Path string // {vault}/{systemDir}/index.json
	file *indexFile
}

func newIndex(vaultPath, systemDir string) *index {
	return &index{
		Path: filepath.Join(vaultPath, systemDir, "index.json"),
		file: &indexFile{
			Version: indexVersion,
			Entries: make(map[string]*indexEntry),
		},
	}
}

// Load reads the index from disk. A missing, corrupted, or version-mismatched
// file yields an empty index (no error); entries are rebuilt lazily by List.
func (ix *index) Load() error {
	ix.file.mu.Lock()
	defer ix.file.mu.Unlock()

	data, err := os.ReadFile(ix.Path)
	if os.IsNotExist(err) {
		return nil // Start fresh
	}
	if err != nil {
		return fmt.Errorf("failed to read index: %w", err)
	}

	var loaded indexFile
	if err := json.Unmarshal(data, &loaded); err != nil {
		// Corruption self-heals: rebuild from the document files.
		ix.file.Entries = make(map[string]*indexEntry)
		return nil
	}

	if loaded.Version != indexVersion || loaded.Entries == nil {
		ix.file.Entries = make(map[string]*indexEntry)
		ix.file.dirty = true
		return nil
	}

	ix.file.Entries = loaded.Entries
	ix.file.dirty = false
	return nil
}

// Save persists the index if it is dirty.
func (ix *index) Save() error {
	ix.file.mu.RLock()
	if !ix.file.dirty {
		ix.file.mu.RUnlock()
		return nil
	}
	data, err := json.MarshalIndent(ix.file, "", "  ")
	ix.file.mu.RUnlock()

	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(ix.Path), 0755); err != nil {
		return err
	}

	if err := writeFileAtomic(ix.Path, data, 0644); err != nil {
		return err
	}

	ix.file.mu.Lock()
	ix.file.dirty = false
	ix.file.mu.Unlock()

	return nil
}

// Get retrieves an entry if it exists and its recorded mtime matches.
func (ix *index) Get(filename string, currentMtime time.Time) (*indexEntry, bool) {
	ix.file.mu.RLock()
	defer ix.file.mu.RUnlock()

	entry, ok := ix.file.Entries[filename]
	if !ok {
		return nil, false
	}
	if !entry.LastModified.Equal(currentMtime) {
		return nil, false
	}
	return entry, true
}

// Set updates an entry.
func (ix *index) Set(filename string, entry *indexEntry) {
	ix.file.mu.Lock()
	defer ix.file.mu.Unlock()

	ix.file.Entries[filename] = entry
	ix.file.dirty = true
}

// Delete removes a single entry.
func (ix *index) Delete(filename string) {
	ix.file.mu.Lock()
	defer ix.file.mu.Unlock()

	if _, ok := ix.file.Entries[filename]; ok {
		delete(ix.file.Entries, filename)
		ix.file.dirty = true
	}
}

// Prune removes entries whose files no longer exist.
func (ix *index) Prune(keep map[string]bool) {
	ix.file.mu.Lock()
	defer ix.file.mu.Unlock()

	for filename := range ix.file.Entries {
		if !keep[filename] {
			delete(ix.file.Entries, filename)
			ix.file.dirty = true
		}
	}
}

// Len returns the number of entries.
func (ix *index) Len() int {
	ix.file.mu.RLock()
	defer ix.file.mu.RUnlock()
	return len(ix.file.Entries)
}
