// Package fs implements core.Store on a directory of markdown files.
//
// Each document is stored as {vault}/{id}.md with YAML frontmatter carrying
// its metadata and the serialized canvas state as the body. Writes are
// atomic (temp file + rename). A versioned metadata index under the system
// directory lets List skip files whose mtime has not changed.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/xid"
	"gopkg.in/yaml.v3"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

// DefaultSystemDir is the hidden directory holding the metadata index.
const DefaultSystemDir = ".canvas"

const docExt = ".md"

// Config holds the configuration for the vault store.
type Config struct {
	Path         string
	MustExist    bool
	SystemDir    string // e.g. ".canvas"
	Logger       *slog.Logger
	ErrorHandler func(error) // runtime watcher failures
}

// Store implements core.Store using a directory of frontmatter markdown files.
type Store struct {
	Path   string
	config Config
	index  *index

	mu            sync.RWMutex
	watcherActive bool
}

// New creates a new vault store. Call Initialize before first use.
func New(config Config) *Store {
	if config.SystemDir == "" {
		config.SystemDir = DefaultSystemDir
	}
	return &Store{
		Path:   config.Path,
		config: config,
		index:  newIndex(config.Path, config.SystemDir),
	}
}

// Initialize ensures the vault directory exists (or, with MustExist, that it
// already does).
func (s *Store) Initialize(ctx context.Context) error {
	if s.config.MustExist {
		info, err := os.Stat(s.Path)
		if os.IsNotExist(err) {
			return fmt.Errorf("vault path does not exist: %s", s.Path)
		}
		if err != nil {
			return fmt.Errorf("failed to stat vault path: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("vault path is not a directory: %s", s.Path)
		}
		return nil
	}

	if err := os.MkdirAll(s.Path, 0755); err != nil {
		return fmt.Errorf("failed to create vault directory: %w", err)
	}
	return nil
}

// Save persists a document to the vault.
//
// Workflow:
//  1. Serialize metadata as YAML frontmatter, content as the body.
//  2. Write atomically to {vault}/{id}.md.
//  3. Refresh the metadata index entry.
func (s *Store) Save(ctx context.Context, doc core.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("document has no ID")
	}

	fullPath := filepath.Join(s.Path, doc.ID+docExt)

	data, err := encodeDocument(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}

	if err := writeFileAtomic(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		s.index.Set(doc.ID+docExt, &indexEntry{
			ID:           doc.ID,
			Name:         doc.Name,
			CreatedAt:    doc.CreatedAt,
			UpdatedAt:    doc.UpdatedAt,
			LastModified: info.ModTime(),
		})
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("document written", "id", doc.ID, "path", fullPath)
	}
	return nil
}

// Load retrieves a document, or core.ErrNotFound if the file is absent.
func (s *Store) Load(ctx context.Context, id string) (core.Document, error) {
	fullPath := filepath.Join(s.Path, id+docExt)

	f, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Document{}, core.ErrNotFound
		}
		return core.Document{}, fmt.Errorf("failed to open %s: %w", fullPath, err)
	}
	defer f.Close()

	doc, err := decodeDocument(f)
	if err != nil {
		return core.Document{}, fmt.Errorf("failed to parse document %s: %w", id, err)
	}
	doc.ID = id

	return doc, nil
}

// Delete removes a document. Deleting an absent id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) error {
	fullPath := filepath.Join(s.Path, id+docExt)

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	s.index.Delete(id + docExt)

	return nil
}

// List scans the vault for all documents, newest UpdatedAt first.
//
// Strategy:
//  1. Load the metadata index from disk.
//  2. Walk the vault (skipping the system directory).
//  3. Per file: index hit on mtime -> cached metadata; miss -> full parse.
//  4. Prune stale entries, persist the index, sort by UpdatedAt descending.
func (s *Store) List(ctx context.Context) ([]core.Summary, error) {
	if err := s.index.Load(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("index load failed, rebuilding", "error", err)
	}
	seen := make(map[string]bool)

	var out []core.Summary
	err := filepath.WalkDir(s.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.Path {
				return filepath.SkipDir // flat vault: ignore subdirectories
			}
			return nil
		}
		name := d.Name()
		if filepath.Ext(name) != docExt || strings.HasPrefix(name, TempFilePrefix) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		seen[name] = true

		if entry, hit := s.index.Get(name, info.ModTime()); hit {
			out = append(out, core.Summary{
				ID:        entry.ID,
				Name:      entry.Name,
				CreatedAt: entry.CreatedAt,
				UpdatedAt: entry.UpdatedAt,
			})
			return nil
		}

		id := strings.TrimSuffix(name, docExt)
		doc, err := s.Load(ctx, id)
		if err != nil {
			return nil // Skip unparseable
		}

		s.index.Set(name, &indexEntry{
			ID:           doc.ID,
			Name:         doc.Name,
			CreatedAt:    doc.CreatedAt,
			UpdatedAt:    doc.UpdatedAt,
			LastModified: info.ModTime(),
		})
		out = append(out, doc.Summary())
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.index.Prune(seen)
	if err := s.index.Save(); err != nil && s.config.Logger != nil {
		s.config.Logger.Debug("index save failed", "error", err)
	}

	// Sorted listing is a read-time guarantee; sorting here is fine at
	// vault scale.
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GenerateID returns a globally unique, time-sortable id.
func (s *Store) GenerateID() string {
	return xid.New().String()
}

// Close persists any pending index updates.
func (s *Store) Close() error {
	return s.index.Save()
}

var _ core.Store = (*Store)(nil)
var _ core.Initializer = (*Store)(nil)

// --- Serialization (frontmatter markdown) ---

// frontmatter is the YAML header of a document file.
type frontmatter struct {
	Name      string    `yaml:"name"`
	CreatedAt time.Time `yaml:"createdAt"`
	UpdatedAt time.Time `yaml:"updatedAt"`
}

func encodeDocument(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{
		Name:      doc.Name,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}); err != nil {
		return nil, err
	}
	encoder.Close()
	buf.WriteString("---\n")
	buf.WriteString(doc.Content)
	return buf.Bytes(), nil
}

func decodeDocument(r io.Reader) (core.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return core.Document{}, err
	}

	if !bytes.HasPrefix(data, []byte("---\n")) {
		return core.Document{}, fmt.Errorf("missing frontmatter")
	}

	rest := data[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) != 2 {
		return core.Document{}, fmt.Errorf("frontmatter started but no closing delimiter found")
	}

	var fm frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return core.Document{}, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return core.Document{
		Name:      fm.Name,
		Content:   string(parts[1]),
		CreatedAt: fm.CreatedAt,
		UpdatedAt: fm.UpdatedAt,
	}, nil
}
