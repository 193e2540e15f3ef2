package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevdome3000/infinite-canvas/pkg/adapters/fs"
	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

func newTestStore(t *testing.T) *fs.Store {
	t.Helper()
	s := fs.New(fs.Config{Path: t.TempDir()})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	doc := core.Document{
		ID:   "c1",
		Name: "first sketch",
		Content: `{"shapes":[{"type":"rect","x":10,"y":20}],
"viewport":{"zoom":1.5}}`,
		CreatedAt: now,
		UpdatedAt: now.Add(time.Minute),
	}
	require.NoError(t, s.Save(ctx, doc))

	got, err := s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, doc.Content, got.Content, "content must roundtrip verbatim")
	assert.Equal(t, doc.Name, got.Name)
	assert.True(t, got.CreatedAt.Equal(doc.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(doc.UpdatedAt))
}

func TestStore_LoadMissingReturnsNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStore_SaveOverwritesByID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, core.Document{
		ID: "c1", Name: "v1", Content: "one", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Save(ctx, core.Document{
		ID: "c1", Name: "v2", Content: "two", CreatedAt: now, UpdatedAt: now.Add(time.Second),
	}))

	got, err := s.Load(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Content, "last write wins")

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_DeleteIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	now := time.Now()
	require.NoError(t, s.Save(ctx, core.Document{
		ID: "c1", Name: "n", CreatedAt: now, UpdatedAt: now,
	}))

	require.NoError(t, s.Delete(ctx, "c1"))
	_, err := s.Load(ctx, "c1")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, s.Delete(ctx, "c1"), "deleting an absent id is a no-op")
}

func TestStore_ListSortedByUpdatedAtDescending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for _, rec := range []struct {
		id     string
		offset time.Duration
	}{
		{"doc-100", 100 * time.Second},
		{"doc-300", 300 * time.Second},
		{"doc-200", 200 * time.Second},
	} {
		require.NoError(t, s.Save(ctx, core.Document{
			ID: rec.id, Name: rec.id,
			CreatedAt: base, UpdatedAt: base.Add(rec.offset),
		}))
	}

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "doc-300", list[0].ID)
	assert.Equal(t, "doc-200", list[1].ID)
	assert.Equal(t, "doc-100", list[2].ID)
}

func TestStore_ListServesUnchangedFilesFromIndex(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := fs.New(fs.Config{Path: dir})
	require.NoError(t, s.Initialize(ctx))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, core.Document{
		ID: "c1", Name: "cached", Content: "body", CreatedAt: now, UpdatedAt: now,
	}))

	_, err := s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// A second store over the same vault must pick the metadata up from the
	// persisted index without reparsing changed state.
	s2 := fs.New(fs.Config{Path: dir})
	require.NoError(t, s2.Initialize(ctx))

	list, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "cached", list[0].Name)
	assert.True(t, list[0].UpdatedAt.Equal(now))
}

func TestStore_IndexVersionMismatchRebuilds(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s := fs.New(fs.Config{Path: dir})
	require.NoError(t, s.Initialize(ctx))

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, s.Save(ctx, core.Document{
		ID: "c1", Name: "kept", Content: "body", CreatedAt: now, UpdatedAt: now,
	}))
	_, err := s.List(ctx)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Corrupt the index version; documents themselves must survive and the
	// listing must be rebuilt from the files.
	indexPath := filepath.Join(dir, fs.DefaultSystemDir, "index.json")
	raw, err := os.ReadFile(indexPath)
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	payload["version"] = 99
	tampered, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(indexPath, tampered, 0644))

	s2 := fs.New(fs.Config{Path: dir})
	require.NoError(t, s2.Initialize(ctx))

	list, err := s2.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "kept", list[0].Name)
}

func TestStore_InitializeMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	s := fs.New(fs.Config{Path: missing, MustExist: true})

	err := s.Initialize(context.Background())
	assert.Error(t, err)
}

func TestStore_GenerateIDUnique(t *testing.T) {
	s := newTestStore(t)

	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		id := s.GenerateID()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %q", id)
		seen[id] = struct{}{}
	}
}
