package fs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Kevdome3000/infinite-canvas/pkg/core"
)

func collectEvent(t *testing.T, events <-chan core.Event, timeout time.Duration) core.Event {
	t.Helper()
	select {
	case e, ok := <-events:
		require.True(t, ok, "event channel closed unexpectedly")
		return e
	case <-time.After(timeout):
		t.Fatal("timed out waiting for event")
		return core.Event{}
	}
}

func TestStore_WatchObservesExternalWrite(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "")
	require.NoError(t, err)

	// Give fsnotify a moment to arm before writing.
	time.Sleep(100 * time.Millisecond)

	now := time.Now()
	require.NoError(t, s.Save(context.Background(), core.Document{
		ID: "c1", Name: "external", Content: "x",
		CreatedAt: now, UpdatedAt: now,
	}))

	e := collectEvent(t, events, 3*time.Second)
	require.Equal(t, "c1", e.ID)
	require.Contains(t, []core.EventType{core.EventCreate, core.EventModify}, e.Type)
}

func TestStore_WatchCoalescesBursts(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	now := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Save(context.Background(), core.Document{
			ID: "c1", Name: "burst", Content: string(rune('a' + i)),
			CreatedAt: now, UpdatedAt: now,
		}))
	}

	// The burst must collapse to (at least one, but few) events for c1;
	// drain until quiet and check every event targets the same id.
	seen := 0
	deadline := time.After(3 * time.Second)
	quiet := time.NewTimer(500 * time.Millisecond)
	defer quiet.Stop()
drain:
	for {
		select {
		case e, ok := <-events:
			if !ok {
				break drain
			}
			require.Equal(t, "c1", e.ID)
			seen++
			quiet.Reset(500 * time.Millisecond)
		case <-quiet.C:
			break drain
		case <-deadline:
			break drain
		}
	}
	require.GreaterOrEqual(t, seen, 1)
	require.LessOrEqual(t, seen, 3, "five rapid writes must not yield five events")
}

func TestStore_WatchPatternFilters(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, "sketch-*")
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	now := time.Now()
	require.NoError(t, s.Save(context.Background(), core.Document{
		ID: "other-1", Name: "filtered out", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, s.Save(context.Background(), core.Document{
		ID: "sketch-1", Name: "matches", CreatedAt: now, UpdatedAt: now,
	}))

	e := collectEvent(t, events, 3*time.Second)
	require.Equal(t, "sketch-1", e.ID, "non-matching ids must be filtered")
}

func TestStore_WatchClosesOnCancel(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := s.Watch(ctx, "")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-events:
		require.False(t, ok, "channel must close after cancellation")
	case <-time.After(3 * time.Second):
		t.Fatal("channel did not close after cancellation")
	}
}
