package debounce_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kevdome3000/infinite-canvas/pkg/debounce"
)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := debounce.New(100*time.Millisecond, func() error {
		fired.Add(1)
		return nil
	})

	// Five calls well inside one window.
	for i := 0; i < 5; i++ {
		d.Schedule()
		time.Sleep(10 * time.Millisecond)
	}

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "burst must collapse into one invocation")
}

func TestDebouncer_TimedFromLastCall(t *testing.T) {
	var firedAt atomic.Int64
	d := debounce.New(150*time.Millisecond, func() error {
		firedAt.Store(time.Now().UnixNano())
		return nil
	})

	d.Schedule()
	time.Sleep(80 * time.Millisecond)
	last := time.Now()
	d.Schedule()

	// The first window would have elapsed 150ms after the first call.
	// Nothing may fire before the window measured from the LAST call elapses.
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, firedAt.Load(), "must not fire one window after the first call")

	time.Sleep(200 * time.Millisecond)
	require.NotZero(t, firedAt.Load(), "must fire one window after the last call")

	elapsed := time.Duration(firedAt.Load() - last.UnixNano())
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
}

func TestDebouncer_FlushFiresImmediately(t *testing.T) {
	var fired atomic.Int32
	d := debounce.New(time.Hour, func() error {
		fired.Add(1)
		return nil
	})

	d.Schedule()
	require.NoError(t, d.Flush())
	assert.Equal(t, int32(1), fired.Load(), "flush must run the effect synchronously")
}

func TestDebouncer_FlushCancelsPendingTimer(t *testing.T) {
	var fired atomic.Int32
	d := debounce.New(50*time.Millisecond, func() error {
		fired.Add(1)
		return nil
	})

	d.Schedule()
	require.NoError(t, d.Flush())

	// The scheduled timer must not fire a second time.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_FlushFiresWithoutPendingCall(t *testing.T) {
	var fired atomic.Int32
	d := debounce.New(50*time.Millisecond, func() error {
		fired.Add(1)
		return nil
	})

	// Nothing scheduled: flush still invokes the effect. Guarding against
	// "nothing to do" is the caller's job.
	require.NoError(t, d.Flush())
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_FlushReturnsEffectError(t *testing.T) {
	want := assert.AnError
	d := debounce.New(time.Hour, func() error { return want })

	err := d.Flush()
	assert.ErrorIs(t, err, want)
}

func TestDebouncer_ConcurrentSchedule(t *testing.T) {
	var fired atomic.Int32
	d := debounce.New(50*time.Millisecond, func() error {
		fired.Add(1)
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.Schedule()
		}()
	}
	wg.Wait()

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "concurrent burst must still coalesce")
}
