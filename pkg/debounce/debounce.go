// Package debounce provides a trailing-edge call coalescer.
//
// A Debouncer wraps a single effect function. Bursts of Schedule calls
// collapse into one invocation of the effect, timed from the most recent
// call. Flush bypasses the quiet period and runs the effect immediately.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Schedule calls into a single invocation
// of fn after a quiet period. It is safe for concurrent use.
type Debouncer struct {
	window time.Duration
	fn     func() error

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a Debouncer that invokes fn after window has elapsed
// without further Schedule calls.
//
// When fn fires from the timer its error is discarded; fn must do its own
// reporting. Flush returns fn's error to the caller instead.
func New(window time.Duration, fn func() error) *Debouncer {
	return &Debouncer{
		window: window,
		fn:     fn,
	}
}

// Schedule arms (or re-arms) the quiet-period timer. N calls within any
// sliding window produce exactly one invocation of fn, timed from the
// last call. Schedule returns before fn runs.
func (d *Debouncer) Schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush cancels any pending timer and invokes fn synchronously in the
// caller's goroutine.
//
// Flush ALWAYS invokes fn, even when no Schedule call is pending. Callers
// that want "flush only if dirty" must guard inside fn. A timer that is
// already firing can still run fn concurrently with a Flush; fn must be
// idempotent under that race.
func (d *Debouncer) Flush() error {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()

	return d.fn()
}

// fire runs on the timer goroutine once the quiet period elapses.
func (d *Debouncer) fire() {
	d.mu.Lock()
	d.timer = nil
	d.mu.Unlock()

	_ = d.fn()
}
