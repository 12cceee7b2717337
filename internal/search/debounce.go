// file: internal/search/debounce.go
package search

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the quiet period applied to keystroke-driven
// fetches (suggestions, lab search in the review form).
const DefaultDebounceDelay = 300 * time.Millisecond

// Debouncer collapses rapid repeated triggers into one execution after
// a quiet period. Each Trigger cancels the pending timer, so only the
// last scheduled function runs. Every trigger also advances a
// generation counter; executed functions receive their generation and
// must check Latest before applying results, which discards responses
// of in-flight calls that a newer trigger has superseded.
type Debouncer struct {
	mu         sync.Mutex
	delay      time.Duration
	timer      *time.Timer
	generation uint64
	stopped    bool
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to the default.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled run. fn runs on its own goroutine and receives
// the generation of this trigger.
func (d *Debouncer) Trigger(fn func(generation uint64)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}

	d.generation++
	gen := d.generation
	d.timer = time.AfterFunc(d.delay, func() {
		if d.Latest(gen) {
			fn(gen)
		}
	})
}

// Latest reports whether generation is still the newest trigger.
// Callers check it again after slow work (a network call) before
// applying the result.
func (d *Debouncer) Latest(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return !d.stopped && generation == d.generation
}

// Cancel drops any pending run without stopping the debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.generation++
}

// Stop cancels any pending run and rejects further triggers. Used on
// teardown of the owning component.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.stopped = true
}
